package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	log "github.com/sirupsen/logrus"
	config "github.com/uwitz/cards-service/configs"
	"github.com/uwitz/cards-service/internal/cardsvc/broker"
	"github.com/uwitz/cards-service/internal/cardsvc/handlers"
	"github.com/uwitz/cards-service/internal/cardsvc/service"
	"github.com/uwitz/cards-service/internal/cardsvc/store"
	"github.com/uwitz/cards-service/internal/db"
)

const SERVICE_NAME = "cards"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	config.CreateUniqueInstance(SERVICE_NAME)

	// mongo connection
	handle, err := db.Connect(os.Getenv("MONGODB_URI"))
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	log.Printf("mongo connection established successfully")

	cardStore := store.NewCardStore(handle.DB)
	userStore := store.NewUserStore(handle.DB)
	adminStore := store.NewAdminStore(handle.DB)

	// lifecycle event broker; the directory keeps serving without it
	events, err := broker.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server, events disabled %v", err)
		events = nil
	} else {
		defer events.Close()
		log.Printf("NATS connection established successfully %s", events.Url)
	}

	authService := service.NewAuthService(userStore, adminStore)
	cardService := service.NewCardService(cardStore, userStore, authService, events)
	userService := service.NewUserService(userStore, cardStore, authService, events)
	payoutService := service.NewPayoutService(userStore, authService, events)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimit := 100
	if rateLimitStr := os.Getenv("RATE_LIMIT"); rateLimitStr != "" {
		rateLimit, err = strconv.Atoi(rateLimitStr)
		if err != nil {
			log.Fatalf("Invalid RATE_LIMIT value: %v", err)
		}
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(cardService, userService, payoutService)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}

	if err := handle.Close(ctx); err != nil {
		log.Errorf("Error closing mongo connection: %v", err)
	}

	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
