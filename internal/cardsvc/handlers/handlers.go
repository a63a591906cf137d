package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/uwitz/cards-service/internal/cardsvc/service"

	log "github.com/sirupsen/logrus"
)

type Handler struct {
	cards   *service.CardService
	users   *service.UserService
	payouts *service.PayoutService

	landingURL string
	portalURL  string
}

func NewHandler(cards *service.CardService, users *service.UserService, payouts *service.PayoutService) *Handler {
	landing := os.Getenv("LANDING_URL")
	if landing == "" {
		landing = "https://uwitz.cards"
	}
	portal := os.Getenv("PORTAL_URL")
	if portal == "" {
		portal = "https://portal.uwitz.cards"
	}

	return &Handler{
		cards:      cards,
		users:      users,
		payouts:    payouts,
		landingURL: landing,
		portalURL:  portal,
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, "OK")
}

// bearer returns the raw Authorization header value; tokens are opaque, no
// scheme prefix is stripped.
func bearer(r *http.Request) string {
	return r.Header.Get("Authorization")
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the service error taxonomy to HTTP statuses. Anything
// outside the taxonomy is logged and reported only as internal.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	tag := "internal"

	switch {
	case errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrInvalidFormat),
		errors.Is(err, service.ErrInvalidURL),
		errors.Is(err, service.ErrInvalidOwnerID),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrUsernameMissing),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrNoFieldsToUpdate),
		errors.Is(err, service.ErrPayoutRefRequired),
		errors.Is(err, service.ErrTokenRequired):
		code, tag = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrInvalidCardPIN):
		code, tag = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrPlanExpired),
		errors.Is(err, service.ErrAccessDenied):
		code, tag = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrNotFound):
		code, tag = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrDuplicateUsername):
		code, tag = http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrTimeout):
		code, tag = http.StatusServiceUnavailable, err.Error()
	default:
		log.Errorf("Error handling %s %s: %s", r.Method, r.URL.Path, err)
	}

	writeJSON(w, code, map[string]string{"error": tag})
}

// decodeBody tolerates an empty body, leaving v at its zero value.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
