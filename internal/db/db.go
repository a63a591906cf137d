package db

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Handle owns the Mongo client for the lifetime of the process. It is opened
// once at startup, passed by reference to the stores and closed on shutdown.
type Handle struct {
	client *mongo.Client
	DB     *mongo.Database
}

// Connect dials the store named by the URI path and verifies it with a ping.
func Connect(mongoURI string) (*Handle, error) {
	uri, err := url.Parse(mongoURI)
	if err != nil {
		return nil, err
	}

	dbName := strings.TrimPrefix(uri.Path, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	return &Handle{
		client: client,
		DB:     client.Database(dbName),
	}, nil
}

// Close is for graceful shutdown.
func (h *Handle) Close(ctx context.Context) error {
	if h == nil || h.client == nil {
		return nil
	}
	return h.client.Disconnect(ctx)
}
