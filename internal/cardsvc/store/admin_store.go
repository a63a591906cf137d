package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/uwitz/cards-service/internal/cardsvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const adminCollection = "admin"

// AdminStore reads the separate administrative-principal collection. Only
// credentials found here may mint new users.
type AdminStore struct {
	db *mongo.Database
}

func NewAdminStore(db *mongo.Database) *AdminStore {
	return &AdminStore{db: db}
}

func (s *AdminStore) GetByToken(ctx context.Context, token string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.Collection(adminCollection).FindOne(ctx, bson.M{"token": token}).Decode(&admin)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &admin, nil
}
