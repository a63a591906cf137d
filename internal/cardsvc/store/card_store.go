package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/uwitz/cards-service/internal/cardsvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const cardCollection = "user_cards"

type CardStore struct {
	db *mongo.Database
}

func NewCardStore(db *mongo.Database) *CardStore {
	return &CardStore{db: db}
}

func (s *CardStore) col() *mongo.Collection {
	return s.db.Collection(cardCollection)
}

// Get returns nil without error when no card carries the id.
func (s *CardStore) Get(ctx context.Context, id string) (*models.Card, error) {
	var card models.Card
	err := s.col().FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

func (s *CardStore) Insert(ctx context.Context, card *models.Card) error {
	_, err := s.col().InsertOne(ctx, card)
	if err != nil {
		return fmt.Errorf("failed to insert card: %w", err)
	}
	return nil
}

// UpdateFields sets the given subset of fields on one card document. It
// reports whether a document matched.
func (s *CardStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	res, err := s.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return false, fmt.Errorf("failed to update card: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *CardStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete card: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// DeleteByOwner removes every card owned by the user, for the termination
// cascade.
func (s *CardStore) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := s.col().DeleteMany(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete cards by owner: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *CardStore) List(ctx context.Context) ([]models.Card, error) {
	return s.find(ctx, bson.M{})
}

func (s *CardStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error) {
	return s.find(ctx, bson.M{"owner_id": ownerID})
}

func (s *CardStore) find(ctx context.Context, filter bson.M) ([]models.Card, error) {
	cur, err := s.col().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer cur.Close(ctx)

	cards := []models.Card{}
	if err := cur.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode cards: %w", err)
	}
	return cards, nil
}
