package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/uwitz/cards-service/internal/cardsvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const userCollection = "users"

type UserStore struct {
	db *mongo.Database
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) col() *mongo.Collection {
	return s.db.Collection(userCollection)
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByToken resolves a bearer credential to its user, nil when unknown.
func (s *UserStore) GetByToken(ctx context.Context, token string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"token": token})
}

// GetByUsernameExcept finds a user holding the username, ignoring the
// document with excludeID. Used for the duplicate check at creation.
func (s *UserStore) GetByUsernameExcept(ctx context.Context, username, excludeID string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username, "_id": bson.M{"$ne": excludeID}})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.col().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.col().InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// Update applies a field subset and, when trans is non-nil, appends a
// transaction entry in the same document write. It reports whether a
// document matched.
func (s *UserStore) Update(ctx context.Context, id string, set map[string]interface{}, trans *models.Transaction) (bool, error) {
	ops := bson.M{}
	if len(set) > 0 {
		ops["$set"] = set
	}
	if trans != nil {
		ops["$push"] = bson.M{"transactions": trans}
	}
	res, err := s.col().UpdateOne(ctx, bson.M{"_id": id}, ops)
	if err != nil {
		return false, fmt.Errorf("failed to update user: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *UserStore) PushTransaction(ctx context.Context, id string, entry models.Transaction) error {
	_, err := s.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"transactions": entry}})
	if err != nil {
		return fmt.Errorf("failed to push transaction: %w", err)
	}
	return nil
}

func (s *UserStore) PushPayout(ctx context.Context, id string, entry models.Payout) error {
	_, err := s.col().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"payouts": entry}})
	if err != nil {
		return fmt.Errorf("failed to push payout: %w", err)
	}
	return nil
}

// ClaimPayout flips one embedded payout entry to claimed with a positional
// update. It reports whether the user/payout pair matched.
func (s *UserStore) ClaimPayout(ctx context.Context, userID, payoutID, claimedAt string) (bool, error) {
	res, err := s.col().UpdateOne(ctx,
		bson.M{"_id": userID, "payouts.id": payoutID},
		bson.M{"$set": bson.M{"payouts.$.status": models.PayoutStatusClaimed, "payouts.$.claimed_at": claimedAt}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to claim payout: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.col().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}
