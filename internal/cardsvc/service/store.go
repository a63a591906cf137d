package service

import (
	"context"

	"github.com/uwitz/cards-service/internal/cardsvc/models"
)

// CardStore is the persistence contract for card documents. Get returns
// (nil, nil) when the id is unknown.
type CardStore interface {
	Get(ctx context.Context, id string) (*models.Card, error)
	Insert(ctx context.Context, card *models.Card) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
	List(ctx context.Context) ([]models.Card, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error)
}

// UserStore is the persistence contract for user documents with their
// embedded payout and transaction lists.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	GetByUsernameExcept(ctx context.Context, username, excludeID string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, set map[string]interface{}, trans *models.Transaction) (bool, error)
	PushTransaction(ctx context.Context, id string, entry models.Transaction) error
	PushPayout(ctx context.Context, id string, entry models.Payout) error
	ClaimPayout(ctx context.Context, userID, payoutID, claimedAt string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
}

// AdminStore reads the separate administrative-principal collection.
type AdminStore interface {
	GetByToken(ctx context.Context, token string) (*models.Admin, error)
}
