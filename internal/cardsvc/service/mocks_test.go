package service

import (
	"context"

	"github.com/uwitz/cards-service/internal/cardsvc/models"
)

// Mock stores for testing
type mockCardStore struct {
	getFunc           func(ctx context.Context, id string) (*models.Card, error)
	insertFunc        func(ctx context.Context, card *models.Card) error
	updateFieldsFunc  func(ctx context.Context, id string, fields map[string]interface{}) (bool, error)
	deleteFunc        func(ctx context.Context, id string) (bool, error)
	deleteByOwnerFunc func(ctx context.Context, ownerID string) (int64, error)
	listFunc          func(ctx context.Context) ([]models.Card, error)
	listByOwnerFunc   func(ctx context.Context, ownerID string) ([]models.Card, error)

	inserted []*models.Card
	updates  []map[string]interface{}
	deleted  []string
}

func (m *mockCardStore) Get(ctx context.Context, id string) (*models.Card, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockCardStore) Insert(ctx context.Context, card *models.Card) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, card)
	}
	m.inserted = append(m.inserted, card)
	return nil
}

func (m *mockCardStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	if m.updateFieldsFunc != nil {
		return m.updateFieldsFunc(ctx, id, fields)
	}
	m.updates = append(m.updates, fields)
	return true, nil
}

func (m *mockCardStore) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	m.deleted = append(m.deleted, id)
	return true, nil
}

func (m *mockCardStore) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	if m.deleteByOwnerFunc != nil {
		return m.deleteByOwnerFunc(ctx, ownerID)
	}
	return 0, nil
}

func (m *mockCardStore) List(ctx context.Context) ([]models.Card, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []models.Card{}, nil
}

func (m *mockCardStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error) {
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, ownerID)
	}
	return []models.Card{}, nil
}

type mockUserStore struct {
	getFunc         func(ctx context.Context, id string) (*models.User, error)
	getByTokenFunc  func(ctx context.Context, token string) (*models.User, error)
	getByUserFunc   func(ctx context.Context, username, excludeID string) (*models.User, error)
	insertFunc      func(ctx context.Context, user *models.User) error
	updateFunc      func(ctx context.Context, id string, set map[string]interface{}, trans *models.Transaction) (bool, error)
	pushTransFunc   func(ctx context.Context, id string, entry models.Transaction) error
	pushPayoutFunc  func(ctx context.Context, id string, entry models.Payout) error
	claimPayoutFunc func(ctx context.Context, userID, payoutID, claimedAt string) (bool, error)
	deleteFunc      func(ctx context.Context, id string) (bool, error)
	listFunc        func(ctx context.Context) ([]models.User, error)

	inserted     []*models.User
	transactions []models.Transaction
	payouts      []models.Payout
}

func (m *mockUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserStore) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if m.getByTokenFunc != nil {
		return m.getByTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockUserStore) GetByUsernameExcept(ctx context.Context, username, excludeID string) (*models.User, error) {
	if m.getByUserFunc != nil {
		return m.getByUserFunc(ctx, username, excludeID)
	}
	return nil, nil
}

func (m *mockUserStore) Insert(ctx context.Context, user *models.User) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, user)
	}
	m.inserted = append(m.inserted, user)
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, id string, set map[string]interface{}, trans *models.Transaction) (bool, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, set, trans)
	}
	return true, nil
}

func (m *mockUserStore) PushTransaction(ctx context.Context, id string, entry models.Transaction) error {
	if m.pushTransFunc != nil {
		return m.pushTransFunc(ctx, id, entry)
	}
	m.transactions = append(m.transactions, entry)
	return nil
}

func (m *mockUserStore) PushPayout(ctx context.Context, id string, entry models.Payout) error {
	if m.pushPayoutFunc != nil {
		return m.pushPayoutFunc(ctx, id, entry)
	}
	m.payouts = append(m.payouts, entry)
	return nil
}

func (m *mockUserStore) ClaimPayout(ctx context.Context, userID, payoutID, claimedAt string) (bool, error) {
	if m.claimPayoutFunc != nil {
		return m.claimPayoutFunc(ctx, userID, payoutID, claimedAt)
	}
	return true, nil
}

func (m *mockUserStore) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return true, nil
}

func (m *mockUserStore) List(ctx context.Context) ([]models.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []models.User{}, nil
}

type mockAdminStore struct {
	getByTokenFunc func(ctx context.Context, token string) (*models.Admin, error)
}

func (m *mockAdminStore) GetByToken(ctx context.Context, token string) (*models.Admin, error) {
	if m.getByTokenFunc != nil {
		return m.getByTokenFunc(ctx, token)
	}
	return nil, nil
}

const (
	adminToken = "admin-token"
	userToken  = "user-token"
)

func testAdmin() *models.User {
	return &models.User{
		ID:       "1111111111.1700000000",
		Username: "root",
		Token:    adminToken,
		IsAdmin:  true,
		Plan:     models.DefaultPlan,
		Currency: models.DefaultCurrency,
		Status:   models.UserStatusActive,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:       "2222222222.1700000000",
		Username: "jane",
		Token:    userToken,
		Plan:     "business",
		Currency: models.DefaultCurrency,
		Status:   models.UserStatusActive,
	}
}

// tokenDirectory wires GetByToken to the given users, everything else stays
// at the zero-value defaults.
func tokenDirectory(users ...*models.User) func(ctx context.Context, token string) (*models.User, error) {
	return func(ctx context.Context, token string) (*models.User, error) {
		for _, u := range users {
			if u.Token == token {
				return u, nil
			}
		}
		return nil, nil
	}
}
