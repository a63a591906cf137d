package handlers

import (
	"context"

	"github.com/uwitz/cards-service/internal/cardsvc/models"
)

// In-memory stores backing the end-to-end handler tests.

type fakeCards struct {
	m map[string]*models.Card
}

func (f *fakeCards) Get(ctx context.Context, id string) (*models.Card, error) {
	return f.m[id], nil
}

func (f *fakeCards) Insert(ctx context.Context, card *models.Card) error {
	f.m[card.ID] = card
	return nil
}

func (f *fakeCards) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (bool, error) {
	card, ok := f.m[id]
	if !ok {
		return false, nil
	}
	for k, v := range fields {
		switch k {
		case "content":
			card.Content = v.(string)
		case "status":
			card.Status = v.(string)
		case "updated_at":
			card.UpdatedAt = v.(string)
		}
	}
	return true, nil
}

func (f *fakeCards) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := f.m[id]; !ok {
		return false, nil
	}
	delete(f.m, id)
	return true, nil
}

func (f *fakeCards) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	for id, card := range f.m {
		if card.OwnerID == ownerID {
			delete(f.m, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeCards) List(ctx context.Context) ([]models.Card, error) {
	out := []models.Card{}
	for _, card := range f.m {
		out = append(out, *card)
	}
	return out, nil
}

func (f *fakeCards) ListByOwner(ctx context.Context, ownerID string) ([]models.Card, error) {
	out := []models.Card{}
	for _, card := range f.m {
		if card.OwnerID == ownerID {
			out = append(out, *card)
		}
	}
	return out, nil
}

type fakeUsers struct {
	m map[string]*models.User
}

func (f *fakeUsers) Get(ctx context.Context, id string) (*models.User, error) {
	return f.m[id], nil
}

func (f *fakeUsers) GetByToken(ctx context.Context, token string) (*models.User, error) {
	for _, u := range f.m {
		if u.Token == token {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByUsernameExcept(ctx context.Context, username, excludeID string) (*models.User, error) {
	for _, u := range f.m {
		if u.Username == username && u.ID != excludeID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Insert(ctx context.Context, user *models.User) error {
	f.m[user.ID] = user
	return nil
}

func (f *fakeUsers) Update(ctx context.Context, id string, set map[string]interface{}, trans *models.Transaction) (bool, error) {
	user, ok := f.m[id]
	if !ok {
		return false, nil
	}
	for k, v := range set {
		switch k {
		case "plan":
			user.Plan = v.(string)
		case "plan_expiry":
			user.PlanExpiry = v.(string)
		case "updated_at":
			user.UpdatedAt = v.(string)
		}
	}
	if trans != nil {
		user.Transactions = append(user.Transactions, *trans)
	}
	return true, nil
}

func (f *fakeUsers) PushTransaction(ctx context.Context, id string, entry models.Transaction) error {
	if user, ok := f.m[id]; ok {
		user.Transactions = append(user.Transactions, entry)
	}
	return nil
}

func (f *fakeUsers) PushPayout(ctx context.Context, id string, entry models.Payout) error {
	if user, ok := f.m[id]; ok {
		user.Payouts = append(user.Payouts, entry)
	}
	return nil
}

func (f *fakeUsers) ClaimPayout(ctx context.Context, userID, payoutID, claimedAt string) (bool, error) {
	user, ok := f.m[userID]
	if !ok {
		return false, nil
	}
	for i := range user.Payouts {
		if user.Payouts[i].ID == payoutID {
			user.Payouts[i].Status = models.PayoutStatusClaimed
			user.Payouts[i].ClaimedAt = claimedAt
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUsers) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := f.m[id]; !ok {
		return false, nil
	}
	delete(f.m, id)
	return true, nil
}

func (f *fakeUsers) List(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.m {
		out = append(out, *u)
	}
	return out, nil
}

type fakeAdmins struct {
	m map[string]*models.Admin
}

func (f *fakeAdmins) GetByToken(ctx context.Context, token string) (*models.Admin, error) {
	for _, a := range f.m {
		if a.Token == token {
			return a, nil
		}
	}
	return nil, nil
}
