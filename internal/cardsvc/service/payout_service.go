package service

import (
	"context"
	"time"

	"github.com/uwitz/cards-service/internal/cardsvc/broker"
	"github.com/uwitz/cards-service/internal/cardsvc/ident"
	"github.com/uwitz/cards-service/internal/cardsvc/models"

	"github.com/shopspring/decimal"
)

type PayoutService struct {
	users  UserStore
	auth   *AuthService
	events *broker.Broker
}

func NewPayoutService(users UserStore, auth *AuthService, events *broker.Broker) *PayoutService {
	return &PayoutService{users: users, auth: auth, events: events}
}

type PayoutInput struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

type ClaimPayoutInput struct {
	UserID string `json:"user_id"`
	ID     string `json:"id"`
}

// Request records a pending payout on the authenticated user. The plan must
// not be expired.
func (s *PayoutService) Request(ctx context.Context, token string, in PayoutInput) (*models.Payout, error) {
	user, err := s.auth.Principal(ctx, token)
	if err != nil {
		return nil, err
	}
	if user.PlanExpired(time.Now()) {
		return nil, ErrPlanExpired
	}

	amount := decimal.NewFromFloat(in.Amount).Round(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	currency := in.Currency
	if currency == "" {
		currency = user.Currency
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}

	payout := models.Payout{
		ID:        ident.PayoutID(),
		Amount:    amount.InexactFloat64(),
		Currency:  currency,
		Status:    models.PayoutStatusPending,
		CreatedAt: models.Epoch(time.Now()),
	}

	if err := s.users.PushPayout(ctx, user.ID, payout); err != nil {
		return nil, storeErr(err)
	}

	s.events.PayoutRequested(user.ID, payout)

	return &payout, nil
}

// Claim marks one payout entry claimed, admin only.
func (s *PayoutService) Claim(ctx context.Context, token string, in ClaimPayoutInput) error {
	if _, err := s.auth.Admin(ctx, token); err != nil {
		return err
	}

	if in.UserID == "" || in.ID == "" {
		return ErrPayoutRefRequired
	}

	matched, err := s.users.ClaimPayout(ctx, in.UserID, in.ID, models.Epoch(time.Now()))
	if err != nil {
		return storeErr(err)
	}
	if !matched {
		return ErrNotFound
	}

	s.events.PayoutClaimed(in.UserID, in.ID)

	return nil
}
