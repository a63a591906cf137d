package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/uwitz/cards-service/internal/cardsvc/broker"
	"github.com/uwitz/cards-service/internal/cardsvc/ident"
	"github.com/uwitz/cards-service/internal/cardsvc/models"

	log "github.com/sirupsen/logrus"
)

// usernames follow the POSIX account-name shape
var usernamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

type UserService struct {
	users  UserStore
	cards  CardStore
	auth   *AuthService
	events *broker.Broker
}

func NewUserService(users UserStore, cards CardStore, auth *AuthService, events *broker.Broker) *UserService {
	return &UserService{users: users, cards: cards, auth: auth, events: events}
}

type CreateUserInput struct {
	Username       string  `json:"username"`
	Name           string  `json:"name,omitempty"`
	DisplayName    string  `json:"display_name,omitempty"`
	Plan           string  `json:"plan,omitempty"`
	PlanExpiry     string  `json:"plan_expiry,omitempty"`
	Organisation   string  `json:"organisation,omitempty"`
	Currency       string  `json:"currency,omitempty"`
	Referral       string  `json:"referral,omitempty"`
	ReferralReward float64 `json:"referral_reward,omitempty"`
}

type RenewUserInput struct {
	Plan        string            `json:"plan,omitempty"`
	PlanExpiry  *string           `json:"plan_expiry,omitempty"`
	Transaction *TransactionInput `json:"transaction,omitempty"`
}

// Create mints a user. The credential must come from the admin collection,
// not the regular user-token pool.
func (s *UserService) Create(ctx context.Context, token string, in CreateUserInput) (*models.User, error) {
	if _, err := s.auth.AdminTier(ctx, token); err != nil {
		return nil, err
	}

	if in.Username == "" {
		return nil, ErrUsernameMissing
	}
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	now := time.Now()

	displayName := in.DisplayName
	if displayName == "" {
		displayName = username
	}
	plan := in.Plan
	if plan == "" {
		plan = models.DefaultPlan
	}
	currency := in.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	user := &models.User{
		ID:             ident.UserID(now),
		Username:       username,
		Name:           in.Name,
		DisplayName:    displayName,
		Token:          ident.Token(),
		IsAdmin:        false,
		Plan:           plan,
		PlanExpiry:     in.PlanExpiry,
		Organisation:   in.Organisation,
		Currency:       currency,
		Referral:       in.Referral,
		ReferralReward: in.ReferralReward,
		Payouts:        []models.Payout{},
		Transactions:   []models.Transaction{},
		Status:         models.UserStatusActive,
		CreatedAt:      models.Epoch(now),
		UpdatedAt:      models.Epoch(now),
	}

	existing, err := s.users.GetByUsernameExcept(ctx, username, user.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	if existing != nil {
		return nil, ErrDuplicateUsername
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, storeErr(err)
	}

	s.events.UserCreated(user)

	return user, nil
}

// Get returns the target user for themselves or an admin, token stripped.
func (s *UserService) Get(ctx context.Context, token, userID string) (*models.User, error) {
	principal, err := s.auth.Principal(ctx, token)
	if err != nil {
		if err == ErrInvalidToken {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !CanActOnUser(principal, userID) {
		return nil, ErrUnauthorized
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user.Public(), nil
}

// List returns every user, admin only, tokens stripped.
func (s *UserService) List(ctx context.Context, token string) ([]*models.User, error) {
	if _, err := s.auth.Admin(ctx, token); err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	out := make([]*models.User, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

// DataRequest is the self view: the authenticated user's full record, token
// included, with every card they own. Suspended accounts keep a valid token
// but lose access here.
func (s *UserService) DataRequest(ctx context.Context, token string) (*models.User, []models.Card, error) {
	principal, err := s.auth.Principal(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if principal.Status != models.UserStatusActive {
		return nil, nil, ErrAccessDenied
	}

	cards, err := s.cards.ListByOwner(ctx, principal.ID)
	if err != nil {
		return nil, nil, storeErr(err)
	}
	return principal, cards, nil
}

// Renew lets an admin change plan and expiry, optionally recording the
// payment transaction in the same document write.
func (s *UserService) Renew(ctx context.Context, token, userID string, in RenewUserInput) (*models.User, error) {
	if _, err := s.auth.Admin(ctx, token); err != nil {
		return nil, err
	}

	now := time.Now()
	set := map[string]interface{}{}
	if in.Plan != "" {
		set["plan"] = in.Plan
	}
	if in.PlanExpiry != nil {
		set["plan_expiry"] = *in.PlanExpiry
	}

	var trans *models.Transaction
	if in.Transaction != nil {
		entry := newTransactionEntry(in.Transaction, now)
		trans = &entry
	}

	if len(set) == 0 && trans == nil {
		return nil, ErrNoFieldsToUpdate
	}
	set["updated_at"] = models.Epoch(now)

	matched, err := s.users.Update(ctx, userID, set, trans)
	if err != nil {
		return nil, storeErr(err)
	}
	if !matched {
		return nil, ErrNotFound
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user.Public(), nil
}

// Terminate deletes a user and cascades deletion of every card they own.
func (s *UserService) Terminate(ctx context.Context, token, userID string) error {
	if _, err := s.auth.Admin(ctx, token); err != nil {
		return err
	}

	deleted, err := s.users.Delete(ctx, userID)
	if err != nil {
		return storeErr(err)
	}
	if !deleted {
		return ErrNotFound
	}

	removed, err := s.cards.DeleteByOwner(ctx, userID)
	if err != nil {
		log.Errorf("Error cascading card deletion for user %s: %s", userID, err)
		return storeErr(err)
	}

	s.events.UserDeleted(userID, removed)

	return nil
}
