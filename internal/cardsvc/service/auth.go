package service

import (
	"context"

	"github.com/uwitz/cards-service/internal/cardsvc/models"
)

// AuthService maps the raw bearer value of the Authorization header to a
// principal. Regular principals live in the users collection; the admin
// collection is a separate, higher trust tier that may mint users.
type AuthService struct {
	users  UserStore
	admins AdminStore
}

func NewAuthService(users UserStore, admins AdminStore) *AuthService {
	return &AuthService{users: users, admins: admins}
}

// Principal resolves a user-tier credential. An empty or unknown token is
// ErrInvalidToken.
func (a *AuthService) Principal(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	user, err := a.users.GetByToken(ctx, token)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// Admin resolves a credential and requires the is_admin flag.
func (a *AuthService) Admin(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	user, err := a.users.GetByToken(ctx, token)
	if err != nil {
		return nil, storeErr(err)
	}
	if user == nil || !user.IsAdmin {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// AdminTier resolves a credential against the admin collection.
func (a *AuthService) AdminTier(ctx context.Context, token string) (*models.Admin, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	admin, err := a.admins.GetByToken(ctx, token)
	if err != nil {
		return nil, storeErr(err)
	}
	if admin == nil {
		return nil, ErrUnauthorized
	}
	return admin, nil
}

// CanActOnUser reports whether the principal may read or act on the target
// user: themselves, or any user when admin.
func CanActOnUser(principal *models.User, targetID string) bool {
	return principal.IsAdmin || principal.ID == targetID
}

// CanReadCard reports whether the principal may see a card's metadata: the
// owner, or any card when admin.
func CanReadCard(principal *models.User, card *models.Card) bool {
	return principal.IsAdmin || (card != nil && principal.ID == card.OwnerID)
}
