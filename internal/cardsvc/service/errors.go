package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Error messages double as the wire tags the API returns, so they stay in
// snake_case.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidToken      = errors.New("invalid_token")
	ErrTokenRequired     = errors.New("token_required")
	ErrAccessDenied      = errors.New("access_denied")
	ErrPlanExpired       = errors.New("plan_expired")
	ErrNotFound          = errors.New("not_found")
	ErrInvalidType       = errors.New("invalid_type")
	ErrInvalidFormat     = errors.New("invalid_format")
	ErrInvalidURL        = errors.New("invalid_url")
	ErrInvalidOwnerID    = errors.New("invalid_owner_id")
	ErrInvalidCardPIN    = errors.New("invalid_card_pin")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrUsernameMissing   = errors.New("username_missing")
	ErrInvalidUsername   = errors.New("invalid_username")
	ErrDuplicateUsername = errors.New("duplicate_username")
	ErrNoFieldsToUpdate  = errors.New("no_fields_to_update")
	ErrPayoutRefRequired = errors.New("user_id_and_id_required")
	ErrTimeout           = errors.New("timeout")
)

// storeErr classifies an error from a store call. Timeouts against the
// backing store map to ErrTimeout so callers see a retriable signal instead
// of a generic internal failure.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
