package service

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/uwitz/cards-service/internal/cardsvc/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayoutService(users *mockUserStore) *PayoutService {
	auth := NewAuthService(users, &mockAdminStore{})
	return NewPayoutService(users, auth, nil)
}

func TestRequestPayout(t *testing.T) {
	t.Run("records a pending entry", func(t *testing.T) {
		user := testUser()
		users := &mockUserStore{getByTokenFunc: tokenDirectory(user)}
		svc := newPayoutService(users)

		payout, err := svc.Request(context.Background(), userToken, PayoutInput{Amount: 25.129})
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(payout.ID, "PAYOUT-"))
		assert.Len(t, payout.ID, len("PAYOUT-")+8)
		assert.Equal(t, 25.13, payout.Amount)
		assert.Equal(t, models.DefaultCurrency, payout.Currency, "falls back to the user currency")
		assert.Equal(t, models.PayoutStatusPending, payout.Status)
		assert.Empty(t, payout.ClaimedAt)
		require.Len(t, users.payouts, 1)
	})

	t.Run("explicit currency wins", func(t *testing.T) {
		users := &mockUserStore{getByTokenFunc: tokenDirectory(testUser())}
		svc := newPayoutService(users)

		payout, err := svc.Request(context.Background(), userToken, PayoutInput{Amount: 10, Currency: "SGD"})
		require.NoError(t, err)
		assert.Equal(t, "SGD", payout.Currency)
	})

	t.Run("expired plan blocked", func(t *testing.T) {
		user := testUser()
		user.PlanExpiry = strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
		users := &mockUserStore{getByTokenFunc: tokenDirectory(user)}
		svc := newPayoutService(users)

		_, err := svc.Request(context.Background(), userToken, PayoutInput{Amount: 10})
		assert.ErrorIs(t, err, ErrPlanExpired)
		assert.Empty(t, users.payouts)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		users := &mockUserStore{getByTokenFunc: tokenDirectory(testUser())}
		svc := newPayoutService(users)

		for _, amount := range []float64{0, -5} {
			_, err := svc.Request(context.Background(), userToken, PayoutInput{Amount: amount})
			assert.ErrorIs(t, err, ErrInvalidAmount)
		}
	})

	t.Run("bad credential", func(t *testing.T) {
		svc := newPayoutService(&mockUserStore{})
		_, err := svc.Request(context.Background(), "nope", PayoutInput{Amount: 10})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaimPayout(t *testing.T) {
	admin := testAdmin()
	user := testUser()

	t.Run("marks the entry claimed", func(t *testing.T) {
		var gotUser, gotPayout, gotAt string
		users := &mockUserStore{
			getByTokenFunc: tokenDirectory(admin, user),
			claimPayoutFunc: func(ctx context.Context, userID, payoutID, claimedAt string) (bool, error) {
				gotUser, gotPayout, gotAt = userID, payoutID, claimedAt
				return true, nil
			},
		}
		svc := newPayoutService(users)

		err := svc.Claim(context.Background(), adminToken, ClaimPayoutInput{UserID: user.ID, ID: "PAYOUT-AAAA1111"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, gotUser)
		assert.Equal(t, "PAYOUT-AAAA1111", gotPayout)
		assert.NotEmpty(t, gotAt)
	})

	t.Run("both references required", func(t *testing.T) {
		users := &mockUserStore{getByTokenFunc: tokenDirectory(admin)}
		svc := newPayoutService(users)

		assert.ErrorIs(t, svc.Claim(context.Background(), adminToken, ClaimPayoutInput{UserID: user.ID}), ErrPayoutRefRequired)
		assert.ErrorIs(t, svc.Claim(context.Background(), adminToken, ClaimPayoutInput{ID: "PAYOUT-AAAA1111"}), ErrPayoutRefRequired)
	})

	t.Run("unknown pair", func(t *testing.T) {
		users := &mockUserStore{
			getByTokenFunc: tokenDirectory(admin),
			claimPayoutFunc: func(ctx context.Context, userID, payoutID, claimedAt string) (bool, error) {
				return false, nil
			},
		}
		svc := newPayoutService(users)

		err := svc.Claim(context.Background(), adminToken, ClaimPayoutInput{UserID: "missing", ID: "PAYOUT-AAAA1111"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		users := &mockUserStore{getByTokenFunc: tokenDirectory(admin, user)}
		svc := newPayoutService(users)

		err := svc.Claim(context.Background(), userToken, ClaimPayoutInput{UserID: user.ID, ID: "PAYOUT-AAAA1111"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}
