package handlers

import (
	"net/http"

	"github.com/uwitz/cards-service/internal/cardsvc/models"
	"github.com/uwitz/cards-service/internal/cardsvc/service"

	"github.com/go-chi/chi"
)

// createUserResponse is the creation projection: the only place the bearer
// token is handed out besides the self view.
type createUserResponse struct {
	ID             string          `json:"id"`
	DisplayName    string          `json:"display_name"`
	Name           string          `json:"name,omitempty"`
	PlanExpiry     string          `json:"plan_expiry,omitempty"`
	Referral       string          `json:"referral,omitempty"`
	ReferralReward float64         `json:"referral_reward"`
	Currency       string          `json:"currency"`
	Payouts        []models.Payout `json:"payouts"`
	Username       string          `json:"username"`
	Token          string          `json:"token"`
}

func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var in service.CreateUserInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, service.ErrUsernameMissing)
		return
	}

	user, err := h.users.Create(r.Context(), bearer(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createUserResponse{
		ID:             user.ID,
		DisplayName:    user.DisplayName,
		Name:           user.Name,
		PlanExpiry:     user.PlanExpiry,
		Referral:       user.Referral,
		ReferralReward: user.ReferralReward,
		Currency:       user.Currency,
		Payouts:        user.Payouts,
		Username:       user.Username,
		Token:          user.Token,
	})
}

func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), bearer(r), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), bearer(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// DataRequestHandler is the self view: the authenticated user plus every
// card they own.
func (h *Handler) DataRequestHandler(w http.ResponseWriter, r *http.Request) {
	user, cards, err := h.users.DataRequest(r.Context(), bearer(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"cards": cards,
	})
}

func (h *Handler) RenewUserHandler(w http.ResponseWriter, r *http.Request) {
	var in service.RenewUserInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, service.ErrNoFieldsToUpdate)
		return
	}

	user, err := h.users.Renew(r.Context(), bearer(r), chi.URLParam(r, "userID"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) TerminateUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Terminate(r.Context(), bearer(r), chi.URLParam(r, "userID")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
