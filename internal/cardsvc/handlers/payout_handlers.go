package handlers

import (
	"net/http"

	"github.com/uwitz/cards-service/internal/cardsvc/service"
)

func (h *Handler) RequestPayoutHandler(w http.ResponseWriter, r *http.Request) {
	var in service.PayoutInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, service.ErrInvalidAmount)
		return
	}

	payout, err := h.payouts.Request(r.Context(), bearer(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"payout_id": payout.ID,
		"status":    payout.Status,
	})
}

func (h *Handler) ClaimPayoutHandler(w http.ResponseWriter, r *http.Request) {
	var in service.ClaimPayoutInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, service.ErrPayoutRefRequired)
		return
	}

	if err := h.payouts.Claim(r.Context(), bearer(r), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "claimed",
		"id":     in.ID,
	})
}
