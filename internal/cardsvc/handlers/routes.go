package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Get("/", h.HealthHandler)

	r.Get("/users", h.ListUsersHandler)
	r.Get("/cards", h.ListCardsHandler)
	r.Get("/user/{userID}", h.GetUserHandler)
	r.Delete("/user/{userID}", h.TerminateUserHandler)
	r.Get("/meta/{cardID}", h.CardMetaHandler)
	r.Post("/request", h.DataRequestHandler)
	r.Post("/payout", h.RequestPayoutHandler)
	r.Post("/admin/payout", h.ClaimPayoutHandler)
	r.Post("/create/user", h.CreateUserHandler)
	r.Post("/create/card", h.CreateCardHandler)
	r.Post("/renew/user/{userID}", h.RenewUserHandler)

	// card id routes stay last so the static paths above win
	r.Get("/{cardID}", h.ResolveCardHandler)
	r.Patch("/{cardID}", h.UpdateCardHandler)
	r.Delete("/{cardID}", h.DeleteCardHandler)
}
