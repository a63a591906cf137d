package handlers

import (
	"net/http"

	"github.com/uwitz/cards-service/internal/cardsvc/service"

	"github.com/go-chi/chi"
)

// ResolveCardHandler is the public lookup. The pin comes from the pin query
// parameter, or a JSON body when one is sent.
func (h *Handler) ResolveCardHandler(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")

	pin := r.URL.Query().Get("pin")
	if pin == "" {
		var body struct {
			PIN string `json:"pin"`
		}
		if err := decodeBody(r, &body); err == nil {
			pin = body.PIN
		}
	}

	res, err := h.cards.Resolve(r.Context(), cardID, pin)
	if err != nil {
		writeError(w, r, err)
		return
	}

	switch res.Kind {
	case service.ResolveVCard:
		w.Header().Set("Content-Type", "text/vcard")
		w.Header().Set("Content-Disposition", "attachment; filename=contact.vcf")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(res.Content))
	case service.ResolveRedirect:
		http.Redirect(w, r, res.URL, http.StatusTemporaryRedirect)
	case service.ResolveActivated:
		writeJSON(w, http.StatusOK, map[string]string{"status": "active"})
	case service.ResolveSetup:
		http.Redirect(w, r, h.portalURL+"/setup/"+cardID, http.StatusTemporaryRedirect)
	default:
		http.Redirect(w, r, h.landingURL, http.StatusTemporaryRedirect)
	}
}

func (h *Handler) CardMetaHandler(w http.ResponseWriter, r *http.Request) {
	meta, err := h.cards.Meta(r.Context(), bearer(r), chi.URLParam(r, "cardID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (h *Handler) CreateCardHandler(w http.ResponseWriter, r *http.Request) {
	var in service.CreateCardInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, service.ErrInvalidType)
		return
	}

	id, err := h.cards.Create(r.Context(), bearer(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *Handler) UpdateCardHandler(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateCardInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, service.ErrNoFieldsToUpdate)
		return
	}

	if err := h.cards.Update(r.Context(), bearer(r), chi.URLParam(r, "cardID"), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handler) DeleteCardHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.cards.Delete(r.Context(), bearer(r), chi.URLParam(r, "cardID")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handler) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.ListAll(r.Context(), bearer(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cards": cards})
}
