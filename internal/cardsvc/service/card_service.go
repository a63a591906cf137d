package service

import (
	"context"
	"strings"
	"time"

	"github.com/uwitz/cards-service/internal/cardsvc/broker"
	"github.com/uwitz/cards-service/internal/cardsvc/ident"
	"github.com/uwitz/cards-service/internal/cardsvc/models"

	log "github.com/sirupsen/logrus"
)

// CardService is the card lifecycle engine: content validation per type, the
// pending→active transition, ownership and plan-expiry gating on mutation.
type CardService struct {
	cards  CardStore
	users  UserStore
	auth   *AuthService
	events *broker.Broker
}

func NewCardService(cards CardStore, users UserStore, auth *AuthService, events *broker.Broker) *CardService {
	return &CardService{cards: cards, users: users, auth: auth, events: events}
}

type CreateCardInput struct {
	Type        string            `json:"type"`
	Content     string            `json:"content"`
	OwnerID     string            `json:"owner_id"`
	Status      string            `json:"status,omitempty"`
	PIN         string            `json:"pin,omitempty"`
	Transaction *TransactionInput `json:"transaction,omitempty"`
}

type UpdateCardInput struct {
	Type    string `json:"type,omitempty"`
	Content string `json:"content,omitempty"`
}

// Resolution is what a public card lookup yields. The handler turns the kind
// into a file download, a redirect or a JSON confirmation.
type Resolution struct {
	Kind    ResolutionKind
	Content string
	URL     string
}

type ResolutionKind int

const (
	// ResolveNotFound covers a missing card and an active card with an
	// unknown type; both fall back to the default landing destination.
	ResolveNotFound ResolutionKind = iota
	ResolveSetup
	ResolveActivated
	ResolveVCard
	ResolveRedirect
)

// validateContent checks a payload against the format rule of the card type.
// vcard accepts either framing marker; tightening to both would reject cards
// already in the directory.
func validateContent(cardType, content string) error {
	switch cardType {
	case models.CardTypeVCard:
		if content == "" || !(strings.HasPrefix(content, "BEGIN:VCARD") || strings.HasSuffix(content, "END:VCARD")) {
			return ErrInvalidFormat
		}
	case models.CardTypeURL:
		if !strings.HasPrefix(content, "http://") && !strings.HasPrefix(content, "https://") {
			return ErrInvalidURL
		}
	default:
		return ErrInvalidType
	}
	return nil
}

// Create validates the payload, snapshots tier and organisation from the
// owner and inserts the card. When a transaction payload accompanies the
// request, the entry lands on the owner after the card insert; the two
// writes are not atomic as a pair.
func (s *CardService) Create(ctx context.Context, token string, in CreateCardInput) (string, error) {
	if _, err := s.auth.Admin(ctx, token); err != nil {
		return "", err
	}

	if err := validateContent(in.Type, in.Content); err != nil {
		return "", err
	}

	owner, err := s.users.Get(ctx, in.OwnerID)
	if err != nil {
		return "", storeErr(err)
	}
	if owner == nil {
		return "", ErrInvalidOwnerID
	}

	now := time.Now()

	var trans *models.Transaction
	paymentID := ""
	if in.Transaction != nil {
		entry := newTransactionEntry(in.Transaction, now)
		trans = &entry
		paymentID = entry.ID
	}

	tier := owner.Plan
	if tier == "" {
		tier = models.DefaultPlan
	}

	status := models.CardStatusActive
	pin := ""
	if in.Status == models.CardStatusPending {
		status = models.CardStatusPending
		pin = in.PIN
	}

	card := &models.Card{
		ID:           ident.CardID(),
		Tier:         tier,
		OwnerID:      in.OwnerID,
		Type:         in.Type,
		Content:      in.Content,
		PaymentID:    paymentID,
		Organisation: owner.Organisation,
		PIN:          pin,
		Views:        0,
		Status:       status,
		Version:      1.0,
		CreatedAt:    models.Epoch(now),
		UpdatedAt:    models.Epoch(now),
	}

	if err := s.cards.Insert(ctx, card); err != nil {
		return "", storeErr(err)
	}

	if trans != nil {
		if err := s.users.PushTransaction(ctx, in.OwnerID, *trans); err != nil {
			// card already exists at this point; accepted inconsistency window
			log.Errorf("Error pushing transaction for card %s: %s", card.ID, err)
			return "", storeErr(err)
		}
	}

	s.events.CardCreated(card)

	return card.ID, nil
}

// Resolve implements the read-side state machine. A pending card with the
// correct pin transitions to active, one way; active is terminal.
func (s *CardService) Resolve(ctx context.Context, cardID, pin string) (*Resolution, error) {
	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, storeErr(err)
	}
	if card == nil {
		return &Resolution{Kind: ResolveNotFound}, nil
	}

	if card.Status == models.CardStatusPending {
		if pin == "" {
			return &Resolution{Kind: ResolveSetup}, nil
		}
		if pin != card.PIN {
			return nil, ErrInvalidCardPIN
		}
		if _, err := s.cards.UpdateFields(ctx, cardID, map[string]interface{}{"status": models.CardStatusActive}); err != nil {
			return nil, storeErr(err)
		}
		s.events.CardActivated(cardID)
		return &Resolution{Kind: ResolveActivated}, nil
	}

	switch card.Type {
	case models.CardTypeVCard:
		return &Resolution{Kind: ResolveVCard, Content: card.Content}, nil
	case models.CardTypeURL:
		return &Resolution{Kind: ResolveRedirect, URL: card.Content}, nil
	default:
		return &Resolution{Kind: ResolveNotFound}, nil
	}
}

// Update replaces the content after re-validating it against the stored
// type. Type is immutable; a request naming a different type fails. The
// owner's plan must not be expired.
func (s *CardService) Update(ctx context.Context, token, cardID string, in UpdateCardInput) error {
	if _, err := s.auth.Admin(ctx, token); err != nil {
		return err
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return storeErr(err)
	}
	if card == nil {
		return ErrNotFound
	}

	owner, err := s.users.Get(ctx, card.OwnerID)
	if err != nil {
		return storeErr(err)
	}
	if owner != nil && owner.PlanExpired(time.Now()) {
		return ErrPlanExpired
	}

	if in.Type == "" && in.Content == "" {
		return ErrNoFieldsToUpdate
	}
	if in.Type != "" && in.Type != card.Type {
		return ErrInvalidType
	}
	if err := validateContent(card.Type, in.Content); err != nil {
		return err
	}

	matched, err := s.cards.UpdateFields(ctx, cardID, map[string]interface{}{
		"content":    in.Content,
		"updated_at": models.Epoch(time.Now()),
	})
	if err != nil {
		return storeErr(err)
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

// Delete removes the card document. Cards have no dependents, so nothing
// cascades.
func (s *CardService) Delete(ctx context.Context, token, cardID string) error {
	if _, err := s.auth.Admin(ctx, token); err != nil {
		return err
	}

	deleted, err := s.cards.Delete(ctx, cardID)
	if err != nil {
		return storeErr(err)
	}
	if !deleted {
		return ErrNotFound
	}

	s.events.CardDeleted(cardID)
	return nil
}

// Meta returns the card projection for its owner or an admin. A missing
// credential is distinguished from an insufficient one.
func (s *CardService) Meta(ctx context.Context, token, cardID string) (*models.CardMeta, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}
	principal, err := s.users.GetByToken(ctx, token)
	if err != nil {
		return nil, storeErr(err)
	}
	if principal == nil {
		return nil, ErrTokenRequired
	}

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		return nil, storeErr(err)
	}
	if card == nil || !CanReadCard(principal, card) {
		// non-owners learn nothing about which ids exist
		return nil, ErrNotFound
	}

	return card.Meta(), nil
}

// ListAll returns every card in the directory, admin only.
func (s *CardService) ListAll(ctx context.Context, token string) ([]models.Card, error) {
	if _, err := s.auth.Admin(ctx, token); err != nil {
		return nil, err
	}

	cards, err := s.cards.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return cards, nil
}
