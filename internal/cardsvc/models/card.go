package models

const (
	CardTypeVCard = "vcard"
	CardTypeURL   = "url"

	CardStatusPending = "pending"
	CardStatusActive  = "active"
)

// Card is a document in the user_cards collection. The _id is the short
// identifier printed on the physical card.
type Card struct {
	ID           string  `bson:"_id" json:"id"`
	Tier         string  `bson:"tier" json:"tier"`
	OwnerID      string  `bson:"owner_id" json:"owner_id"`
	Type         string  `bson:"type" json:"type"`
	Content      string  `bson:"content" json:"content"`
	PaymentID    string  `bson:"payment_id,omitempty" json:"payment_id,omitempty"`
	Organisation string  `bson:"organisation,omitempty" json:"organisation,omitempty"`
	PIN          string  `bson:"pin,omitempty" json:"-"`
	Views        int64   `bson:"views" json:"views"`
	Status       string  `bson:"status" json:"status"`
	Version      float64 `bson:"version" json:"version"`
	CreatedAt    string  `bson:"created_at" json:"created_at"`
	UpdatedAt    string  `bson:"updated_at" json:"updated_at"`
}

// CardMeta is the owner/admin projection of a card. It never carries the pin.
type CardMeta struct {
	Tier         string  `json:"tier"`
	Type         string  `json:"type"`
	Content      string  `json:"content"`
	PaymentID    string  `json:"payment_id,omitempty"`
	Organisation string  `json:"organisation,omitempty"`
	Views        int64   `json:"views"`
	Status       string  `json:"status"`
	Version      float64 `json:"version"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func (c *Card) Meta() *CardMeta {
	return &CardMeta{
		Tier:         c.Tier,
		Type:         c.Type,
		Content:      c.Content,
		PaymentID:    c.PaymentID,
		Organisation: c.Organisation,
		Views:        c.Views,
		Status:       c.Status,
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
