package service

import (
	"time"

	"github.com/uwitz/cards-service/internal/cardsvc/ident"
	"github.com/uwitz/cards-service/internal/cardsvc/models"

	"github.com/shopspring/decimal"
)

// TransactionInput is the optional payment payload accepted on card creation
// and plan renewal.
type TransactionInput struct {
	Type      string  `json:"type,omitempty"`
	Bank      string  `json:"bank,omitempty"`
	Gateway   string  `json:"gateway,omitempty"`
	Reference string  `json:"reference,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
	Referral  string  `json:"referral,omitempty"`
}

// newTransactionEntry assigns the entry id and normalizes the amount to two
// decimal places before it is stored as a BSON double.
func newTransactionEntry(in *TransactionInput, now time.Time) models.Transaction {
	ts := in.Timestamp
	if ts == "" {
		ts = models.Epoch(now)
	}

	amount := decimal.NewFromFloat(in.Amount).Round(2)

	return models.Transaction{
		ID:        ident.TransactionID(),
		Type:      in.Type,
		Bank:      in.Bank,
		Gateway:   in.Gateway,
		Reference: in.Reference,
		Amount:    amount.InexactFloat64(),
		Timestamp: ts,
		Referral:  in.Referral,
	}
}
