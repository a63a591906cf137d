package models

import (
	"strconv"
	"time"
)

const (
	UserStatusActive = "active"

	DefaultPlan     = "individual"
	DefaultCurrency = "MYR"

	PayoutStatusPending = "pending"
	PayoutStatusClaimed = "claimed"
)

// User is a document in the users collection. Payouts and transactions are
// embedded sub-lists, appended with $push and never rewritten wholesale.
type User struct {
	ID             string        `bson:"_id" json:"id"`
	Username       string        `bson:"username" json:"username"`
	Name           string        `bson:"name,omitempty" json:"name,omitempty"`
	DisplayName    string        `bson:"display_name" json:"display_name"`
	Token          string        `bson:"token" json:"token,omitempty"`
	IsAdmin        bool          `bson:"is_admin" json:"is_admin"`
	Plan           string        `bson:"plan" json:"plan"`
	PlanExpiry     string        `bson:"plan_expiry,omitempty" json:"plan_expiry,omitempty"`
	Organisation   string        `bson:"organisation,omitempty" json:"organisation,omitempty"`
	Currency       string        `bson:"currency" json:"currency"`
	Referral       string        `bson:"referral,omitempty" json:"referral,omitempty"`
	ReferralReward float64       `bson:"referral_reward" json:"referral_reward"`
	Payouts        []Payout      `bson:"payouts" json:"payouts"`
	Transactions   []Transaction `bson:"transactions" json:"transactions"`
	Status         string        `bson:"status" json:"status"`
	CreatedAt      string        `bson:"created_at" json:"created_at"`
	UpdatedAt      string        `bson:"updated_at" json:"updated_at"`
}

// Payout is a claimable monetary request recorded against a user.
type Payout struct {
	ID        string  `bson:"id" json:"id"`
	Amount    float64 `bson:"amount" json:"amount"`
	Currency  string  `bson:"currency" json:"currency"`
	Status    string  `bson:"status" json:"status"`
	CreatedAt string  `bson:"created_at" json:"created_at"`
	ClaimedAt string  `bson:"claimed_at,omitempty" json:"claimed_at,omitempty"`
}

type Transaction struct {
	ID        string  `bson:"id" json:"id"`
	Type      string  `bson:"type,omitempty" json:"type,omitempty"`
	Bank      string  `bson:"bank,omitempty" json:"bank,omitempty"`
	Gateway   string  `bson:"gateway,omitempty" json:"gateway,omitempty"`
	Reference string  `bson:"reference,omitempty" json:"reference,omitempty"`
	Amount    float64 `bson:"amount" json:"amount"`
	Timestamp string  `bson:"timestamp" json:"timestamp"`
	Referral  string  `bson:"referral,omitempty" json:"referral,omitempty"`
}

// Admin is a record in the separate admin collection, the higher trust tier
// allowed to mint users.
type Admin struct {
	ID    string `bson:"_id" json:"id"`
	Token string `bson:"token" json:"-"`
}

// Public returns a copy with the bearer token stripped, for responses seen
// by anyone other than the user themselves.
func (u *User) Public() *User {
	c := *u
	c.Token = ""
	return &c
}

// PlanExpired reports whether the plan_expiry timestamp, if set, lies before
// now. An unset or unparsable expiry never blocks.
func (u *User) PlanExpired(now time.Time) bool {
	if u.PlanExpiry == "" {
		return false
	}
	exp, err := strconv.ParseInt(u.PlanExpiry, 10, 64)
	if err != nil {
		return false
	}
	return exp < now.Unix()
}

// Epoch renders a timestamp the way the documents store them, epoch seconds
// as text.
func Epoch(t time.Time) string {
	return strconv.FormatInt(t.UTC().Unix(), 10)
}
