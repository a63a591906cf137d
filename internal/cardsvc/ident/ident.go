package ident

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	alphaNum    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	upperDigits = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	digits      = "0123456789"
)

func randomString(alphabet string, n int) string {
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			log.Fatalf("Error reading random source: %v", err)
		}
		b[i] = alphabet[idx.Int64()]
	}
	return string(b)
}

// CardID returns an 8 character alphanumeric card identifier.
func CardID() string {
	return randomString(alphaNum, 8)
}

// PayoutID returns a payout code like PAYOUT-8F2KQ01Z.
func PayoutID() string {
	return "PAYOUT-" + randomString(upperDigits, 8)
}

// TransactionID returns a 12 character uppercase transaction code.
func TransactionID() string {
	return randomString(upperDigits, 12)
}

// UserID combines a random digit sequence with the creation time so ids sort
// loosely by age while staying opaque.
func UserID(now time.Time) string {
	return randomString(digits, 10) + "." + strconv.FormatInt(now.Unix(), 10)
}

// Token returns a 40 character hex bearer credential.
func Token() string {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Error reading random source: %v", err)
	}
	return hex.EncodeToString(b)
}
