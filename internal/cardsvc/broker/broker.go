package broker

import (
	"encoding/json"
	"os"
	"time"

	"github.com/uwitz/cards-service/internal/cardsvc/models"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const subjectPrefix = "cards."

// Broker publishes lifecycle events to NATS. A nil broker is valid and
// publishes nothing, so the service keeps resolving cards when the bus is
// down.
type Broker struct {
	Url   string
	Token string
	Conn  *nats.Conn
}

type event struct {
	ID   string      `json:"id"`
	At   string      `json:"at"`
	Data interface{} `json:"data,omitempty"`
}

func Connect() (*Broker, error) {
	b := &Broker{
		Url:   os.Getenv("NATS_URL"),
		Token: os.Getenv("NATS_TOKEN"),
	}

	if b.Url == "" {
		b.Url = "nats://localhost:4224"
	}

	opts := []nats.Option{
		nats.Name("NATS Connection"),
	}

	// if token provided
	if b.Token != "" {
		opts = append(opts, nats.Token(b.Token))
	}

	conn, err := nats.Connect(b.Url, opts...)
	if err != nil {
		return nil, err
	}

	b.Conn = conn

	return b, nil
}

func (b *Broker) Close() {
	if b != nil && b.Conn != nil {
		b.Conn.Close()
	}
}

// publish is fire-and-forget. Delivery failures are logged, never surfaced.
func (b *Broker) publish(subject string, data interface{}) {
	if b == nil || b.Conn == nil {
		return
	}

	evt := event{
		ID:   uuid.New().String(),
		At:   models.Epoch(time.Now()),
		Data: data,
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		log.Errorf("Error encoding event %s: %s", subject, err)
		return
	}

	if err := b.Conn.Publish(subjectPrefix+subject, payload); err != nil {
		log.Errorf("Error publishing event %s: %s", subject, err)
	}
}

func (b *Broker) CardCreated(card *models.Card) {
	b.publish("card.created", map[string]interface{}{
		"card_id":  card.ID,
		"owner_id": card.OwnerID,
		"type":     card.Type,
		"status":   card.Status,
	})
}

func (b *Broker) CardActivated(cardID string) {
	b.publish("card.activated", map[string]interface{}{"card_id": cardID})
}

func (b *Broker) CardDeleted(cardID string) {
	b.publish("card.deleted", map[string]interface{}{"card_id": cardID})
}

func (b *Broker) UserCreated(user *models.User) {
	b.publish("user.created", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"plan":     user.Plan,
	})
}

func (b *Broker) UserDeleted(userID string, cardsRemoved int64) {
	b.publish("user.deleted", map[string]interface{}{
		"user_id":       userID,
		"cards_removed": cardsRemoved,
	})
}

func (b *Broker) PayoutRequested(userID string, payout models.Payout) {
	b.publish("payout.requested", map[string]interface{}{
		"user_id":   userID,
		"payout_id": payout.ID,
		"amount":    payout.Amount,
		"currency":  payout.Currency,
	})
}

func (b *Broker) PayoutClaimed(userID, payoutID string) {
	b.publish("payout.claimed", map[string]interface{}{
		"user_id":   userID,
		"payout_id": payoutID,
	})
}
