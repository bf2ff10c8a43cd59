package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// Envelope wraps every order lifecycle event
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID   string  `json:"order_id"`
	UserID    string  `json:"user_id"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
	Summary   string  `json:"items_summary"`
}

type OrderStatusChangedPayload struct {
	OrderID string `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
	Source  string `json:"source"` // "progressor" or "admin"
}

// Publisher delivers events to whoever tracks orders downstream
type Publisher interface {
	Publish(ctx context.Context, ev Envelope) error
	Close() error
}

// NewEnvelope builds a version 1 envelope with a fresh id
func NewEnvelope(producer, eventType, orderID string, payload any, at time.Time) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    at.UTC(),
		Producer:      producer,
		CorrelationID: orderID,
		Payload:       raw,
	}, nil
}

// UnwrapPayload decodes the payload of an envelope into T
func UnwrapPayload[T any](ev Envelope) (T, error) {
	var t T
	if err := json.Unmarshal(ev.Payload, &t); err != nil {
		return t, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}

// LogPublisher writes events to the log. Used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, ev Envelope) error {
	log.WithFields(logrus.Fields{
		"event_id":       ev.EventID,
		"event_type":     ev.EventType,
		"correlation_id": ev.CorrelationID,
		"payload":        string(ev.Payload),
	}).Info("Order event")
	return nil
}

func (LogPublisher) Close() error { return nil }
