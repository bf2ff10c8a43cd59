package models

import (
	"time"
)

// OrderStatus is the delivery stage of an order
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "placed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	// StatusCancelled is reserved; nothing sets it automatically
	StatusCancelled OrderStatus = "cancelled"
)

var nextStatus = map[OrderStatus]OrderStatus{
	StatusPlaced:         StatusPreparing,
	StatusPreparing:      StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// StatusTimeline is the simulated offset from placement at which an order
// reaches each status.
var StatusTimeline = map[OrderStatus]time.Duration{
	StatusPreparing:      5 * time.Second,
	StatusOutForDelivery: 30 * time.Second,
	StatusDelivered:      90 * time.Second,
}

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Next returns the status that follows s on the delivery timeline.
// ok is false for terminal statuses.
func (s OrderStatus) Next() (next OrderStatus, ok bool) {
	next, ok = nextStatus[s]
	return next, ok
}

// NextDue returns when an order placed at placedAt and currently in status s
// is due for its next transition, or nil if s is terminal.
func (s OrderStatus) NextDue(placedAt time.Time) *time.Time {
	next, ok := s.Next()
	if !ok {
		return nil
	}
	due := placedAt.Add(StatusTimeline[next])
	return &due
}
