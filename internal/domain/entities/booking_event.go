package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType represents the type of ledger change
type BookingEventType string

const (
	BookingEventCreated       BookingEventType = "booking_created"
	BookingEventStatusToggled BookingEventType = "booking_status_toggled"
)

// BookingEvent is published whenever the ledger changes
type BookingEvent struct {
	ID        string           `json:"id"`
	Type      BookingEventType `json:"type"`
	Booking   BookingRecord    `json:"booking"`
	Timestamp time.Time        `json:"timestamp"`
}

// NewBookingEvent creates a new booking event
func NewBookingEvent(eventType BookingEventType, record BookingRecord) *BookingEvent {
	return &BookingEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Booking:   record,
		Timestamp: time.Now(),
	}
}
