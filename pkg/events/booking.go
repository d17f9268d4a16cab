// Package events holds the topics and payloads exchanged over Kafka.
package events

import "time"

// TopicBookingEvents carries booking lifecycle events keyed by booking id.
const TopicBookingEvents = "shareit.booking.events"

// Event types published on TopicBookingEvents.
const (
	BookingCreated  = "shareit.booking.created"
	BookingApproved = "shareit.booking.approved"
	BookingRejected = "shareit.booking.rejected"
)

// BookingCreatedEvent is published when a booking is stored in WAITING.
type BookingCreatedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	OwnerID    int64     `json:"owner_id"`
	BookerID   int64     `json:"booker_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is published when the owner approves or rejects a booking.
type BookingDecidedEvent struct {
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	OwnerID    int64     `json:"owner_id"`
	BookerID   int64     `json:"booker_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
