package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/shareit-hub/service-shareit/internal/domain/item"
	"github.com/shareit-hub/service-shareit/internal/domain/user"
	"github.com/shareit-hub/service-shareit/pkg/domain"
)

// Booking is the aggregate root for the booking domain.
type Booking struct {
	id     int64
	start  time.Time
	end    time.Time
	item   *item.Item
	booker *user.User
	status BookingStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a WAITING booking of it by booker for [start, end).
// Rules are checked in a fixed order so the first violation is the one reported.
func NewBooking(start, end time.Time, it *item.Item, booker *user.User) (*Booking, error) {
	if it == nil {
		return nil, domain.NewValidationError("item is required")
	}
	if booker == nil {
		return nil, domain.NewValidationError("booker is required")
	}
	if start.After(end) {
		return nil, domain.NewLogicalError("start after end")
	}
	if start.Equal(end) {
		return nil, domain.NewLogicalError("zero-length booking")
	}
	if it.IsOwnedBy(booker.ID()) {
		return nil, domain.NewLogicalError("owner cannot book own item")
	}
	if !it.Available() {
		return nil, domain.NewLogicalError("item not available")
	}

	now := time.Now().UTC()
	return &Booking{
		start:     start.UTC(),
		end:       end.UTC(),
		item:      it,
		booker:    booker,
		status:    DefaultBookingStatus,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence without validation.
func ReconstructBooking(
	id int64,
	start, end time.Time,
	it *item.Item,
	booker *user.User,
	status BookingStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		item:      it,
		booker:    booker,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

// ID returns the booking identifier.
func (b *Booking) ID() int64 { return b.id }

// Start returns the first instant of the booking.
func (b *Booking) Start() time.Time { return b.start }

// End returns the instant the booking ends.
func (b *Booking) End() time.Time { return b.end }

// Item returns the booked item.
func (b *Booking) Item() *item.Item { return b.item }

// Booker returns the user who made the booking.
func (b *Booking) Booker() *user.User { return b.booker }

// Status returns the current status.
func (b *Booking) Status() BookingStatus { return b.status }

// Version returns the optimistic locking version.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last update timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// BookerID returns the booker's user id.
func (b *Booking) BookerID() int64 {
	if b.booker == nil {
		return 0
	}
	return b.booker.ID()
}

// OwnerID returns the id of the booked item's owner.
func (b *Booking) OwnerID() int64 {
	if b.item == nil {
		return 0
	}
	return b.item.OwnerID()
}

// --- Behavior ---

// Decide records the owner's decision. Only the item owner may decide, and only once.
func (b *Booking) Decide(actorID int64, approve bool) error {
	if b.OwnerID() != actorID {
		return domain.NewForbiddenError(fmt.Sprintf("only the owner may approve or reject booking %d", b.id))
	}

	target := StatusRejected
	if approve {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewLogicalError(fmt.Sprintf("booking already %s", strings.ToLower(b.status.String())))
	}

	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}

// CanBeViewedBy reports whether userID is the booker or the item owner.
func (b *Booking) CanBeViewedBy(userID int64) bool {
	return b.BookerID() == userID || b.OwnerID() == userID
}

// EndedBefore reports whether the booking was over at t.
func (b *Booking) EndedBefore(t time.Time) bool {
	return b.end.Before(t)
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
