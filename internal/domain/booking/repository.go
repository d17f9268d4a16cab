package booking

import (
	"context"
	"time"
)

// BookingRepository defines the persistence contract for booking aggregates.
// Loaded bookings carry their item (with owner) and booker.
type BookingRepository interface {
	Finder

	// FindByID retrieves a booking by its identifier.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// Save persists a new booking and returns it with its assigned id.
	Save(ctx context.Context, booking *Booking) (*Booking, error)

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error

	// FindApprovedByItems returns APPROVED bookings of the given items ordered by start.
	FindApprovedByItems(ctx context.Context, itemIDs []int64) ([]*Booking, error)

	// HasCompletedBooking reports whether bookerID has an APPROVED booking of itemID that ended before now.
	HasCompletedBooking(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}
