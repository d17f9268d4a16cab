package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/shareit-hub/service-shareit/pkg/domain"
)

// Finder is the query capability the listing strategies need from storage.
// Every method returns bookings ordered by start descending.
type Finder interface {
	FindByBooker(ctx context.Context, bookerID int64) ([]*Booking, error)
	FindByBookerAndStatus(ctx context.Context, bookerID int64, status BookingStatus) ([]*Booking, error)
	FindCurrentByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*Booking, error)
	FindPastByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*Booking, error)
	FindFutureByBooker(ctx context.Context, bookerID int64, now time.Time) ([]*Booking, error)

	FindByOwner(ctx context.Context, ownerID int64) ([]*Booking, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID int64, status BookingStatus) ([]*Booking, error)
	FindCurrentByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*Booking, error)
	FindPastByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*Booking, error)
	FindFutureByOwner(ctx context.Context, ownerID int64, now time.Time) ([]*Booking, error)
}

// QueryFunc answers one FindBookingState for userID at instant now.
type QueryFunc func(ctx context.Context, f Finder, userID int64, now time.Time) ([]*Booking, error)

var strategies = map[FindBookingState]QueryFunc{
	AllUsers: func(ctx context.Context, f Finder, id int64, _ time.Time) ([]*Booking, error) {
		return f.FindByBooker(ctx, id)
	},
	CurrentUsers: func(ctx context.Context, f Finder, id int64, now time.Time) ([]*Booking, error) {
		return f.FindCurrentByBooker(ctx, id, now)
	},
	PastUsers: func(ctx context.Context, f Finder, id int64, now time.Time) ([]*Booking, error) {
		return f.FindPastByBooker(ctx, id, now)
	},
	FutureUsers: func(ctx context.Context, f Finder, id int64, now time.Time) ([]*Booking, error) {
		return f.FindFutureByBooker(ctx, id, now)
	},
	WaitingUsers: func(ctx context.Context, f Finder, id int64, _ time.Time) ([]*Booking, error) {
		return f.FindByBookerAndStatus(ctx, id, StatusWaiting)
	},
	RejectedUsers: func(ctx context.Context, f Finder, id int64, _ time.Time) ([]*Booking, error) {
		return f.FindByBookerAndStatus(ctx, id, StatusRejected)
	},

	AllOwners: func(ctx context.Context, f Finder, id int64, _ time.Time) ([]*Booking, error) {
		return f.FindByOwner(ctx, id)
	},
	CurrentOwners: func(ctx context.Context, f Finder, id int64, now time.Time) ([]*Booking, error) {
		return f.FindCurrentByOwner(ctx, id, now)
	},
	PastOwners: func(ctx context.Context, f Finder, id int64, now time.Time) ([]*Booking, error) {
		return f.FindPastByOwner(ctx, id, now)
	},
	FutureOwners: func(ctx context.Context, f Finder, id int64, now time.Time) ([]*Booking, error) {
		return f.FindFutureByOwner(ctx, id, now)
	},
	WaitingOwners: func(ctx context.Context, f Finder, id int64, _ time.Time) ([]*Booking, error) {
		return f.FindByOwnerAndStatus(ctx, id, StatusWaiting)
	},
	RejectedOwners: func(ctx context.Context, f Finder, id int64, _ time.Time) ([]*Booking, error) {
		return f.FindByOwnerAndStatus(ctx, id, StatusRejected)
	},
}

// StrategyFor returns the query registered for state.
func StrategyFor(state FindBookingState) (QueryFunc, error) {
	fn, ok := strategies[state]
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf("no query registered for state %s", state))
	}
	return fn, nil
}
