package application

import (
	"context"
	"fmt"
	"time"

	bookingDomain "github.com/shareit-hub/service-shareit/internal/domain/booking"
	itemDomain "github.com/shareit-hub/service-shareit/internal/domain/item"
	userDomain "github.com/shareit-hub/service-shareit/internal/domain/user"
	"github.com/shareit-hub/service-shareit/pkg/domain"
	"github.com/shareit-hub/service-shareit/pkg/events"
	"github.com/shareit-hub/service-shareit/pkg/kafka"
	"go.uber.org/zap"
)

const eventSource = "shareit-server"

// EventPublisher publishes CloudEvents. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}

// ItemViewInvalidator drops rendered item views after their bookings change. *ItemService satisfies it.
type ItemViewInvalidator interface {
	InvalidateItemViews(ctx context.Context, itemIDs ...int64)
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo      bookingDomain.BookingRepository
	users     userDomain.UserRepository
	items     itemDomain.ItemRepository
	views     ItemViewInvalidator
	publisher EventPublisher
	logger    *zap.Logger
	clock     func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.BookingRepository,
	users userDomain.UserRepository,
	items itemDomain.ItemRepository,
	views ItemViewInvalidator,
	publisher EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		users:     users,
		items:     items,
		views:     views,
		publisher: publisher,
		logger:    logger,
		clock:     time.Now,
	}
}

// CreateBooking stores a WAITING booking of req.ItemID made by callerID.
func (s *BookingService) CreateBooking(ctx context.Context, callerID int64, req CreateBookingRequest) (*BookingView, error) {
	if req.Start == nil {
		return nil, domain.NewValidationError("start is required")
	}
	if req.End == nil {
		return nil, domain.NewValidationError("end is required")
	}
	if req.ItemID == nil {
		return nil, domain.NewValidationError("itemId is required")
	}

	it, err := s.items.FindByID(ctx, *req.ItemID)
	if err != nil {
		return nil, err
	}
	booker, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(req.Start.Time, req.End.Time, it, booker)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, bk)
	if err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", saved.ID()),
		zap.Int64("item_id", it.ID()),
		zap.Int64("booker_id", callerID),
	)

	s.publishEvent(ctx, events.BookingCreated, saved.ID(), events.BookingCreatedEvent{
		BookingID:  saved.ID(),
		ItemID:     it.ID(),
		OwnerID:    it.OwnerID(),
		BookerID:   callerID,
		Start:      saved.Start(),
		End:        saved.End(),
		OccurredAt: s.clock().UTC(),
	})

	result := toBookingView(saved)
	return &result, nil
}

// UpdateBooking approves or rejects a WAITING booking on behalf of the item owner.
func (s *BookingService) UpdateBooking(ctx context.Context, actorID, bookingID int64, approve bool) (*BookingView, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Decide(actorID, approve); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.repo.Update(ctx, bk); err != nil {
		return nil, err
	}
	s.views.InvalidateItemViews(ctx, bk.Item().ID())

	eventType := events.BookingRejected
	if approve {
		eventType = events.BookingApproved
	}
	s.publishEvent(ctx, eventType, bk.ID(), events.BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.Item().ID(),
		OwnerID:    bk.OwnerID(),
		BookerID:   bk.BookerID(),
		Status:     bk.Status().String(),
		OccurredAt: s.clock().UTC(),
	})

	result := toBookingView(bk)
	return &result, nil
}

// GetBooking returns a booking to its booker or the item owner.
func (s *BookingService) GetBooking(ctx context.Context, requesterID, bookingID int64) (*BookingView, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.CanBeViewedBy(requesterID) {
		return nil, domain.NewForbiddenError(fmt.Sprintf("only the booker or the owner may view booking %d", bookingID))
	}

	result := toBookingView(bk)
	return &result, nil
}

// ListForBooker returns the caller's own bookings in the given state, latest start first.
func (s *BookingService) ListForBooker(ctx context.Context, callerID int64, state string) ([]BookingView, error) {
	return s.list(ctx, callerID, state, bookingDomain.RoleBooker)
}

// ListForOwner returns bookings of the caller's items in the given state, latest start first.
func (s *BookingService) ListForOwner(ctx context.Context, callerID int64, state string) ([]BookingView, error) {
	return s.list(ctx, callerID, state, bookingDomain.RoleOwner)
}

func (s *BookingService) list(ctx context.Context, callerID int64, state string, role bookingDomain.Role) ([]BookingView, error) {
	if _, err := s.users.FindByID(ctx, callerID); err != nil {
		return nil, err
	}

	findState, err := bookingDomain.ParseFindBookingState(state, role)
	if err != nil {
		return nil, err
	}
	query, err := bookingDomain.StrategyFor(findState)
	if err != nil {
		return nil, err
	}

	bookings, err := query(ctx, s.repo, callerID, s.clock().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", findState, err)
	}
	return toBookingViews(bookings), nil
}

func (s *BookingService) publishEvent(ctx context.Context, eventType string, bookingID int64, data any) {
	if s.publisher == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	cloudEvent.Subject = fmt.Sprintf("booking/%d", bookingID)

	key := fmt.Sprintf("%d", bookingID)
	if err := s.publisher.PublishEvent(ctx, events.TopicBookingEvents, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Int64("booking_id", bookingID),
			zap.Error(err),
		)
	}
}
