package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingDomain "github.com/shareit-hub/service-shareit/internal/domain/booking"
	commentDomain "github.com/shareit-hub/service-shareit/internal/domain/comment"
	itemDomain "github.com/shareit-hub/service-shareit/internal/domain/item"
	requestDomain "github.com/shareit-hub/service-shareit/internal/domain/request"
	userDomain "github.com/shareit-hub/service-shareit/internal/domain/user"
	"github.com/shareit-hub/service-shareit/pkg/domain"
	"go.uber.org/zap"
)

// ItemViewCache stores rendered item views. The owner's view and everyone else's are cached separately.
// A positive maxTTL passed to Set shortens the cache's own expiry for that entry.
type ItemViewCache interface {
	Get(ctx context.Context, itemID int64, ownerView bool, dest any) (bool, error)
	Set(ctx context.Context, itemID int64, ownerView bool, view any, maxTTL time.Duration) error
	Invalidate(ctx context.Context, itemIDs ...int64) error
}

// ItemService implements use cases for the item catalog and item comments.
type ItemService struct {
	items    itemDomain.ItemRepository
	users    userDomain.UserRepository
	requests requestDomain.ItemRequestRepository
	bookings bookingDomain.BookingRepository
	comments commentDomain.CommentRepository
	cache    ItemViewCache
	logger   *zap.Logger
	clock    func() time.Time
}

// NewItemService creates a new ItemService. cache may be nil.
func NewItemService(
	items itemDomain.ItemRepository,
	users userDomain.UserRepository,
	requests requestDomain.ItemRequestRepository,
	bookings bookingDomain.BookingRepository,
	comments commentDomain.CommentRepository,
	cache ItemViewCache,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		requests: requests,
		bookings: bookings,
		comments: comments,
		cache:    cache,
		logger:   logger,
		clock:    time.Now,
	}
}

// CreateItem lists a new item owned by ownerID.
func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	if req.ID != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("id must not be set when creating an item, got %d", *req.ID))
	}
	if req.Available == nil {
		return nil, domain.NewValidationError("available is required")
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if req.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	it, err := itemDomain.NewItem(req.Name, req.Description, *req.Available, owner, req.RequestID)
	if err != nil {
		return nil, err
	}

	saved, err := s.items.Save(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item created", zap.Int64("item_id", saved.ID()), zap.Int64("owner_id", ownerID))
	result := toItemDTO(saved)
	return &result, nil
}

// UpdateItem applies a partial edit made by the owner.
func (s *ItemService) UpdateItem(ctx context.Context, actorID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	patch := itemDomain.Patch{Name: req.Name, Description: req.Description, Available: req.Available}
	if err := it.Apply(actorID, patch); err != nil {
		return nil, err
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	s.invalidate(ctx, itemID)
	result := toItemDTO(it)
	return &result, nil
}

// GetItem returns the item view as seen by viewerID.
func (s *ItemService) GetItem(ctx context.Context, viewerID, itemID int64) (*ItemView, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	ownerView := it.IsOwnedBy(viewerID)

	if s.cache != nil {
		var cached ItemView
		hit, err := s.cache.Get(ctx, itemID, ownerView, &cached)
		if err != nil {
			s.logger.Warn("item view cache read failed", zap.Int64("item_id", itemID), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	views, err := s.buildViews(ctx, []*itemDomain.Item{it}, ownerView)
	if err != nil {
		return nil, err
	}
	view := views[0]

	if s.cache != nil {
		s.storeView(ctx, itemID, ownerView, view)
	}
	return &view, nil
}

// storeView caches view until the next booking starts, when last and next shift.
func (s *ItemService) storeView(ctx context.Context, itemID int64, ownerView bool, view ItemView) {
	var maxTTL time.Duration
	if view.NextBooking != nil {
		maxTTL = view.NextBooking.Start.Time.Sub(s.clock())
		if maxTTL <= 0 {
			return
		}
	}
	if err := s.cache.Set(ctx, itemID, ownerView, view, maxTTL); err != nil {
		s.logger.Warn("item view cache write failed", zap.Int64("item_id", itemID), zap.Error(err))
	}
}

// ListOwnerItems returns views of every item ownerID owns.
func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID int64) ([]ItemView, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items of owner %d: %w", ownerID, err)
	}
	return s.buildViews(ctx, items, true)
}

// SearchItems returns available items matching text. Blank text matches nothing.
func (s *ItemService) SearchItems(ctx context.Context, text string) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}

	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	result := make([]ItemDTO, len(items))
	for i, it := range items {
		result[i] = toItemDTO(it)
	}
	return result, nil
}

// AddComment stores a comment from a user who has completed an approved booking of the item.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	created := now
	if req.Created != nil {
		created = req.Created.Time
	}

	ok, err := s.bookings.HasCompletedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check bookings of user %d: %w", authorID, err)
	}
	if !ok {
		return nil, domain.NewLogicalError(fmt.Sprintf("user %d has no completed booking of item %d", authorID, itemID))
	}

	c, err := commentDomain.NewComment(req.Text, itemID, author, created)
	if err != nil {
		return nil, err
	}
	saved, err := s.comments.Save(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.invalidate(ctx, itemID)
	result := toCommentDTO(saved)
	return &result, nil
}

// InvalidateItemViews drops cached views of the given items.
func (s *ItemService) InvalidateItemViews(ctx context.Context, itemIDs ...int64) {
	s.invalidate(ctx, itemIDs...)
}

func (s *ItemService) invalidate(ctx context.Context, itemIDs ...int64) {
	if s.cache == nil || len(itemIDs) == 0 {
		return
	}
	if err := s.cache.Invalidate(ctx, itemIDs...); err != nil {
		s.logger.Warn("item view cache invalidation failed", zap.Int64s("item_ids", itemIDs), zap.Error(err))
	}
}

// buildViews attaches comments to every item and, when withBookings is set, the last and next approved bookings.
func (s *ItemService) buildViews(ctx context.Context, items []*itemDomain.Item, withBookings bool) ([]ItemView, error) {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID()
	}

	commentsByItem := make(map[int64][]CommentDTO, len(items))
	if len(ids) > 0 {
		comments, err := s.comments.FindByItems(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load comments: %w", err)
		}
		for _, c := range comments {
			commentsByItem[c.ItemID()] = append(commentsByItem[c.ItemID()], toCommentDTO(c))
		}
	}

	bookingsByItem := make(map[int64][]*bookingDomain.Booking)
	if withBookings && len(ids) > 0 {
		approved, err := s.bookings.FindApprovedByItems(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load approved bookings: %w", err)
		}
		for _, bk := range approved {
			bookingsByItem[bk.Item().ID()] = append(bookingsByItem[bk.Item().ID()], bk)
		}
	}

	now := s.clock().UTC()
	views := make([]ItemView, len(items))
	for i, it := range items {
		comments := commentsByItem[it.ID()]
		if comments == nil {
			comments = []CommentDTO{}
		}
		last, next := lastAndNext(bookingsByItem[it.ID()], now)
		views[i] = ItemView{
			ItemDTO:     toItemDTO(it),
			LastBooking: toShortBookingDTO(last),
			NextBooking: toShortBookingDTO(next),
			Comments:    comments,
		}
	}
	return views, nil
}

// lastAndNext picks the latest booking that started before now and the earliest that starts after it.
// bookings must be ordered by start ascending.
func lastAndNext(bookings []*bookingDomain.Booking, now time.Time) (last, next *bookingDomain.Booking) {
	for _, bk := range bookings {
		if bk.Start().Before(now) {
			last = bk
		}
		if bk.Start().After(now) {
			next = bk
			break
		}
	}
	return last, next
}
