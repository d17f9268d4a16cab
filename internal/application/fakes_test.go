package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	bookingDomain "github.com/shareit-hub/service-shareit/internal/domain/booking"
	commentDomain "github.com/shareit-hub/service-shareit/internal/domain/comment"
	itemDomain "github.com/shareit-hub/service-shareit/internal/domain/item"
	requestDomain "github.com/shareit-hub/service-shareit/internal/domain/request"
	userDomain "github.com/shareit-hub/service-shareit/internal/domain/user"
	"github.com/shareit-hub/service-shareit/pkg/domain"
	"github.com/shareit-hub/service-shareit/pkg/kafka"
)

// --- users ---

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*userDomain.User)}
}

func (r *fakeUserRepo) add(name, email string) *userDomain.User {
	u, _ := userDomain.NewUser(name, email)
	saved, _ := r.Save(context.Background(), u)
	return saved
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return nil, domain.NewConflictError("email already registered")
		}
	}
	r.nextID++
	saved := userDomain.ReconstructUser(r.nextID, u.Name(), u.Email(), u.CreatedAt(), u.UpdatedAt())
	r.users[saved.ID()] = saved
	return saved, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.users {
		if id != u.ID() && existing.Email() == u.Email() {
			return domain.NewConflictError("email already registered")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id)
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*userDomain.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.NewNotFoundError("User", id)
	}
	delete(r.users, id)
	return nil
}

// --- items ---

type fakeItemRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*itemDomain.Item)}
}

func (r *fakeItemRepo) add(owner *userDomain.User, name string, available bool) *itemDomain.Item {
	it, _ := itemDomain.NewItem(name, name+" description", available, owner, nil)
	saved, _ := r.Save(context.Background(), it)
	return saved
}

func (r *fakeItemRepo) Save(_ context.Context, it *itemDomain.Item) (*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	saved := itemDomain.ReconstructItem(r.nextID, it.Name(), it.Description(), it.Available(), it.Owner(), it.RequestID(), it.CreatedAt(), it.UpdatedAt())
	r.items[saved.ID()] = saved
	return saved, nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID()] = it
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id int64) (*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Item", id)
	}
	return it, nil
}

func (r *fakeItemRepo) filter(keep func(*itemDomain.Item) bool) []*itemDomain.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*itemDomain.Item
	for _, it := range r.items {
		if keep(it) {
			result = append(result, it)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

func (r *fakeItemRepo) FindByOwner(_ context.Context, ownerID int64) ([]*itemDomain.Item, error) {
	return r.filter(func(it *itemDomain.Item) bool { return it.IsOwnedBy(ownerID) }), nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string) ([]*itemDomain.Item, error) {
	needle := strings.ToUpper(text)
	return r.filter(func(it *itemDomain.Item) bool {
		return it.Available() && (strings.Contains(strings.ToUpper(it.Name()), needle) ||
			strings.Contains(strings.ToUpper(it.Description()), needle))
	}), nil
}

func (r *fakeItemRepo) FindByRequestIDs(_ context.Context, ids []int64) ([]*itemDomain.Item, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.filter(func(it *itemDomain.Item) bool {
		return it.RequestID() != nil && wanted[*it.RequestID()]
	}), nil
}

// --- bookings ---

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*bookingDomain.Booking
	saves    int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.saves++
	saved := bookingDomain.ReconstructBooking(r.nextID, bk.Start(), bk.End(), bk.Item(), bk.Booker(), bk.Status(), bk.Version(), bk.CreatedAt(), bk.UpdatedAt())
	r.bookings[saved.ID()] = saved
	return r.copyOf(saved), nil
}

// copyOf hands out detached aggregates so callers cannot mutate stored state without Update.
func (r *fakeBookingRepo) copyOf(bk *bookingDomain.Booking) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(bk.ID(), bk.Start(), bk.End(), bk.Item(), bk.Booker(), bk.Status(), bk.Version(), bk.CreatedAt(), bk.UpdatedAt())
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[bk.ID()]
	if !ok || stored.Version() != bk.Version()-1 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	r.bookings[bk.ID()] = r.copyOf(bk)
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id int64) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id)
	}
	return r.copyOf(bk), nil
}

func (r *fakeBookingRepo) filter(keep func(*bookingDomain.Booking) bool) []*bookingDomain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if keep(bk) {
			result = append(result, r.copyOf(bk))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start().After(result[j].Start()) })
	return result
}

func (r *fakeBookingRepo) FindByBooker(_ context.Context, id int64) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.BookerID() == id }), nil
}

func (r *fakeBookingRepo) FindByBookerAndStatus(_ context.Context, id int64, s bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.BookerID() == id && b.Status() == s }), nil
}

func (r *fakeBookingRepo) FindCurrentByBooker(_ context.Context, id int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.BookerID() == id && isCurrent(b, now) }), nil
}

func (r *fakeBookingRepo) FindPastByBooker(_ context.Context, id int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.BookerID() == id && b.End().Before(now) }), nil
}

func (r *fakeBookingRepo) FindFutureByBooker(_ context.Context, id int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.BookerID() == id && b.Start().After(now) }), nil
}

func (r *fakeBookingRepo) FindByOwner(_ context.Context, id int64) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.OwnerID() == id }), nil
}

func (r *fakeBookingRepo) FindByOwnerAndStatus(_ context.Context, id int64, s bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.OwnerID() == id && b.Status() == s }), nil
}

func (r *fakeBookingRepo) FindCurrentByOwner(_ context.Context, id int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.OwnerID() == id && isCurrent(b, now) }), nil
}

func (r *fakeBookingRepo) FindPastByOwner(_ context.Context, id int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.OwnerID() == id && b.End().Before(now) }), nil
}

func (r *fakeBookingRepo) FindFutureByOwner(_ context.Context, id int64, now time.Time) ([]*bookingDomain.Booking, error) {
	return r.filter(func(b *bookingDomain.Booking) bool { return b.OwnerID() == id && b.Start().After(now) }), nil
}

func (r *fakeBookingRepo) FindApprovedByItems(_ context.Context, ids []int64) ([]*bookingDomain.Booking, error) {
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	result := r.filter(func(b *bookingDomain.Booking) bool {
		return wanted[b.Item().ID()] && b.Status() == bookingDomain.StatusApproved
	})
	sort.Slice(result, func(i, j int) bool { return result[i].Start().Before(result[j].Start()) })
	return result, nil
}

func (r *fakeBookingRepo) HasCompletedBooking(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	found := r.filter(func(b *bookingDomain.Booking) bool {
		return b.BookerID() == bookerID && b.Item().ID() == itemID &&
			b.Status() == bookingDomain.StatusApproved && b.End().Before(now)
	})
	return len(found) > 0, nil
}

func isCurrent(b *bookingDomain.Booking, now time.Time) bool {
	return b.Start().Before(now) && b.End().After(now)
}

// --- comments ---

type fakeCommentRepo struct {
	mu       sync.Mutex
	nextID   int64
	comments []*commentDomain.Comment
}

func (r *fakeCommentRepo) Save(_ context.Context, c *commentDomain.Comment) (*commentDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	saved := commentDomain.ReconstructComment(r.nextID, c.Text(), c.ItemID(), c.Author(), c.Created())
	r.comments = append(r.comments, saved)
	return saved, nil
}

func (r *fakeCommentRepo) FindByItems(_ context.Context, ids []int64) ([]*commentDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var result []*commentDomain.Comment
	for _, c := range r.comments {
		if wanted[c.ItemID()] {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created().After(result[j].Created()) })
	return result, nil
}

// --- requests ---

type fakeRequestRepo struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*requestDomain.ItemRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]*requestDomain.ItemRequest)}
}

func (r *fakeRequestRepo) Save(_ context.Context, req *requestDomain.ItemRequest) (*requestDomain.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	saved := requestDomain.ReconstructItemRequest(r.nextID, req.Description(), req.RequestorID(), req.Created())
	r.requests[saved.ID()] = saved
	return saved, nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id int64) (*requestDomain.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("ItemRequest", id)
	}
	return req, nil
}

func (r *fakeRequestRepo) filter(keep func(*requestDomain.ItemRequest) bool) []*requestDomain.ItemRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*requestDomain.ItemRequest
	for _, req := range r.requests {
		if keep(req) {
			result = append(result, req)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Created().After(result[j].Created()) })
	return result
}

func (r *fakeRequestRepo) FindByRequestor(_ context.Context, id int64) ([]*requestDomain.ItemRequest, error) {
	return r.filter(func(req *requestDomain.ItemRequest) bool { return req.RequestorID() == id }), nil
}

func (r *fakeRequestRepo) FindOthers(_ context.Context, id int64) ([]*requestDomain.ItemRequest, error) {
	return r.filter(func(req *requestDomain.ItemRequest) bool { return req.RequestorID() != id }), nil
}

// --- events and cache ---

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
	keys   []string
	err    error
}

func (p *fakePublisher) PublishEvent(_ context.Context, _ string, key string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	p.keys = append(p.keys, key)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

type recordingViews struct {
	mu          sync.Mutex
	invalidated []int64
	next        ItemViewInvalidator
}

func (r *recordingViews) InvalidateItemViews(ctx context.Context, itemIDs ...int64) {
	r.mu.Lock()
	r.invalidated = append(r.invalidated, itemIDs...)
	next := r.next
	r.mu.Unlock()
	if next != nil {
		next.InvalidateItemViews(ctx, itemIDs...)
	}
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	ttls        map[string]time.Duration
	invalidated []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func cacheKey(itemID int64, ownerView bool) string {
	return fmt.Sprintf("%d:%t", itemID, ownerView)
}

func (c *fakeCache) Get(_ context.Context, itemID int64, ownerView bool, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[cacheKey(itemID, ownerView)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, itemID int64, ownerView bool, view any, maxTTL time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	c.entries[cacheKey(itemID, ownerView)] = raw
	c.ttls[cacheKey(itemID, ownerView)] = maxTTL
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, itemIDs ...int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range itemIDs {
		delete(c.entries, cacheKey(id, true))
		delete(c.entries, cacheKey(id, false))
		delete(c.ttls, cacheKey(id, true))
		delete(c.ttls, cacheKey(id, false))
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}
