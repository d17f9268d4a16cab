package item

import (
	"strings"
	"time"

	"github.com/shareit-hub/service-shareit/internal/domain/user"
	"github.com/shareit-hub/service-shareit/pkg/domain"
)

// Item is something a user offers for booking.
type Item struct {
	id          int64
	name        string
	description string
	available   bool
	owner       *user.User
	requestID   *int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem creates an Item owned by owner. requestID links it to the request it answers.
func NewItem(name, description string, available bool, owner *user.User, requestID *int64) (*Item, error) {
	if owner == nil {
		return nil, domain.NewValidationError("item owner is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("item description is required")
	}
	now := time.Now().UTC()
	return &Item{
		name:        name,
		description: description,
		available:   available,
		owner:       owner,
		requestID:   requestID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructItem rebuilds an Item from persistence without validation.
func ReconstructItem(
	id int64,
	name, description string,
	available bool,
	owner *user.User,
	requestID *int64,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		owner:       owner,
		requestID:   requestID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i *Item) ID() int64            { return i.id }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Available() bool      { return i.available }
func (i *Item) Owner() *user.User    { return i.owner }
func (i *Item) RequestID() *int64    { return i.requestID }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// OwnerID returns the owning user's id.
func (i *Item) OwnerID() int64 {
	if i.owner == nil {
		return 0
	}
	return i.owner.ID()
}

// IsOwnedBy reports whether userID owns the item.
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.OwnerID() == userID
}

// Patch holds the optional fields of an owner edit.
type Patch struct {
	Name        *string
	Description *string
	Available   *bool
}

// Apply changes the fields set in p on behalf of actorID, who must be the owner.
func (i *Item) Apply(actorID int64, p Patch) error {
	if !i.IsOwnedBy(actorID) {
		return domain.NewForbiddenError("only the owner may edit the item")
	}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return domain.NewValidationError("item name must not be blank")
		}
		i.name = *p.Name
	}
	if p.Description != nil {
		if strings.TrimSpace(*p.Description) == "" {
			return domain.NewValidationError("item description must not be blank")
		}
		i.description = *p.Description
	}
	if p.Available != nil {
		i.available = *p.Available
	}
	i.updatedAt = time.Now().UTC()
	return nil
}
