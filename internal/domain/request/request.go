package request

import (
	"strings"
	"time"

	"github.com/shareit-hub/service-shareit/pkg/domain"
)

// ItemRequest records that a user is looking for an item nobody offers yet.
type ItemRequest struct {
	id          int64
	description string
	requestorID int64
	created     time.Time
}

// NewItemRequest creates a request made by requestorID at created.
func NewItemRequest(description string, requestorID int64, created time.Time) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, domain.NewValidationError("request description is required")
	}
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return &ItemRequest{description: description, requestorID: requestorID, created: created}, nil
}

// ReconstructItemRequest rebuilds an ItemRequest from persistence.
func ReconstructItemRequest(id int64, description string, requestorID int64, created time.Time) *ItemRequest {
	return &ItemRequest{id: id, description: description, requestorID: requestorID, created: created}
}

func (r *ItemRequest) ID() int64           { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) RequestorID() int64  { return r.requestorID }
func (r *ItemRequest) Created() time.Time  { return r.created }
