package request

import "context"

// ItemRequestRepository defines persistence operations for item requests.
type ItemRequestRepository interface {
	Save(ctx context.Context, r *ItemRequest) (*ItemRequest, error)
	FindByID(ctx context.Context, id int64) (*ItemRequest, error)
	// FindByRequestor returns the user's requests, newest first.
	FindByRequestor(ctx context.Context, requestorID int64) ([]*ItemRequest, error)
	// FindOthers returns requests made by anyone but userID, newest first.
	FindOthers(ctx context.Context, userID int64) ([]*ItemRequest, error)
}
