package item

import "context"

// ItemRepository defines persistence operations for items. Loaded items carry their owner.
type ItemRepository interface {
	Save(ctx context.Context, it *Item) (*Item, error)
	Update(ctx context.Context, it *Item) error
	FindByID(ctx context.Context, id int64) (*Item, error)
	// FindByOwner returns the owner's items ordered by id.
	FindByOwner(ctx context.Context, ownerID int64) ([]*Item, error)
	// Search returns available items whose name or description contains text, ignoring case.
	Search(ctx context.Context, text string) ([]*Item, error)
	FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)
}
