package comment

import "context"

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Save(ctx context.Context, c *Comment) (*Comment, error)
	// FindByItems returns comments for the given items, newest first.
	FindByItems(ctx context.Context, itemIDs []int64) ([]*Comment, error)
}
