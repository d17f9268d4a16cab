package comment

import (
	"strings"
	"time"

	"github.com/shareit-hub/service-shareit/internal/domain/user"
	"github.com/shareit-hub/service-shareit/pkg/domain"
)

// Comment is feedback left on an item by a past booker.
type Comment struct {
	id      int64
	text    string
	itemID  int64
	author  *user.User
	created time.Time
}

// NewComment creates a comment. A zero created time defaults to now.
func NewComment(text string, itemID int64, author *user.User, created time.Time) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("comment text is required")
	}
	if author == nil {
		return nil, domain.NewValidationError("comment author is required")
	}
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return &Comment{text: text, itemID: itemID, author: author, created: created}, nil
}

// ReconstructComment rebuilds a Comment from persistence.
func ReconstructComment(id int64, text string, itemID int64, author *user.User, created time.Time) *Comment {
	return &Comment{id: id, text: text, itemID: itemID, author: author, created: created}
}

func (c *Comment) ID() int64          { return c.id }
func (c *Comment) Text() string       { return c.text }
func (c *Comment) ItemID() int64      { return c.itemID }
func (c *Comment) Author() *user.User { return c.author }
func (c *Comment) Created() time.Time { return c.created }
