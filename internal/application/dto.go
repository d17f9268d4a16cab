package application

import (
	bookingDomain "github.com/shareit-hub/service-shareit/internal/domain/booking"
	commentDomain "github.com/shareit-hub/service-shareit/internal/domain/comment"
	itemDomain "github.com/shareit-hub/service-shareit/internal/domain/item"
	requestDomain "github.com/shareit-hub/service-shareit/internal/domain/request"
	userDomain "github.com/shareit-hub/service-shareit/internal/domain/user"
	"github.com/shareit-hub/service-shareit/pkg/jsontime"
)

// UserDTO is the API representation of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ItemDTO is the API representation of an item without booking details.
type ItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// BookingView is the API representation of a booking.
type BookingView struct {
	ID     int64         `json:"id"`
	Start  jsontime.Time `json:"start"`
	End    jsontime.Time `json:"end"`
	Status string        `json:"status"`
	Item   ItemDTO       `json:"item"`
	Booker UserDTO       `json:"booker"`
}

// ShortBookingDTO is the booking summary shown on an item view.
type ShortBookingDTO struct {
	ID       int64         `json:"id"`
	BookerID int64         `json:"bookerId"`
	Start    jsontime.Time `json:"start"`
	End      jsontime.Time `json:"end"`
	Status   string        `json:"status"`
}

// CommentDTO is the API representation of a comment.
type CommentDTO struct {
	ID         int64         `json:"id"`
	Text       string        `json:"text"`
	ItemID     int64         `json:"itemId"`
	AuthorID   int64         `json:"authorId"`
	AuthorName string        `json:"authorName"`
	Created    jsontime.Time `json:"created"`
}

// ItemView is an item with its comments and, for the owner, the neighbouring approved bookings.
type ItemView struct {
	ItemDTO
	LastBooking *ShortBookingDTO `json:"lastBooking"`
	NextBooking *ShortBookingDTO `json:"nextBooking"`
	Comments    []CommentDTO     `json:"comments"`
}

// ItemRequestDTO is the API representation of an item request and the items offered for it.
type ItemRequestDTO struct {
	ID          int64         `json:"id"`
	Description string        `json:"description"`
	RequestorID int64         `json:"requestorId"`
	Created     jsontime.Time `json:"created"`
	Items       []ItemDTO     `json:"items"`
}

// --- Request DTOs ---

// CreateBookingRequest holds the data needed to create a booking.
// Status is accepted for compatibility and always ignored.
type CreateBookingRequest struct {
	Start  *jsontime.Time `json:"start"`
	End    *jsontime.Time `json:"end"`
	ItemID *int64         `json:"itemId"`
	Status string         `json:"status,omitempty"`
}

// CreateUserRequest holds the data needed to register a user. ID must be absent.
type CreateUserRequest struct {
	ID    *int64 `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateUserRequest holds a partial profile edit.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// CreateItemRequest holds the data needed to list an item. ID must be absent.
type CreateItemRequest struct {
	ID          *int64 `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// UpdateItemRequest holds a partial item edit.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest holds a new comment.
type CreateCommentRequest struct {
	Text    string         `json:"text"`
	Created *jsontime.Time `json:"created,omitempty"`
}

// CreateItemRequestRequest holds a new item request.
type CreateItemRequestRequest struct {
	Description string `json:"description"`
}

// --- Mapping ---

func toUserDTO(u *userDomain.User) UserDTO {
	if u == nil {
		return UserDTO{}
	}
	return UserDTO{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	if it == nil {
		return ItemDTO{}
	}
	return ItemDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		OwnerID:     it.OwnerID(),
		RequestID:   it.RequestID(),
	}
}

func toBookingView(bk *bookingDomain.Booking) BookingView {
	return BookingView{
		ID:     bk.ID(),
		Start:  jsontime.New(bk.Start()),
		End:    jsontime.New(bk.End()),
		Status: bk.Status().String(),
		Item:   toItemDTO(bk.Item()),
		Booker: toUserDTO(bk.Booker()),
	}
}

func toBookingViews(bookings []*bookingDomain.Booking) []BookingView {
	views := make([]BookingView, len(bookings))
	for i, bk := range bookings {
		views[i] = toBookingView(bk)
	}
	return views
}

func toShortBookingDTO(bk *bookingDomain.Booking) *ShortBookingDTO {
	if bk == nil {
		return nil
	}
	return &ShortBookingDTO{
		ID:       bk.ID(),
		BookerID: bk.BookerID(),
		Start:    jsontime.New(bk.Start()),
		End:      jsontime.New(bk.End()),
		Status:   bk.Status().String(),
	}
}

func toCommentDTO(c *commentDomain.Comment) CommentDTO {
	dto := CommentDTO{
		ID:      c.ID(),
		Text:    c.Text(),
		ItemID:  c.ItemID(),
		Created: jsontime.New(c.Created()),
	}
	if a := c.Author(); a != nil {
		dto.AuthorID = a.ID()
		dto.AuthorName = a.Name()
	}
	return dto
}

func toItemRequestDTO(r *requestDomain.ItemRequest, items []ItemDTO) ItemRequestDTO {
	if items == nil {
		items = []ItemDTO{}
	}
	return ItemRequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		RequestorID: r.RequestorID(),
		Created:     jsontime.New(r.Created()),
		Items:       items,
	}
}
