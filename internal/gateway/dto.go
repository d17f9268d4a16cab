package gateway

import "github.com/shareit-hub/service-shareit/pkg/jsontime"

// CreateUserDTO is the shape accepted for POST /users.
type CreateUserDTO struct {
	Name  string `json:"name" binding:"required,notblank"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserDTO is the shape accepted for PATCH /users/:id. Absent fields are left untouched.
type UpdateUserDTO struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,notblank"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

// CreateItemDTO is the shape accepted for POST /items.
type CreateItemDTO struct {
	Name        string `json:"name" binding:"required,notblank,max=50"`
	Description string `json:"description" binding:"required,notblank,max=50"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId,omitempty" binding:"omitempty,gt=0"`
}

// UpdateItemDTO is the shape accepted for PATCH /items/:id.
type UpdateItemDTO struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,notblank,max=50"`
	Description *string `json:"description,omitempty" binding:"omitempty,notblank,max=50"`
	Available   *bool   `json:"available,omitempty"`
}

// CommentDTO is the shape accepted for POST /items/:id/comment.
type CommentDTO struct {
	Text string `json:"text" binding:"required,notblank,max=50"`
}

// BookingDTO is the shape accepted for POST /bookings.
type BookingDTO struct {
	ItemID *int64         `json:"itemId" binding:"required"`
	Start  *jsontime.Time `json:"start" binding:"required"`
	End    *jsontime.Time `json:"end" binding:"required"`
}

// ItemRequestDTO is the shape accepted for POST /requests.
type ItemRequestDTO struct {
	Description string `json:"description" binding:"required,notblank"`
}
