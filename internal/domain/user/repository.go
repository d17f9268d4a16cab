package user

import "context"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Save stores a new user and returns it with its assigned id.
	Save(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id int64) error
}
