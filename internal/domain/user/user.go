package user

import (
	"strings"
	"time"

	"github.com/shareit-hub/service-shareit/pkg/domain"
)

// User is the aggregate root for the identity directory.
type User struct {
	id        int64
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a User that has not been persisted yet.
func NewUser(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if strings.TrimSpace(email) == "" {
		return nil, domain.NewValidationError("user email is required")
	}
	now := time.Now().UTC()
	return &User{
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a User from persistence without validation.
func ReconstructUser(id int64, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() int64            { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Patch holds the optional fields of a profile edit.
type Patch struct {
	Name  *string
	Email *string
}

// Apply updates the fields set in p. Unset fields are kept.
func (u *User) Apply(p Patch) error {
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return domain.NewValidationError("user name must not be blank")
		}
		u.name = *p.Name
	}
	if p.Email != nil {
		if strings.TrimSpace(*p.Email) == "" {
			return domain.NewValidationError("user email must not be blank")
		}
		u.email = *p.Email
	}
	u.updatedAt = time.Now().UTC()
	return nil
}
