package application

import (
	"context"
	"fmt"

	userDomain "github.com/shareit-hub/service-shareit/internal/domain/user"
	"github.com/shareit-hub/service-shareit/pkg/domain"
	"go.uber.org/zap"
)

// UserService implements use cases for the identity directory.
type UserService struct {
	repo   userDomain.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo userDomain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// CreateUser registers a user. Email uniqueness is enforced by storage.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	if req.ID != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("id must not be set when creating a user, got %d", *req.ID))
	}

	u, err := userDomain.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, u)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", saved.ID()))
	result := toUserDTO(saved)
	return &result, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// ListUsers returns every user ordered by id.
func (s *UserService) ListUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]UserDTO, len(users))
	for i, u := range users {
		result[i] = toUserDTO(u)
	}
	return result, nil
}

// UpdateUser applies a partial profile edit.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.Apply(userDomain.Patch{Name: req.Name, Email: req.Email}); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	result := toUserDTO(u)
	return &result, nil
}

// DeleteUser removes a user. A user still referenced by items, bookings or comments cannot be deleted.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
