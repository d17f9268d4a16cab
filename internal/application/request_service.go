package application

import (
	"context"
	"fmt"
	"time"

	itemDomain "github.com/shareit-hub/service-shareit/internal/domain/item"
	requestDomain "github.com/shareit-hub/service-shareit/internal/domain/request"
	userDomain "github.com/shareit-hub/service-shareit/internal/domain/user"
	"go.uber.org/zap"
)

// RequestService implements use cases for item requests.
type RequestService struct {
	requests requestDomain.ItemRequestRepository
	users    userDomain.UserRepository
	items    itemDomain.ItemRepository
	logger   *zap.Logger
	clock    func() time.Time
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requests requestDomain.ItemRequestRepository,
	users userDomain.UserRepository,
	items itemDomain.ItemRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		users:    users,
		items:    items,
		logger:   logger,
		clock:    time.Now,
	}
}

// CreateRequest records that requestorID is looking for an item.
func (s *RequestService) CreateRequest(ctx context.Context, requestorID int64, req CreateItemRequestRequest) (*ItemRequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, err
	}

	r, err := requestDomain.NewItemRequest(req.Description, requestorID, s.clock().UTC())
	if err != nil {
		return nil, err
	}
	saved, err := s.requests.Save(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("failed to save item request: %w", err)
	}

	s.logger.Info("item request created", zap.Int64("request_id", saved.ID()), zap.Int64("requestor_id", requestorID))
	result := toItemRequestDTO(saved, nil)
	return &result, nil
}

// ListOwnRequests returns the caller's requests, newest first, with the items offered for each.
func (s *RequestService) ListOwnRequests(ctx context.Context, requestorID int64) ([]ItemRequestDTO, error) {
	if _, err := s.users.FindByID(ctx, requestorID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindByRequestor(ctx, requestorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests of user %d: %w", requestorID, err)
	}
	return s.withItems(ctx, requests)
}

// ListOtherRequests returns everyone else's requests, newest first, with the items offered for each.
func (s *RequestService) ListOtherRequests(ctx context.Context, userID int64) ([]ItemRequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	requests, err := s.requests.FindOthers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return s.withItems(ctx, requests)
}

// GetRequest returns one request with the items offered for it.
func (s *RequestService) GetRequest(ctx context.Context, userID, requestID int64) (*ItemRequestDTO, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	r, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	result, err := s.withItems(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &result[0], nil
}

func (s *RequestService) withItems(ctx context.Context, requests []*requestDomain.ItemRequest) ([]ItemRequestDTO, error) {
	result := make([]ItemRequestDTO, len(requests))
	if len(requests) == 0 {
		return result, nil
	}

	ids := make([]int64, len(requests))
	for i, r := range requests {
		ids[i] = r.ID()
	}
	items, err := s.items.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for requests: %w", err)
	}

	byRequest := make(map[int64][]ItemDTO)
	for _, it := range items {
		if rid := it.RequestID(); rid != nil {
			byRequest[*rid] = append(byRequest[*rid], toItemDTO(it))
		}
	}
	for i, r := range requests {
		result[i] = toItemRequestDTO(r, byRequest[r.ID()])
	}
	return result, nil
}
