package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	requestDomain "github.com/shareit-hub/service-shareit/internal/domain/request"
	"github.com/shareit-hub/service-shareit/pkg/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemRequestModel is the GORM model for the requests table.
type ItemRequestModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"not null;size:1000"`
	RequestorID int64     `gorm:"not null;index"`
	Requestor   UserModel `gorm:"foreignKey:RequestorID;constraint:OnDelete:RESTRICT"`
	Created     time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (ItemRequestModel) TableName() string {
	return "requests"
}

// GormItemRequestRepository is the GORM-based implementation of ItemRequestRepository.
type GormItemRequestRepository struct {
	db *gorm.DB
}

// NewGormItemRequestRepository creates a new GormItemRequestRepository.
func NewGormItemRequestRepository(db *gorm.DB) *GormItemRequestRepository {
	return &GormItemRequestRepository{db: db}
}

// Save inserts an item request.
func (r *GormItemRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) (*requestDomain.ItemRequest, error) {
	model := &ItemRequestModel{
		Description: req.Description(),
		RequestorID: req.RequestorID(),
		Created:     req.Created(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save item request: %w", err)
	}
	return toDomainItemRequest(model), nil
}

// FindByID retrieves an item request by id.
func (r *GormItemRequestRepository) FindByID(ctx context.Context, id int64) (*requestDomain.ItemRequest, error) {
	var model ItemRequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ItemRequest", id)
		}
		return nil, fmt.Errorf("failed to find item request by ID: %w", err)
	}
	return toDomainItemRequest(&model), nil
}

// FindByRequestor returns requestorID's requests, newest first.
func (r *GormItemRequestRepository) FindByRequestor(ctx context.Context, requestorID int64) ([]*requestDomain.ItemRequest, error) {
	return r.find(r.db.WithContext(ctx).Where("requestor_id = ?", requestorID))
}

// FindOthers returns requests made by anyone but userID, newest first.
func (r *GormItemRequestRepository) FindOthers(ctx context.Context, userID int64) ([]*requestDomain.ItemRequest, error) {
	return r.find(r.db.WithContext(ctx).Where("requestor_id <> ?", userID))
}

func (r *GormItemRequestRepository) find(db *gorm.DB) ([]*requestDomain.ItemRequest, error) {
	var models []ItemRequestModel
	if err := db.Order("created DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list item requests: %w", err)
	}
	requests := make([]*requestDomain.ItemRequest, len(models))
	for i := range models {
		requests[i] = toDomainItemRequest(&models[i])
	}
	return requests, nil
}

func toDomainItemRequest(m *ItemRequestModel) *requestDomain.ItemRequest {
	return requestDomain.ReconstructItemRequest(m.ID, m.Description, m.RequestorID, m.Created.UTC())
}
