package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	itemDomain "github.com/shareit-hub/service-shareit/internal/domain/item"
	"github.com/shareit-hub/service-shareit/pkg/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          int64             `gorm:"primaryKey;autoIncrement"`
	Name        string            `gorm:"not null;size:255"`
	Description string            `gorm:"not null;size:1000"`
	Available   bool              `gorm:"not null;index"`
	OwnerID     int64             `gorm:"not null;index"`
	Owner       UserModel         `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
	RequestID   *int64            `gorm:"index"`
	Request     *ItemRequestModel `gorm:"foreignKey:RequestID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time         `gorm:"not null"`
	UpdatedAt   time.Time         `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of ItemRepository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Owner")
}

// Save inserts an item. The owner row is referenced, never written.
func (r *GormItemRepository) Save(ctx context.Context, it *itemDomain.Item) (*itemDomain.Item, error) {
	model := toItemModel(it)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	return itemDomain.ReconstructItem(
		model.ID, it.Name(), it.Description(), it.Available(), it.Owner(), it.RequestID(), it.CreatedAt(), it.UpdatedAt(),
	), nil
}

// Update persists owner edits.
func (r *GormItemRepository) Update(ctx context.Context, it *itemDomain.Item) error {
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ?", it.ID()).
		Updates(map[string]interface{}{
			"name":        it.Name(),
			"description": it.Description(),
			"available":   it.Available(),
			"updated_at":  it.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Item", it.ID())
	}
	return nil
}

// FindByID retrieves an item with its owner.
func (r *GormItemRepository) FindByID(ctx context.Context, id int64) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.query(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Item", id)
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return toDomainItem(&model), nil
}

// FindByOwner returns the owner's items ordered by id.
func (r *GormItemRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*itemDomain.Item, error) {
	var models []ItemModel
	if err := r.query(ctx).Where("owner_id = ?", ownerID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner items: %w", err)
	}
	return toDomainItems(models), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search returns available items whose name or description contains text, ignoring case.
func (r *GormItemRepository) Search(ctx context.Context, text string) ([]*itemDomain.Item, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToUpper(text)) + "%"

	var models []ItemModel
	if err := r.query(ctx).
		Where("available = ?", true).
		Where("(UPPER(name) LIKE ? OR UPPER(description) LIKE ?)", pattern, pattern).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return toDomainItems(models), nil
}

// FindByRequestIDs returns items created in answer to any of the given requests.
func (r *GormItemRepository) FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*itemDomain.Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var models []ItemModel
	if err := r.query(ctx).Where("request_id IN ?", requestIDs).Order("id ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by request: %w", err)
	}
	return toDomainItems(models), nil
}

// --- Conversion Helpers ---

func toItemModel(it *itemDomain.Item) *ItemModel {
	return &ItemModel{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		OwnerID:     it.OwnerID(),
		RequestID:   it.RequestID(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}

func toDomainItem(m *ItemModel) *itemDomain.Item {
	return itemDomain.ReconstructItem(
		m.ID,
		m.Name,
		m.Description,
		m.Available,
		toDomainUser(&m.Owner),
		m.RequestID,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainItems(models []ItemModel) []*itemDomain.Item {
	items := make([]*itemDomain.Item, len(models))
	for i := range models {
		items[i] = toDomainItem(&models[i])
	}
	return items
}
