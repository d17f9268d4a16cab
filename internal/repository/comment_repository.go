package repository

import (
	"context"
	"fmt"
	"time"

	commentDomain "github.com/shareit-hub/service-shareit/internal/domain/comment"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID       int64     `gorm:"primaryKey;autoIncrement"`
	Text     string    `gorm:"not null;size:1000"`
	ItemID   int64     `gorm:"not null;index"`
	Item     ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	AuthorID int64     `gorm:"not null;index"`
	Author   UserModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Created  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save inserts a comment.
func (r *GormCommentRepository) Save(ctx context.Context, c *commentDomain.Comment) (*commentDomain.Comment, error) {
	model := &CommentModel{
		Text:     c.Text(),
		ItemID:   c.ItemID(),
		AuthorID: c.Author().ID(),
		Created:  c.Created(),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return commentDomain.ReconstructComment(model.ID, c.Text(), c.ItemID(), c.Author(), c.Created()), nil
}

// FindByItems returns comments for the given items, newest first.
func (r *GormCommentRepository) FindByItems(ctx context.Context, itemIDs []int64) ([]*commentDomain.Comment, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("item_id IN ?", itemIDs).
		Order("created DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	comments := make([]*commentDomain.Comment, len(models))
	for i := range models {
		m := &models[i]
		comments[i] = commentDomain.ReconstructComment(m.ID, m.Text, m.ItemID, toDomainUser(&m.Author), m.Created.UTC())
	}
	return comments, nil
}
