package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every ShareIt table, referenced tables first.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&UserModel{},
		&ItemRequestModel{},
		&ItemModel{},
		&BookingModel{},
		&CommentModel{},
	); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}
