package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the tables from the GORM models. Used for
// SQLite and local development; PostgreSQL deployments run migrations/.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&RoomModel{}, &BookingModel{}, &ReviewModel{}); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}
