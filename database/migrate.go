package database

import (
	"fmt"

	"marketsafe_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate runs the schema migration for every model. The pool comes from the
// caller; this package never opens its own connections.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Account{},
		&models.VerificationToken{},
		&models.Listing{},
		&models.Comment{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	return nil
}
