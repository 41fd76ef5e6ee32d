package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/pageza/myplate-diets/backend/internal/model"
)

// Migrate creates or updates the schema for all persisted models
func Migrate(db *gorm.DB) error {
	log.Printf("Running auto-migration for %s", db.Dialector.Name())
	if err := db.AutoMigrate(&model.Recipe{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
