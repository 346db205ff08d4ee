package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lakshaylalia/Taskflow-Backend/internal/models"
)

// Connect opens the database. TranslateError maps driver-specific
// unique-constraint violations to gorm.ErrDuplicatedKey so handlers can
// rely on the indexes for dedup instead of check-then-insert races.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
}

func Migrate(database *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
	}

	migrator := database.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := database.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
