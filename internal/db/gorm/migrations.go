package gorm

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// runMigrations runs all database migrations using gormigrate.
func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		// Migration 001: catalog tables
		{
			ID: "001_catalog_tables",
			Migrate: func(tx *gorm.DB) error {
				// AutoMigrate creates tables with all indexes from struct tags
				if err := tx.AutoMigrate(&StyleReference{}); err != nil {
					return err
				}
				return tx.AutoMigrate(&VideoReference{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("style_references", "video_references")
			},
		},

		// Migration 002: company brand records
		{
			ID: "002_companies",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&Company{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("companies")
			},
		},

		// Migration 003: selection history
		{
			ID: "003_style_selections",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&StyleSelection{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("style_selections")
			},
		},
	})

	return m.Migrate()
}
