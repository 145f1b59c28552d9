package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// Migration represents a database schema migration.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrations is the list of all database migrations in order.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "catalog_tables",
		SQL: `
			-- Style catalog (curated by the content team)
			CREATE TABLE IF NOT EXISTS style_references (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				description TEXT,
				image_url TEXT,
				deliverable_type TEXT NOT NULL,
				style_axis TEXT NOT NULL,
				sub_style TEXT,
				semantic_tags TEXT,
				industries TEXT,
				mood_keywords TEXT,
				usage_count INTEGER NOT NULL DEFAULT 0,
				featured_order INTEGER NOT NULL DEFAULT 0,
				display_order INTEGER NOT NULL DEFAULT 0,
				is_active INTEGER NOT NULL DEFAULT 1,
				created_at_epoch INTEGER NOT NULL,
				updated_at_epoch INTEGER NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_styles_deliverable ON style_references(deliverable_type);
			CREATE INDEX IF NOT EXISTS idx_styles_deliverable_axis ON style_references(deliverable_type, style_axis);
			CREATE INDEX IF NOT EXISTS idx_styles_order ON style_references(featured_order, display_order);
			CREATE INDEX IF NOT EXISTS idx_styles_active ON style_references(is_active);

			-- Video reference catalog
			CREATE TABLE IF NOT EXISTS video_references (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT,
				video_url TEXT,
				thumbnail_url TEXT,
				style_axis TEXT NOT NULL,
				intents TEXT,
				platforms TEXT,
				topics TEXT,
				industries TEXT,
				mood_keywords TEXT,
				usage_count INTEGER NOT NULL DEFAULT 0,
				featured_order INTEGER NOT NULL DEFAULT 0,
				display_order INTEGER NOT NULL DEFAULT 0,
				is_active INTEGER NOT NULL DEFAULT 1,
				created_at_epoch INTEGER NOT NULL,
				updated_at_epoch INTEGER NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_videos_axis ON video_references(style_axis);
			CREATE INDEX IF NOT EXISTS idx_videos_order ON video_references(featured_order, display_order);
			CREATE INDEX IF NOT EXISTS idx_videos_active ON video_references(is_active);
		`,
	},
	{
		Version: 2,
		Name:    "companies",
		SQL: `
			CREATE TABLE IF NOT EXISTS companies (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				owner_user_id TEXT UNIQUE NOT NULL,
				primary_color TEXT,
				secondary_color TEXT,
				accent_color TEXT,
				brand_colors TEXT,
				industry TEXT,
				created_at_epoch INTEGER NOT NULL,
				updated_at_epoch INTEGER NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_companies_owner ON companies(owner_user_id);
		`,
	},
	{
		Version: 3,
		Name:    "style_selections",
		SQL: `
			CREATE TABLE IF NOT EXISTS style_selections (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id TEXT NOT NULL,
				style_id TEXT NOT NULL,
				style_axis TEXT NOT NULL,
				deliverable_type TEXT NOT NULL,
				selected_at_epoch INTEGER NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_selections_user_type ON style_selections(user_id, deliverable_type);
			CREATE INDEX IF NOT EXISTS idx_selections_style ON style_selections(style_id);
			CREATE INDEX IF NOT EXISTS idx_selections_time ON style_selections(selected_at_epoch DESC);
		`,
	},
}

// MigrationManager handles database schema migrations.
type MigrationManager struct {
	db *sql.DB
}

// NewMigrationManager creates a new migration manager.
func NewMigrationManager(db *sql.DB) *MigrationManager {
	return &MigrationManager{db: db}
}

// EnsureSchemaVersionsTable creates the schema_versions table if it doesn't exist.
func (m *MigrationManager) EnsureSchemaVersionsTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			id INTEGER PRIMARY KEY,
			version INTEGER UNIQUE NOT NULL,
			applied_at TEXT NOT NULL
		)
	`)
	return err
}

// GetAppliedVersions returns all applied migration versions.
func (m *MigrationManager) GetAppliedVersions() (map[int]bool, error) {
	rows, err := m.db.Query("SELECT version FROM schema_versions ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		versions[version] = true
	}
	return versions, rows.Err()
}

// ApplyMigration applies a single migration inside a transaction.
func (m *MigrationManager) ApplyMigration(migration Migration) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.SQL); err != nil {
		return fmt.Errorf("execute migration %d (%s): %w", migration.Version, migration.Name, err)
	}

	_, err = tx.Exec(
		"INSERT INTO schema_versions (version, applied_at) VALUES (?, ?)",
		migration.Version, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record migration %d: %w", migration.Version, err)
	}

	return tx.Commit()
}

// RunMigrations applies all pending migrations.
func (m *MigrationManager) RunMigrations() error {
	if err := m.EnsureSchemaVersionsTable(); err != nil {
		return fmt.Errorf("ensure schema_versions table: %w", err)
	}

	applied, err := m.GetAppliedVersions()
	if err != nil {
		return fmt.Errorf("get applied versions: %w", err)
	}

	for _, migration := range Migrations {
		if applied[migration.Version] {
			continue
		}

		if err := m.ApplyMigration(migration); err != nil {
			return err
		}
	}

	return nil
}
