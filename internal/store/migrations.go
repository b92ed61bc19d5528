package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "entries: date-keyed journal entries",
		SQL: `
CREATE TABLE entries (
    id          TEXT PRIMARY KEY,
    date        TEXT NOT NULL UNIQUE,
    notes       TEXT NOT NULL DEFAULT '',
    photos      TEXT NOT NULL DEFAULT '[]',
    health_data TEXT,
    saved_at    INTEGER NOT NULL
);
`,
	},
	{
		Version:     2,
		Description: "user_profile: singleton profile row",
		SQL: `
CREATE TABLE user_profile (
    id             INTEGER PRIMARY KEY CHECK (id = 1),
    birth_date     TEXT,
    age            INTEGER NOT NULL DEFAULT 0,
    sex            TEXT NOT NULL DEFAULT '',
    height_feet    INTEGER NOT NULL DEFAULT 0,
    height_inches  INTEGER NOT NULL DEFAULT 0,
    weight         REAL NOT NULL DEFAULT 0,
    activity_level TEXT NOT NULL DEFAULT '',
    bmr            REAL NOT NULL DEFAULT 0,
    tdee           REAL NOT NULL DEFAULT 0,
    calorie_target REAL NOT NULL DEFAULT 0,
    updated_at     INTEGER NOT NULL
);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
