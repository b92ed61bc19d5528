package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one journal day, keyed by calendar date (YYYY-MM-DD). Saves
// replace the row wholesale; there are no partial updates.
type Entry struct {
	ID         string
	Date       string
	Notes      string
	Photos     []string
	HealthData json.RawMessage
	SavedAt    int64
}

// UpsertEntry saves an entry for a date, replacing any existing content.
// healthData is the serialized derived snapshot computed at save time.
func (db *DB) UpsertEntry(date, notes string, photos []string, healthData []byte) (*Entry, error) {
	if photos == nil {
		photos = []string{}
	}
	photoJSON, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("marshal photos: %w", err)
	}

	now := time.Now().UnixMilli()
	_, err = db.Exec(`
		INSERT INTO entries (id, date, notes, photos, health_data, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			notes       = excluded.notes,
			photos      = excluded.photos,
			health_data = excluded.health_data,
			saved_at    = excluded.saved_at
	`, uuid.NewString(), date, notes, string(photoJSON), string(healthData), now)
	if err != nil {
		return nil, fmt.Errorf("upsert entry: %w", err)
	}

	return db.GetEntry(date)
}

// GetEntry returns the entry for a date, or nil when none exists.
func (db *DB) GetEntry(date string) (*Entry, error) {
	row := db.QueryRow(`
		SELECT id, date, notes, photos, health_data, saved_at
		FROM entries WHERE date = ?
	`, date)

	e, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// DeleteEntry removes the entry for a date. Deleting a missing date is a no-op.
func (db *DB) DeleteEntry(date string) error {
	if _, err := db.Exec(`DELETE FROM entries WHERE date = ?`, date); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// ListRange returns entries with start <= date <= end, ordered by date.
func (db *DB) ListRange(start, end string) ([]Entry, error) {
	rows, err := db.Query(`
		SELECT id, date, notes, photos, health_data, saved_at
		FROM entries WHERE date BETWEEN ? AND ? ORDER BY date
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("list range: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListAll returns every entry, ordered by date.
func (db *DB) ListAll() ([]Entry, error) {
	rows, err := db.Query(`
		SELECT id, date, notes, photos, health_data, saved_at
		FROM entries ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func scanEntry(scan func(...any) error) (*Entry, error) {
	var e Entry
	var photos string
	var health sql.NullString

	if err := scan(&e.ID, &e.Date, &e.Notes, &photos, &health, &e.SavedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(photos), &e.Photos); err != nil {
		e.Photos = []string{}
	}
	if health.Valid {
		e.HealthData = json.RawMessage(health.String)
	}
	return &e, nil
}
