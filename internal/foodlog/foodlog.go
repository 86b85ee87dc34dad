package foodlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry is one logged meal or snack, keyed by its capture timestamp.
type Entry struct {
	Timestamp   time.Time
	Description string
	Week        int
	// Suitable is nil when the entry was logged without analysis.
	Suitable *bool
}

// Repository is a database-backed repository for food log entries.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository over an existing connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts an entry. The timestamp is the primary key; logging two
// entries in the same millisecond replaces the first.
func (r *Repository) Add(ctx context.Context, e Entry) error {
	var suitable sql.NullInt64
	if e.Suitable != nil {
		suitable.Valid = true
		if *e.Suitable {
			suitable.Int64 = 1
		}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO food_log (ts, description, week, suitable) VALUES (?, ?, ?, ?)
		 ON CONFLICT(ts) DO UPDATE SET description = excluded.description, week = excluded.week, suitable = excluded.suitable`,
		e.Timestamp.UnixMilli(), e.Description, e.Week, suitable)
	if err != nil {
		return fmt.Errorf("failed to save food log entry: %w", err)
	}
	return nil
}

// ListDay returns the entries for the calendar day containing day, oldest
// first.
func (r *Repository) ListDay(ctx context.Context, day time.Time) ([]Entry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	rows, err := r.db.QueryContext(ctx,
		"SELECT ts, description, week, suitable FROM food_log WHERE ts >= ? AND ts < ? ORDER BY ts",
		start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to list food log entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var ts int64
		var suitable sql.NullInt64
		var e Entry
		if err := rows.Scan(&ts, &e.Description, &e.Week, &suitable); err != nil {
			return nil, fmt.Errorf("failed to scan food log entry: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		if suitable.Valid {
			v := suitable.Int64 != 0
			e.Suitable = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the entry with the given timestamp. Deleting an absent
// entry is not an error.
func (r *Repository) Delete(ctx context.Context, ts time.Time) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM food_log WHERE ts = ?", ts.UnixMilli()); err != nil {
		return fmt.Errorf("failed to delete food log entry: %w", err)
	}
	return nil
}
