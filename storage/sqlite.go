package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"goalify"
	"goalify/plan"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS food_logs (
	id        TEXT PRIMARY KEY,
	food_name TEXT NOT NULL,
	calories  INTEGER NOT NULL,
	protein   INTEGER NOT NULL,
	carbs     INTEGER NOT NULL,
	fat       INTEGER NOT NULL,
	slot      TEXT NOT NULL,
	reasoning TEXT NOT NULL,
	logged_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_food_logs_logged_at ON food_logs(logged_at);
`

// FoodJournal is a sqlite-backed record of confirmed food logs. It implements
// plan.Journal.
type FoodJournal struct {
	db *sql.DB
}

func NewFoodJournal(path string) (*FoodJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open food journal db: %w", err)
	}
	if _, err := db.Exec(journalSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create food journal schema: %w", err)
	}
	return &FoodJournal{db: db}, nil
}

func (j *FoodJournal) RecordFoodLog(ctx context.Context, entry plan.FoodLogEntry) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO food_logs (id, food_name, calories, protein, carbs, fat, slot, reasoning, logged_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.FoodName, entry.Calories, entry.Protein, entry.Carbs, entry.Fat,
		string(entry.Slot), entry.Reasoning, entry.LoggedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record food log: %w", err)
	}
	return nil
}

// Logs returns all entries logged at or after the given time, oldest first.
func (j *FoodJournal) Logs(ctx context.Context, since time.Time) ([]plan.FoodLogEntry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, food_name, calories, protein, carbs, fat, slot, reasoning, logged_at
		 FROM food_logs WHERE logged_at >= ? ORDER BY logged_at`,
		since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query food logs: %w", err)
	}
	defer rows.Close()

	var entries []plan.FoodLogEntry
	for rows.Next() {
		var e plan.FoodLogEntry
		var slot string
		if err := rows.Scan(&e.ID, &e.FoodName, &e.Calories, &e.Protein, &e.Carbs, &e.Fat, &slot, &e.Reasoning, &e.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan food log: %w", err)
		}
		e.Slot = goalify.MealType(slot)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ConsumedSince sums calories logged at or after the given time, used to
// rebuild the day ledger on restart.
func (j *FoodJournal) ConsumedSince(ctx context.Context, since time.Time) (int, error) {
	var total sql.NullInt64
	err := j.db.QueryRowContext(ctx,
		`SELECT SUM(calories) FROM food_logs WHERE logged_at >= ?`,
		since.UTC(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum food logs: %w", err)
	}
	return int(total.Int64), nil
}

func (j *FoodJournal) Close() error {
	return j.db.Close()
}
