package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goalify"
	"goalify/plan"
)

func newTestJournal(t *testing.T) *FoodJournal {
	t.Helper()
	j, err := NewFoodJournal(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestFoodJournalRecordAndQuery(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	base := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	entries := []plan.FoodLogEntry{
		{ID: "a", FoodName: "Toast", Calories: 300, Protein: 8, Slot: goalify.Breakfast, Reasoning: "Visual Estimate", LoggedAt: base},
		{ID: "b", FoodName: "Pasta Carbonara", Calories: 650, Protein: 22, Slot: goalify.Lunch, Reasoning: "Large portion", LoggedAt: base.Add(5 * time.Hour)},
	}
	for _, e := range entries {
		require.NoError(t, j.RecordFoodLog(ctx, e))
	}

	got, err := j.Logs(ctx, base)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Toast", got[0].FoodName)
	assert.Equal(t, goalify.Lunch, got[1].Slot)

	// Midday cutoff only returns the later entry.
	got, err = j.Logs(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Pasta Carbonara", got[0].FoodName)
}

func TestFoodJournalConsumedSince(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	base := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordFoodLog(ctx, plan.FoodLogEntry{ID: "a", FoodName: "Toast", Calories: 300, Slot: goalify.Breakfast, LoggedAt: base}))
	require.NoError(t, j.RecordFoodLog(ctx, plan.FoodLogEntry{ID: "b", FoodName: "Pasta", Calories: 650, Slot: goalify.Lunch, LoggedAt: base.Add(5 * time.Hour)}))

	total, err := j.ConsumedSince(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, 950, total)

	// Empty window sums to zero, not an error.
	total, err = j.ConsumedSince(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestFoodJournalDuplicateID(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	entry := plan.FoodLogEntry{ID: "dup", FoodName: "Toast", Calories: 300, Slot: goalify.Breakfast, LoggedAt: time.Now()}
	require.NoError(t, j.RecordFoodLog(ctx, entry))
	assert.Error(t, j.RecordFoodLog(ctx, entry))
}
