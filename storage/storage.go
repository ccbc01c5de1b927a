// Package storage persists reconciler snapshots and the food journal.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"goalify/plan"
)

// SnapshotState is raw snapshot persistence, file or S3 backed.
type SnapshotState interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// SaveSnapshot marshals and writes a reconciler snapshot.
func SaveSnapshot(ctx context.Context, state SnapshotState, snap plan.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := state.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads and unmarshals a reconciler snapshot.
func LoadSnapshot(ctx context.Context, state SnapshotState) (plan.Snapshot, error) {
	data, err := state.Load(ctx)
	if err != nil {
		return plan.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	var snap plan.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return plan.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// TestSnapshotState is a simple in-memory implementation for testing
type TestSnapshotState struct {
	data []byte
	err  error
}

func NewTestSnapshotState(data []byte) *TestSnapshotState {
	return &TestSnapshotState{data: data}
}

func NewTestSnapshotStateWithError() *TestSnapshotState {
	return &TestSnapshotState{err: errors.New("not found")}
}

func (t *TestSnapshotState) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}

func (t *TestSnapshotState) Save(ctx context.Context, data []byte) error {
	if t.err != nil {
		return t.err
	}
	t.data = data
	return nil
}
