package storage

import (
	"context"
	"os"
	"path/filepath"
)

type FileSnapshotState struct {
	FilePath string
}

func NewFileSnapshotState(filePath string) *FileSnapshotState {
	return &FileSnapshotState{FilePath: filePath}
}

func (f *FileSnapshotState) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(f.FilePath)
}

func (f *FileSnapshotState) Save(ctx context.Context, data []byte) error {
	if dir := filepath.Dir(f.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.FilePath, data, 0o644)
}
