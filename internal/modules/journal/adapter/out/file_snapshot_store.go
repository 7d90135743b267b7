package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	journalout "moodlog/internal/modules/journal/port/out"
)

// FileSnapshotStore keeps the whole journal under one fixed file name.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) journalout.SnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Read(_ context.Context) (string, bool, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read snapshot: %w", err)
	}
	return string(payload), true, nil
}

// Write replaces the file via rename so a failed write leaves the previous
// snapshot intact.
func (s *FileSnapshotStore) Write(_ context.Context, text string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".mood-data-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(text + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
