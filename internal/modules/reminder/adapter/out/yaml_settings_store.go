package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"moodlog/internal/modules/reminder/domain"
	reminderout "moodlog/internal/modules/reminder/port/out"
)

type YAMLSettingsStore struct {
	path string
}

func NewYAMLSettingsStore(path string) reminderout.SettingsStore {
	return &YAMLSettingsStore{path: path}
}

// Load returns the defaults when no settings have been saved yet. Fields
// missing from the file keep their default value.
func (s *YAMLSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return domain.Settings{}, fmt.Errorf("read reminder settings: %w", err)
	}
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decode reminder settings: %w", err)
	}
	if settings.Time == "" {
		settings.Time = domain.DefaultTime
	}
	return settings, nil
}

func (s *YAMLSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create reminder settings dir: %w", err)
	}
	payload, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal reminder settings: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write reminder settings: %w", err)
	}
	return nil
}
