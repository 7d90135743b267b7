package config

import (
	"fmt"
	"path/filepath"
)

const stateDir = ".moodlog"

type Config struct {
	JournalPath  string
	DataPath     string
	DBPath       string
	ReminderPath string
	ReportsDir   string
	Verbose      bool
}

func New(journalPath string) (Config, error) {
	if journalPath == "" {
		return Config{}, fmt.Errorf("journal path is required")
	}
	return Config{
		JournalPath:  journalPath,
		DataPath:     filepath.Join(journalPath, stateDir, "mood-data.json"),
		DBPath:       filepath.Join(journalPath, stateDir, "moodlog.db"),
		ReminderPath: filepath.Join(journalPath, stateDir, "reminder.yaml"),
		ReportsDir:   filepath.Join(journalPath, "reports"),
	}, nil
}
