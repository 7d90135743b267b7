package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTime = "20:00"
	Message     = "Don't forget to log your mood today!"
)

type Settings struct {
	Enabled bool   `yaml:"enabled"`
	Time    string `yaml:"time"`
	// LastReminded is the date key of the last day a reminder fired.
	LastReminded string `yaml:"last_reminded,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{Enabled: false, Time: DefaultTime}
}

// ParseClock reads a 24h "HH:MM" wall-clock time.
func ParseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("time %q must be HH:MM", value)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time %q has invalid hour", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q has invalid minute", value)
	}
	return hour, minute, nil
}

// Due reports whether a reminder should fire at now. today is now's date key.
func Due(settings Settings, now time.Time, today string, loggedToday bool) bool {
	if !settings.Enabled || loggedToday || settings.LastReminded == today {
		return false
	}
	hour, minute, err := ParseClock(settings.Time)
	if err != nil {
		return false
	}
	return now.Hour()*60+now.Minute() >= hour*60+minute
}

// NextAt is the next wall-clock instant the reminder fires in now's location.
func NextAt(settings Settings, now time.Time) (time.Time, bool) {
	if !settings.Enabled {
		return time.Time{}, false
	}
	hour, minute, err := ParseClock(settings.Time)
	if err != nil {
		return time.Time{}, false
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, 0, 0, now.Location())
	}
	return next, true
}
