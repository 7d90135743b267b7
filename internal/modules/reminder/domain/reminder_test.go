package domain_test

import (
	"testing"
	"time"

	"moodlog/internal/modules/reminder/domain"
)

func TestParseClock(t *testing.T) {
	t.Parallel()
	hour, minute, err := domain.ParseClock("07:05")
	if err != nil || hour != 7 || minute != 5 {
		t.Fatalf("unexpected parse %d:%d %v", hour, minute, err)
	}
	for _, bad := range []string{"", "7:05", "24:00", "12:60", "ab:cd", "12:00:00"} {
		if _, _, err := domain.ParseClock(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDue(t *testing.T) {
	t.Parallel()
	settings := domain.Settings{Enabled: true, Time: "20:00"}
	evening := time.Date(2024, time.January, 15, 20, 0, 0, 0, time.UTC)
	afternoon := time.Date(2024, time.January, 15, 19, 59, 0, 0, time.UTC)

	cases := []struct {
		name     string
		settings domain.Settings
		now      time.Time
		logged   bool
		want     bool
	}{
		{"at reminder time", settings, evening, false, true},
		{"before reminder time", settings, afternoon, false, false},
		{"already logged", settings, evening, true, false},
		{"disabled", domain.DefaultSettings(), evening, false, false},
		{"already reminded", domain.Settings{Enabled: true, Time: "20:00", LastReminded: "2024-01-15"}, evening, false, false},
		{"reminded yesterday", domain.Settings{Enabled: true, Time: "20:00", LastReminded: "2024-01-14"}, evening, false, true},
	}
	for _, tc := range cases {
		if got := domain.Due(tc.settings, tc.now, "2024-01-15", tc.logged); got != tc.want {
			t.Fatalf("%s: due = %t, want %t", tc.name, got, tc.want)
		}
	}
}

func TestNextAt(t *testing.T) {
	t.Parallel()
	settings := domain.Settings{Enabled: true, Time: "20:00"}
	next, ok := domain.NextAt(settings, time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC))
	if !ok || !next.Equal(time.Date(2024, time.January, 31, 20, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected later today, got %v", next)
	}
	next, ok = domain.NextAt(settings, time.Date(2024, time.January, 31, 20, 0, 0, 0, time.UTC))
	if !ok || !next.Equal(time.Date(2024, time.February, 1, 20, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected tomorrow, got %v", next)
	}
	if _, ok := domain.NextAt(domain.DefaultSettings(), time.Now()); ok {
		t.Fatalf("disabled reminder has no next time")
	}
}
