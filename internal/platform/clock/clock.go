package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports the device's local wall clock. Date keys are derived
// from the local calendar, so it must not be normalized to UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}
