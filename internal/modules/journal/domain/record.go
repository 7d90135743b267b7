package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	apperrors "moodlog/internal/platform/errors"
)

const SchemaVersion = 1

// Grade is the ordinal mood rating. Lower is better.
type Grade int

const (
	GradeAPlus Grade = iota
	GradeA
	GradeB
	GradeC
	GradeD
	GradeF
)

// GradeCount is the number of grade buckets.
const GradeCount = 6

var gradeLetters = [GradeCount]string{"A+", "A", "B", "C", "D", "F"}

func (g Grade) Valid() bool {
	return g >= GradeAPlus && g <= GradeF
}

func (g Grade) Letter() string {
	if !g.Valid() {
		return "?"
	}
	return gradeLetters[g]
}

// Value inverts the grade so that higher is better (A+ = 5, F = 0).
func (g Grade) Value() int {
	return int(GradeF) - int(g)
}

// ParseGrade accepts a letter ("A+", "b") or a grade index ("0".."5").
func ParseGrade(input string) (Grade, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	for i, letter := range gradeLetters {
		if s == letter {
			return Grade(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Grade(n).Valid() {
		return Grade(n), nil
	}
	return 0, fmt.Errorf("%w: unsupported grade %q", apperrors.ErrInvalidInput, input)
}

// DateKey is the canonical YYYY-MM-DD identity of a local calendar day.
type DateKey string

// MoodRecord is one logged day. A day without a record has no key at all.
type MoodRecord struct {
	Grade Grade  `json:"grade"`
	Note  string `json:"note"`
}

// Collection is the full journal state keyed by DateKey.
type Collection map[DateKey]MoodRecord

// Keys returns the keys in chronological order.
func (c Collection) Keys() []DateKey {
	keys := make([]DateKey, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
