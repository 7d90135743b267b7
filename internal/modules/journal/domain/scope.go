package domain

import (
	"fmt"
	"strings"
)

func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func YearPrefix(year int) string {
	return fmt.Sprintf("%04d-", year)
}

// MonthScope filters by key prefix. The fixed-width key format makes the
// prefix match equivalent to a date range check.
func MonthScope(records Collection, year, month int) Collection {
	return withPrefix(records, MonthPrefix(year, month))
}

func YearScope(records Collection, year int) Collection {
	return withPrefix(records, YearPrefix(year))
}

func withPrefix(records Collection, prefix string) Collection {
	out := Collection{}
	for key, record := range records {
		if strings.HasPrefix(string(key), prefix) {
			out[key] = record
		}
	}
	return out
}
