package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DaysInMonth uses a 1-based month. time.Date normalizes day 0 of the next
// month to the last day of this one on the proleptic Gregorian calendar.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NormalizeMonth folds an out-of-range 1-based month into the neighbouring
// year, so month 0 is December of the year before and month 13 is January.
func NormalizeMonth(year, month int) (int, int) {
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), int(t.Month())
}

// FirstWeekdayOffset is the number of blank cells before day 1 in a
// Monday-first week (Monday = 0 ... Sunday = 6).
func FirstWeekdayOffset(year, month int) int {
	weekday := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday()
	return (int(weekday) + 6) % 7
}

// ToDateKey reads the calendar day in t's own location; callers pass local time.
func ToDateKey(t time.Time) DateKey {
	y, m, d := t.Date()
	return FormatDateKey(y, int(m), d)
}

func FormatDateKey(year, month, day int) DateKey {
	return DateKey(fmt.Sprintf("%04d-%02d-%02d", year, month, day))
}

func ParseDateKey(input string) (year, month, day int, err error) {
	if !dateKeyPattern.MatchString(input) {
		return 0, 0, 0, fmt.Errorf("date %q is not in YYYY-MM-DD form", input)
	}
	year, _ = strconv.Atoi(input[0:4])
	month, _ = strconv.Atoi(input[5:7])
	day, _ = strconv.Atoi(input[8:10])
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("date %q has month out of range", input)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return 0, 0, 0, fmt.Errorf("date %q has day out of range", input)
	}
	return year, month, day, nil
}

func (k DateKey) Valid() bool {
	_, _, _, err := ParseDateKey(string(k))
	return err == nil
}

// DisplayLabel renders "Weekday, Mon D".
func DisplayLabel(t time.Time) string {
	return t.Format("Monday, Jan 2")
}

func MonthLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}

type DayCell struct {
	Day    int
	Key    DateKey
	Record *MoodRecord
	Today  bool
}

// MonthGeometry is everything a renderer needs to lay out one month.
type MonthGeometry struct {
	Year   int
	Month  int
	Days   int
	Offset int
	Label  string
	Cells  []DayCell
}

func BuildMonthGeometry(year, month int, records Collection, today DateKey) MonthGeometry {
	days := DaysInMonth(year, month)
	geometry := MonthGeometry{
		Year:   year,
		Month:  month,
		Days:   days,
		Offset: FirstWeekdayOffset(year, month),
		Label:  MonthLabel(year, month),
		Cells:  make([]DayCell, 0, days),
	}
	for day := 1; day <= days; day++ {
		key := FormatDateKey(year, month, day)
		cell := DayCell{Day: day, Key: key, Today: key == today}
		if record, ok := records[key]; ok {
			record := record
			cell.Record = &record
		}
		geometry.Cells = append(geometry.Cells, cell)
	}
	return geometry
}
