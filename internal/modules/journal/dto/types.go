package dto

import "moodlog/internal/modules/journal/domain"

// GradeLetter maps a grade index (0 = A+) to its letter.
func GradeLetter(grade int) string {
	return domain.Grade(grade).Letter()
}

// ParseGrade accepts a letter (A+..F) or an index 0-5.
func ParseGrade(input string) (int, error) {
	grade, err := domain.ParseGrade(input)
	return int(grade), err
}

// DaysInMonth uses a 1-based month.
func DaysInMonth(year, month int) int {
	return domain.DaysInMonth(year, month)
}

// NormalizeMonth carries months outside 1-12 into the neighbouring year.
func NormalizeMonth(year, month int) (int, int) {
	return domain.NormalizeMonth(year, month)
}

type RecordOutput struct {
	Key    string
	Found  bool
	Grade  int
	Letter string
	Note   string
}

// SetRecordInput clears the day when Grade is nil.
type SetRecordInput struct {
	Key   string
	Grade *int
	Note  *string
}

type GradeOutput struct {
	Letter string
	Grade  *int
}

type SummaryOutput struct {
	Scope       string
	Counts      [6]int
	Percentages [6]string
	Total       int
	Average     *float64
	Letter      string
	Grade       *int
}

type DayCellOutput struct {
	Day       int
	Key       string
	HasRecord bool
	Grade     int
	Letter    string
	Note      string
	Today     bool
}

type MonthOutput struct {
	Year    int
	Month   int
	Days    int
	Offset  int
	Label   string
	Cells   []DayCellOutput
	Summary SummaryOutput
}

type YearOutput struct {
	Year    int
	Months  []MonthOutput
	Summary SummaryOutput
}

type ExportInput struct {
	Format string
}

type ExportOutput struct {
	Format   string
	FileName string
	Content  string
	Total    int
}

type ImportInput struct {
	Content string
}

type ImportOutput struct {
	Incoming int
	Total    int
}

type ShareInput struct {
	Year int
	Save bool
}

type ShareOutput struct {
	Year int
	Text string
	Path string
}

type ReindexOutput struct {
	Total           int
	Year            int
	MonthlyAverages map[int]float64
}
