package domain_test

import (
	"testing"

	"moodlog/internal/modules/journal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()
	summary := domain.Summarize(domain.Collection{})
	if summary.Total != 0 || summary.Average != nil {
		t.Fatalf("empty summary must have no total and no average: %+v", summary)
	}
	for i, pct := range summary.Percentages {
		if pct != "0.0" {
			t.Fatalf("bucket %d: expected 0.0, got %s", i, pct)
		}
	}
}

func TestSummarizeMonthScenario(t *testing.T) {
	t.Parallel()
	records := domain.Collection{
		"2024-01-03": {Grade: domain.GradeAPlus},
		"2024-01-04": {Grade: domain.GradeAPlus, Note: "great"},
		"2024-01-10": {Grade: domain.GradeA},
		"2024-01-31": {Grade: domain.GradeF},
		"2024-02-01": {Grade: domain.GradeC},
		"2023-01-15": {Grade: domain.GradeD},
	}
	summary := domain.Summarize(domain.MonthScope(records, 2024, 1))
	want := [domain.GradeCount]int{2, 1, 0, 0, 0, 1}
	if summary.Counts != want {
		t.Fatalf("counts = %v, want %v", summary.Counts, want)
	}
	if summary.Total != 4 {
		t.Fatalf("total = %d, want 4", summary.Total)
	}
	if summary.Average == nil || *summary.Average != 3.5 {
		t.Fatalf("average = %v, want 3.5", summary.Average)
	}
	if got := domain.GradeFromAverage(summary.Average); got.Letter != "A" || got.Grade == nil || *got.Grade != domain.GradeA {
		t.Fatalf("3.5 must land in the A tier, got %+v", got)
	}
	if summary.Percentages[0] != "50.0" || summary.Percentages[1] != "25.0" || summary.Percentages[5] != "25.0" {
		t.Fatalf("unexpected percentages %v", summary.Percentages)
	}
}

func TestSummarizeIndependentRounding(t *testing.T) {
	t.Parallel()
	records := domain.Collection{
		"2024-05-01": {Grade: domain.GradeA},
		"2024-05-02": {Grade: domain.GradeB},
		"2024-05-03": {Grade: domain.GradeC},
	}
	summary := domain.Summarize(records)
	for _, idx := range []int{1, 2, 3} {
		if summary.Percentages[idx] != "33.3" {
			t.Fatalf("bucket %d: expected 33.3, got %s", idx, summary.Percentages[idx])
		}
	}
}

func TestSummarizeSkipsMalformedGrades(t *testing.T) {
	t.Parallel()
	records := domain.Collection{
		"2024-01-01": {Grade: domain.GradeB},
		"2024-01-02": {Grade: domain.Grade(9)},
		"2024-01-03": {Grade: domain.Grade(-1)},
	}
	summary := domain.Summarize(records)
	sum := 0
	for _, c := range summary.Counts {
		if c < 0 {
			t.Fatalf("negative count in %v", summary.Counts)
		}
		sum += c
	}
	if summary.Total != 1 || sum != summary.Total {
		t.Fatalf("malformed grades must be skipped: %+v", summary)
	}
	if *summary.Average != 3 {
		t.Fatalf("average = %v, want 3", *summary.Average)
	}
}

func TestGradeFromAverageBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		avg    float64
		letter string
	}{
		{5, "A+"},
		{4.5, "A+"},
		{4.4999, "A"},
		{3.5, "A"},
		{3.4999, "B"},
		{2.5, "B"},
		{1.5, "C"},
		{1.4999, "D"},
		{0.5, "D"},
		{0.4999, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		info := domain.GradeFromAverage(ptr(tc.avg))
		if info.Letter != tc.letter {
			t.Fatalf("GradeFromAverage(%v) = %s, want %s", tc.avg, info.Letter, tc.letter)
		}
		if info.Grade == nil || info.Grade.Letter() != tc.letter {
			t.Fatalf("grade index does not match letter for %v", tc.avg)
		}
	}
	none := domain.GradeFromAverage(nil)
	if none.Letter != "—" || none.Grade != nil {
		t.Fatalf("absent average must map to the sentinel, got %+v", none)
	}
}

func TestParseGrade(t *testing.T) {
	t.Parallel()
	for input, want := range map[string]domain.Grade{"A+": domain.GradeAPlus, "a": domain.GradeA, " f ": domain.GradeF, "3": domain.GradeC} {
		got, err := domain.ParseGrade(input)
		if err != nil || got != want {
			t.Fatalf("ParseGrade(%q) = %v, %v", input, got, err)
		}
	}
	for _, input := range []string{"E", "6", "-1", "A++", ""} {
		if _, err := domain.ParseGrade(input); err == nil {
			t.Fatalf("expected %q to fail", input)
		}
	}
}

func TestYearScopeUsesPrefix(t *testing.T) {
	t.Parallel()
	records := domain.Collection{
		"2024-01-01": {Grade: domain.GradeA},
		"2024-12-31": {Grade: domain.GradeB},
		"2025-01-01": {Grade: domain.GradeC},
		"2023-12-31": {Grade: domain.GradeD},
	}
	scoped := domain.YearScope(records, 2024)
	if len(scoped) != 2 {
		t.Fatalf("expected two 2024 entries, got %v", scoped)
	}
	if _, ok := scoped["2025-01-01"]; ok {
		t.Fatalf("2025 leaked into 2024 scope")
	}
	if len(domain.MonthScope(records, 2024, 2)) != 0 {
		t.Fatalf("empty month must produce an empty scope")
	}
}
