package domain

import "strconv"

// NoDataLetter is shown in place of a grade when a scope has no records.
const NoDataLetter = "—"

type StatSummary struct {
	Counts      [GradeCount]int
	Percentages [GradeCount]string
	Total       int
	// Average is the mean value (5 = best). Nil when Total is zero.
	Average *float64
}

type GradeInfo struct {
	Letter string
	Grade  *Grade
}

// Summarize skips entries whose grade is out of range, so it is total over
// any input. Percentages are rounded per bucket and need not sum to 100.0.
func Summarize(records Collection) StatSummary {
	summary := StatSummary{}
	sum := 0
	for _, record := range records {
		if !record.Grade.Valid() {
			continue
		}
		summary.Counts[record.Grade]++
		summary.Total++
		sum += record.Grade.Value()
	}
	for i, count := range summary.Counts {
		if summary.Total == 0 {
			summary.Percentages[i] = "0.0"
			continue
		}
		pct := float64(count) / float64(summary.Total) * 100
		summary.Percentages[i] = strconv.FormatFloat(pct, 'f', 1, 64)
	}
	if summary.Total > 0 {
		avg := float64(sum) / float64(summary.Total)
		summary.Average = &avg
	}
	return summary
}

var averageThresholds = [...]struct {
	min   float64
	grade Grade
}{
	{4.5, GradeAPlus},
	{3.5, GradeA},
	{2.5, GradeB},
	{1.5, GradeC},
	{0.5, GradeD},
}

// GradeFromAverage rounds to the nearest value with ties going to the better
// grade. Each threshold is inclusive.
func GradeFromAverage(avg *float64) GradeInfo {
	if avg == nil {
		return GradeInfo{Letter: NoDataLetter}
	}
	grade := GradeF
	for _, t := range averageThresholds {
		if *avg >= t.min {
			grade = t.grade
			break
		}
	}
	return GradeInfo{Letter: grade.Letter(), Grade: &grade}
}

// FormatAverage renders the average with one decimal, or the no-data letter.
func FormatAverage(avg *float64) string {
	if avg == nil {
		return NoDataLetter
	}
	return strconv.FormatFloat(*avg, 'f', 1, 64)
}
