package domain

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "moodlog/internal/platform/errors"
)

// ParseError reports a snapshot that does not have the expected shape.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse snapshot: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return apperrors.ErrParse
}

func parseErrorf(format string, args ...any) error {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// Serialize encodes the collection as an indented JSON object. encoding/json
// sorts map keys, so the output is stable and diffable.
func Serialize(records Collection) (string, error) {
	if records == nil {
		records = Collection{}
	}
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return string(raw), nil
}

// Parse validates the whole snapshot before returning any of it.
func Parse(text string) (Collection, error) {
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, parseErrorf("invalid json: %v", err)
	}
	entries, ok := decoded.(map[string]any)
	if !ok {
		return nil, parseErrorf("top level must be an object keyed by date")
	}
	out := make(Collection, len(entries))
	for key, value := range entries {
		if !DateKey(key).Valid() {
			return nil, parseErrorf("key %q is not a YYYY-MM-DD date", key)
		}
		record, err := decodeRecord(key, value)
		if err != nil {
			return nil, err
		}
		out[DateKey(key)] = record
	}
	return out, nil
}

func decodeRecord(key string, value any) (MoodRecord, error) {
	fields, ok := value.(map[string]any)
	if !ok {
		return MoodRecord{}, parseErrorf("entry %s must be an object", key)
	}
	rawGrade, ok := fields["grade"].(float64)
	if !ok || rawGrade < 0 || rawGrade > float64(GradeF) || rawGrade != math.Trunc(rawGrade) {
		return MoodRecord{}, parseErrorf("entry %s has grade %v, want integer 0-5", key, fields["grade"])
	}
	record := MoodRecord{Grade: Grade(int(rawGrade))}
	switch note := fields["note"].(type) {
	case nil:
	case string:
		record.Note = note
	default:
		return MoodRecord{}, parseErrorf("entry %s has non-string note", key)
	}
	return record, nil
}

// Merge returns a new collection where incoming records replace current ones
// key by key. Neither input is modified.
func Merge(current, incoming Collection) Collection {
	out := current.Clone()
	for key, record := range incoming {
		out[key] = record
	}
	return out
}

func EncodeCSV(records Collection) (string, error) {
	buf := bytes.Buffer{}
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "grade", "letter", "note"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, key := range records.Keys() {
		record := records[key]
		row := []string{string(key), strconv.Itoa(int(record.Grade)), record.Grade.Letter(), record.Note}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row %s: %w", key, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

// ShareText is the plain-text year summary meant for pasting elsewhere.
func ShareText(year int, summary StatSummary) string {
	info := GradeFromAverage(summary.Average)
	c := summary.Counts
	var sb strings.Builder
	fmt.Fprintf(&sb, "My %d Mood Summary\n\n", year)
	fmt.Fprintf(&sb, "Average: %s (%s)\n", info.Letter, FormatAverage(summary.Average))
	fmt.Fprintf(&sb, "Total entries: %d\n\n", summary.Total)
	fmt.Fprintf(&sb, "A+: %d | A: %d | B: %d\n", c[GradeAPlus], c[GradeA], c[GradeB])
	fmt.Fprintf(&sb, "C: %d | D: %d | F: %d", c[GradeC], c[GradeD], c[GradeF])
	return sb.String()
}

// JournalMarkdown lists every record grouped under a heading per month.
func JournalMarkdown(records Collection) string {
	var sb strings.Builder
	sb.WriteString("# Mood Journal\n")
	currentMonth := ""
	for _, key := range records.Keys() {
		record := records[key]
		month := string(key)[:7]
		if month != currentMonth {
			currentMonth = month
			year, _ := strconv.Atoi(month[:4])
			m, _ := strconv.Atoi(month[5:7])
			monthly := Summarize(MonthScope(records, year, m))
			fmt.Fprintf(&sb, "\n## %s\n\n", MonthLabel(year, m))
			fmt.Fprintf(&sb, "Average: %s (%s), %d entries\n\n", GradeFromAverage(monthly.Average).Letter, FormatAverage(monthly.Average), monthly.Total)
			sb.WriteString("| Date | Grade | Note |\n|------|-------|------|\n")
		}
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", key, record.Grade.Letter(), escapeCell(record.Note))
	}
	if len(records) == 0 {
		sb.WriteString("\nNo entries yet.\n")
	}
	return sb.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// YearReport is the persisted share note for one year.
type YearReport struct {
	Year    int
	Summary StatSummary
	Months  [12]StatSummary
	Text    string
}

func BuildYearReport(records Collection, year int) YearReport {
	scoped := YearScope(records, year)
	report := YearReport{Year: year, Summary: Summarize(scoped)}
	for m := 1; m <= 12; m++ {
		report.Months[m-1] = Summarize(MonthScope(scoped, year, m))
	}
	report.Text = ShareText(year, report.Summary)
	return report
}
