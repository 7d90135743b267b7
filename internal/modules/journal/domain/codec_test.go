package domain_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"moodlog/internal/modules/journal/domain"
	apperrors "moodlog/internal/platform/errors"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	t.Parallel()
	records := domain.Collection{
		"2024-01-02": {Grade: domain.GradeF},
		"2024-01-01": {Grade: domain.GradeB, Note: "quiet \"day\""},
	}
	text, err := domain.Serialize(records)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if strings.Index(text, "2024-01-01") > strings.Index(text, "2024-01-02") {
		t.Fatalf("expected keys in chronological order: %s", text)
	}
	if !strings.Contains(text, `"grade": 2`) || !strings.Contains(text, `"note": ""`) {
		t.Fatalf("unexpected snapshot layout: %s", text)
	}
	parsed, err := domain.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(parsed, records) {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}
}

func TestSerializeEmpty(t *testing.T) {
	t.Parallel()
	text, err := domain.Serialize(nil)
	if err != nil || text != "{}" {
		t.Fatalf("expected {}, got %q (%v)", text, err)
	}
}

func TestParseRejectsMalformedSnapshots(t *testing.T) {
	t.Parallel()
	inputs := []string{
		`"just a string"`,
		`[1, 2, 3]`,
		`{"2024-01-01": {"grade": 2, "note": "x"}`,
		`{"yesterday": {"grade": 2, "note": ""}}`,
		`{"2024-01-01": 3}`,
		`{"2024-01-01": {"grade": 6, "note": ""}}`,
		`{"2024-01-01": {"grade": 1.5, "note": ""}}`,
		`{"2024-01-01": {"grade": "A", "note": ""}}`,
		`{"2024-01-01": {"note": "missing grade"}}`,
		`{"2024-01-01": {"grade": 1, "note": 7}}`,
		`null`,
		``,
	}
	for _, input := range inputs {
		_, err := domain.Parse(input)
		if err == nil {
			t.Fatalf("expected parse error for %q", input)
		}
		if !errors.Is(err, apperrors.ErrParse) {
			t.Fatalf("expected ErrParse for %q, got %v", input, err)
		}
		var perr *domain.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *ParseError for %q, got %T", input, err)
		}
	}
}

func TestParseDefaultsMissingNote(t *testing.T) {
	t.Parallel()
	parsed, err := domain.Parse(`{"2024-03-03": {"grade": 0}, "2024-03-04": {"grade": 5, "note": null}}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed["2024-03-03"].Note != "" || parsed["2024-03-04"].Grade != domain.GradeF {
		t.Fatalf("unexpected records: %+v", parsed)
	}
}

func TestMergeIncomingWins(t *testing.T) {
	t.Parallel()
	current := domain.Collection{"2024-01-01": {Grade: 2, Note: "x"}}
	incoming := domain.Collection{
		"2024-01-01": {Grade: 0, Note: "y"},
		"2024-01-02": {Grade: 5, Note: ""},
	}
	merged := domain.Merge(current, incoming)
	want := domain.Collection{
		"2024-01-01": {Grade: 0, Note: "y"},
		"2024-01-02": {Grade: 5, Note: ""},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merge = %+v, want %+v", merged, want)
	}
	if current["2024-01-01"].Note != "x" || len(current) != 1 {
		t.Fatalf("merge must not mutate current: %+v", current)
	}
}

func TestMergeReplacesWholeRecord(t *testing.T) {
	t.Parallel()
	current := domain.Collection{"2024-01-01": {Grade: 2, Note: "keep me?"}}
	incoming := domain.Collection{"2024-01-01": {Grade: 1}}
	merged := domain.Merge(current, incoming)
	if merged["2024-01-01"].Note != "" {
		t.Fatalf("incoming record must replace the note too, got %q", merged["2024-01-01"].Note)
	}
}

func TestEncodeCSV(t *testing.T) {
	t.Parallel()
	text, err := domain.EncodeCSV(domain.Collection{
		"2024-01-02": {Grade: domain.GradeF, Note: "rain, cold"},
		"2024-01-01": {Grade: domain.GradeAPlus},
	})
	if err != nil {
		t.Fatalf("encode csv: %v", err)
	}
	want := "date,grade,letter,note\n2024-01-01,0,A+,\n2024-01-02,5,F,\"rain, cold\"\n"
	if text != want {
		t.Fatalf("csv = %q, want %q", text, want)
	}
}

func TestShareText(t *testing.T) {
	t.Parallel()
	records := domain.Collection{
		"2024-01-03": {Grade: 0},
		"2024-01-04": {Grade: 0},
		"2024-06-10": {Grade: 1},
		"2024-12-31": {Grade: 5},
	}
	report := domain.BuildYearReport(records, 2024)
	want := "My 2024 Mood Summary\n\nAverage: A (3.5)\nTotal entries: 4\n\nA+: 2 | A: 1 | B: 0\nC: 0 | D: 0 | F: 1"
	if report.Text != want {
		t.Fatalf("share text = %q", report.Text)
	}
	if report.Months[0].Total != 2 || report.Months[5].Total != 1 || report.Months[11].Total != 1 {
		t.Fatalf("unexpected monthly totals: %+v", report.Months)
	}

	empty := domain.ShareText(2030, domain.Summarize(nil))
	if !strings.Contains(empty, "Average: — (—)") || !strings.Contains(empty, "Total entries: 0") {
		t.Fatalf("unexpected empty share text: %q", empty)
	}
}

func TestJournalMarkdown(t *testing.T) {
	t.Parallel()
	text := domain.JournalMarkdown(domain.Collection{
		"2024-02-01": {Grade: domain.GradeB, Note: "a | b"},
		"2024-01-31": {Grade: domain.GradeA},
	})
	jan := strings.Index(text, "## January 2024")
	feb := strings.Index(text, "## February 2024")
	if jan < 0 || feb < jan {
		t.Fatalf("expected month headings in order: %s", text)
	}
	if !strings.Contains(text, `| 2024-02-01 | B | a \| b |`) {
		t.Fatalf("expected escaped note row: %s", text)
	}
	if !strings.Contains(domain.JournalMarkdown(nil), "No entries yet.") {
		t.Fatalf("expected empty marker")
	}
}
