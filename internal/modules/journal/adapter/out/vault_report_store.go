package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"moodlog/internal/modules/journal/domain"
	journalout "moodlog/internal/modules/journal/port/out"
	"moodlog/internal/platform/clock"
	"moodlog/internal/platform/id"
	"moodlog/internal/platform/markdown"
)

var summaryBlock = markdown.Block{
	Start: "<!-- moodlog:summary:start -->",
	End:   "<!-- moodlog:summary:end -->",
}

// VaultReportStore writes one markdown note per year under reports/. The
// summary block is regenerated on every save; anything the user wrote
// around it is kept.
type VaultReportStore struct {
	dir   string
	ids   id.Generator
	clock clock.Clock
}

func NewVaultReportStore(dir string, ids id.Generator, clk clock.Clock) journalout.ReportStore {
	return &VaultReportStore{dir: dir, ids: ids, clock: clk}
}

func (s *VaultReportStore) SaveYear(_ context.Context, report domain.YearReport) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%04d.md", report.Year))

	body := ""
	noteID := ""
	if existing, err := os.ReadFile(path); err == nil {
		if existingMeta, existingBody, splitErr := markdown.SplitFrontmatter(string(existing)); splitErr == nil {
			body = existingBody
			if value, ok := existingMeta["id"].(string); ok {
				noteID = value
			}
		}
	}
	if noteID == "" {
		noteID = s.ids.New()
	}
	if strings.TrimSpace(body) == "" {
		body = fmt.Sprintf("# %d in moods\n\n## Reflections\n\n", report.Year)
	}
	body = summaryBlock.Replace(body, renderSummary(report))

	info := domain.GradeFromAverage(report.Summary.Average)
	meta := map[string]any{
		"id":             noteID,
		"schema_version": domain.SchemaVersion,
		"year":           report.Year,
		"total":          report.Summary.Total,
		"average":        domain.FormatAverage(report.Summary.Average),
		"letter":         info.Letter,
		"updated_at":     s.clock.Now().Format(time.RFC3339),
	}
	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write report note: %w", err)
	}
	return path, nil
}

func renderSummary(report domain.YearReport) string {
	var sb strings.Builder
	sb.WriteString("```\n" + report.Text + "\n```\n\n")
	sb.WriteString("| Month | Entries | Average |\n|-------|---------|---------|\n")
	for i, month := range report.Months {
		info := domain.GradeFromAverage(month.Average)
		fmt.Fprintf(&sb, "| %s | %d | %s (%s) |\n", time.Month(i+1).String(), month.Total, info.Letter, domain.FormatAverage(month.Average))
	}
	return sb.String()
}
