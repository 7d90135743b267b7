package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moodlog/internal/modules/journal/domain"
	"moodlog/internal/modules/journal/dto"
	journalin "moodlog/internal/modules/journal/port/in"
	journalout "moodlog/internal/modules/journal/port/out"
	"moodlog/internal/modules/journal/service"
	"moodlog/internal/platform/clock"
	apperrors "moodlog/internal/platform/errors"
	"moodlog/internal/platform/markdown"
	"moodlog/internal/platform/tx"
)

const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

const htmlPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"/><title>Mood Journal</title></head>
<body>
%s</body>
</html>
`

type Interactor struct {
	svc     *service.JournalService
	reports journalout.ReportStore
	tx      tx.Manager
	clock   clock.Clock
}

func NewInteractor(svc *service.JournalService, reports journalout.ReportStore, txm tx.Manager, clk clock.Clock) journalin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, reports: reports, tx: txm, clock: clk}
}

func (i *Interactor) GetRecord(ctx context.Context, key string) (dto.RecordOutput, error) {
	record, found, err := i.svc.Get(ctx, domain.DateKey(key))
	if err != nil {
		return dto.RecordOutput{}, err
	}
	if !found {
		return dto.RecordOutput{Key: key}, nil
	}
	return toRecordOutput(key, record), nil
}

func (i *Interactor) SetRecord(ctx context.Context, input dto.SetRecordInput) (dto.RecordOutput, error) {
	key := domain.DateKey(input.Key)
	var grade *domain.Grade
	if input.Grade != nil {
		g := domain.Grade(*input.Grade)
		grade = &g
	}
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		return i.svc.Set(ctx, key, grade, input.Note)
	})
	if err != nil {
		return dto.RecordOutput{}, err
	}
	if grade == nil {
		return dto.RecordOutput{Key: input.Key}, nil
	}
	record := domain.MoodRecord{Grade: *grade}
	if input.Note != nil {
		record.Note = *input.Note
	}
	return toRecordOutput(input.Key, record), nil
}

func (i *Interactor) DeleteRecord(ctx context.Context, key string) error {
	return i.tx.Within(ctx, func(ctx context.Context) error {
		return i.svc.Delete(ctx, domain.DateKey(key))
	})
}

func (i *Interactor) SummarizeMonth(ctx context.Context, year, month int) (dto.SummaryOutput, error) {
	if err := validateMonth(month); err != nil {
		return dto.SummaryOutput{}, err
	}
	records, err := i.svc.Load(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return toSummaryOutput(domain.MonthPrefix(year, month), domain.Summarize(domain.MonthScope(records, year, month))), nil
}

func (i *Interactor) SummarizeYear(ctx context.Context, year int) (dto.SummaryOutput, error) {
	records, err := i.svc.Load(ctx)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	return toSummaryOutput(fmt.Sprintf("%04d", year), domain.Summarize(domain.YearScope(records, year))), nil
}

func (i *Interactor) GradeFromAverage(avg *float64) dto.GradeOutput {
	return toGradeOutput(domain.GradeFromAverage(avg))
}

func (i *Interactor) MonthGeometry(ctx context.Context, year, month int) (dto.MonthOutput, error) {
	if err := validateMonth(month); err != nil {
		return dto.MonthOutput{}, err
	}
	records, err := i.svc.Load(ctx)
	if err != nil {
		return dto.MonthOutput{}, err
	}
	return i.monthOutput(records, year, month, i.svc.Today()), nil
}

func (i *Interactor) YearOverview(ctx context.Context, year int) (dto.YearOutput, error) {
	records, err := i.svc.Load(ctx)
	if err != nil {
		return dto.YearOutput{}, err
	}
	scoped := domain.YearScope(records, year)
	today := i.svc.Today()
	out := dto.YearOutput{
		Year:    year,
		Months:  make([]dto.MonthOutput, 0, 12),
		Summary: toSummaryOutput(fmt.Sprintf("%04d", year), domain.Summarize(scoped)),
	}
	for month := 1; month <= 12; month++ {
		out.Months = append(out.Months, i.monthOutput(scoped, year, month, today))
	}
	return out, nil
}

func (i *Interactor) HasRecordToday(ctx context.Context) (bool, error) {
	_, found, err := i.svc.Get(ctx, i.svc.Today())
	return found, err
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = FormatJSON
	}
	records, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	base := "mood-tracker-" + string(domain.ToDateKey(i.clock.Now()))
	out := dto.ExportOutput{Format: format, Total: len(records)}
	switch format {
	case FormatJSON:
		out.FileName = base + ".json"
		out.Content, err = domain.Serialize(records)
	case FormatCSV:
		out.FileName = base + ".csv"
		out.Content, err = domain.EncodeCSV(records)
	case FormatMarkdown:
		out.FileName = base + ".md"
		out.Content, err = markdown.RenderFrontmatter(map[string]any{
			"schema_version": domain.SchemaVersion,
			"exported_at":    i.clock.Now().Format(time.RFC3339),
			"total":          len(records),
		}, domain.JournalMarkdown(records))
	case FormatHTML:
		out.FileName = base + ".html"
		var fragment string
		fragment, err = markdown.ToHTML(domain.JournalMarkdown(records))
		out.Content = fmt.Sprintf(htmlPage, fragment)
	default:
		return dto.ExportOutput{}, fmt.Errorf("%w: unsupported export format %q", apperrors.ErrInvalidInput, input.Format)
	}
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return out, nil
}

// Import validates the whole snapshot before anything is merged.
func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error) {
	incoming, err := domain.Parse(input.Content)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	out := dto.ImportOutput{Incoming: len(incoming)}
	err = i.tx.Within(ctx, func(ctx context.Context) error {
		merged, mergeErr := i.svc.Merge(ctx, incoming)
		if mergeErr != nil {
			return mergeErr
		}
		out.Total = len(merged)
		return nil
	})
	if err != nil {
		return dto.ImportOutput{}, err
	}
	return out, nil
}

func (i *Interactor) ShareYear(ctx context.Context, input dto.ShareInput) (dto.ShareOutput, error) {
	records, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ShareOutput{}, err
	}
	report := domain.BuildYearReport(records, input.Year)
	out := dto.ShareOutput{Year: input.Year, Text: report.Text}
	if input.Save {
		if i.reports == nil {
			return dto.ShareOutput{}, fmt.Errorf("report store is not configured")
		}
		path, err := i.reports.SaveYear(ctx, report)
		if err != nil {
			return dto.ShareOutput{}, err
		}
		out.Path = path
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	total, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	year := i.clock.Now().Year()
	averages, err := i.svc.MonthlyAverages(ctx, year)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Total: total, Year: year, MonthlyAverages: averages}, nil
}

func (i *Interactor) monthOutput(records domain.Collection, year, month int, today domain.DateKey) dto.MonthOutput {
	geometry := domain.BuildMonthGeometry(year, month, records, today)
	out := dto.MonthOutput{
		Year:    geometry.Year,
		Month:   geometry.Month,
		Days:    geometry.Days,
		Offset:  geometry.Offset,
		Label:   geometry.Label,
		Cells:   make([]dto.DayCellOutput, 0, len(geometry.Cells)),
		Summary: toSummaryOutput(domain.MonthPrefix(year, month), domain.Summarize(domain.MonthScope(records, year, month))),
	}
	for _, cell := range geometry.Cells {
		item := dto.DayCellOutput{Day: cell.Day, Key: string(cell.Key), Today: cell.Today}
		if cell.Record != nil {
			item.HasRecord = true
			item.Grade = int(cell.Record.Grade)
			item.Letter = cell.Record.Grade.Letter()
			item.Note = cell.Record.Note
		}
		out.Cells = append(out.Cells, item)
	}
	return out
}

func validateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range", apperrors.ErrInvalidInput, month)
	}
	return nil
}

func toRecordOutput(key string, record domain.MoodRecord) dto.RecordOutput {
	return dto.RecordOutput{
		Key:    key,
		Found:  true,
		Grade:  int(record.Grade),
		Letter: record.Grade.Letter(),
		Note:   record.Note,
	}
}

func toGradeOutput(info domain.GradeInfo) dto.GradeOutput {
	out := dto.GradeOutput{Letter: info.Letter}
	if info.Grade != nil {
		g := int(*info.Grade)
		out.Grade = &g
	}
	return out
}

func toSummaryOutput(scope string, summary domain.StatSummary) dto.SummaryOutput {
	info := toGradeOutput(domain.GradeFromAverage(summary.Average))
	return dto.SummaryOutput{
		Scope:       scope,
		Counts:      summary.Counts,
		Percentages: summary.Percentages,
		Total:       summary.Total,
		Average:     summary.Average,
		Letter:      info.Letter,
		Grade:       info.Grade,
	}
}
