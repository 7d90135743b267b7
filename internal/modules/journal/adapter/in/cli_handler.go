package in

import (
	"context"

	"moodlog/internal/modules/journal/dto"
	journalin "moodlog/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) GetRecord(ctx context.Context, key string) (dto.RecordOutput, error) {
	return h.usecase.GetRecord(ctx, key)
}

func (h CLIHandler) SetRecord(ctx context.Context, key string, grade int, note string) (dto.RecordOutput, error) {
	return h.usecase.SetRecord(ctx, dto.SetRecordInput{Key: key, Grade: &grade, Note: &note})
}

func (h CLIHandler) DeleteRecord(ctx context.Context, key string) error {
	return h.usecase.DeleteRecord(ctx, key)
}

func (h CLIHandler) SummarizeMonth(ctx context.Context, year, month int) (dto.SummaryOutput, error) {
	return h.usecase.SummarizeMonth(ctx, year, month)
}

func (h CLIHandler) SummarizeYear(ctx context.Context, year int) (dto.SummaryOutput, error) {
	return h.usecase.SummarizeYear(ctx, year)
}

func (h CLIHandler) GradeFromAverage(avg *float64) dto.GradeOutput {
	return h.usecase.GradeFromAverage(avg)
}

func (h CLIHandler) MonthGeometry(ctx context.Context, year, month int) (dto.MonthOutput, error) {
	return h.usecase.MonthGeometry(ctx, year, month)
}

func (h CLIHandler) YearOverview(ctx context.Context, year int) (dto.YearOutput, error) {
	return h.usecase.YearOverview(ctx, year)
}

func (h CLIHandler) HasRecordToday(ctx context.Context) (bool, error) {
	return h.usecase.HasRecordToday(ctx)
}

func (h CLIHandler) Export(ctx context.Context, format string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Format: format})
}

func (h CLIHandler) Import(ctx context.Context, content string) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{Content: content})
}

func (h CLIHandler) ShareYear(ctx context.Context, year int, save bool) (dto.ShareOutput, error) {
	return h.usecase.ShareYear(ctx, dto.ShareInput{Year: year, Save: save})
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}
