package in

import (
	"context"

	"moodlog/internal/modules/journal/dto"
)

type Usecase interface {
	GetRecord(ctx context.Context, key string) (dto.RecordOutput, error)
	SetRecord(ctx context.Context, input dto.SetRecordInput) (dto.RecordOutput, error)
	DeleteRecord(ctx context.Context, key string) error
	SummarizeMonth(ctx context.Context, year, month int) (dto.SummaryOutput, error)
	SummarizeYear(ctx context.Context, year int) (dto.SummaryOutput, error)
	GradeFromAverage(avg *float64) dto.GradeOutput
	MonthGeometry(ctx context.Context, year, month int) (dto.MonthOutput, error)
	YearOverview(ctx context.Context, year int) (dto.YearOutput, error)
	HasRecordToday(ctx context.Context) (bool, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
	ShareYear(ctx context.Context, input dto.ShareInput) (dto.ShareOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
}
