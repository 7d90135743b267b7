package out

import (
	"context"

	"moodlog/internal/modules/journal/domain"
)

// SnapshotStore is the persistence boundary: one fixed name holding the
// serialized collection. Read reports found=false on first run.
type SnapshotStore interface {
	Read(ctx context.Context) (text string, found bool, err error)
	Write(ctx context.Context, text string) error
}

type RecordIndexProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, key domain.DateKey, record domain.MoodRecord) error
	Delete(ctx context.Context, key domain.DateKey) error
	MonthlyAverages(ctx context.Context, year int) (map[int]float64, error)
}

type ReportStore interface {
	SaveYear(ctx context.Context, report domain.YearReport) (string, error)
}
