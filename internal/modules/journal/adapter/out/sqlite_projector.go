package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"moodlog/internal/modules/journal/domain"
	journalout "moodlog/internal/modules/journal/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteRecordProjector mirrors the snapshot into a queryable table. It is
// derived data; the snapshot file stays the source of truth.
type SQLiteRecordProjector struct {
	db *sql.DB
}

func NewSQLiteRecordProjector(dbPath string) (*SQLiteRecordProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteRecordProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ journalout.RecordIndexProjector = (*SQLiteRecordProjector)(nil)

func (s *SQLiteRecordProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS moods (
  date_key TEXT PRIMARY KEY,
  year INTEGER NOT NULL,
  month INTEGER NOT NULL,
  grade INTEGER NOT NULL CHECK (grade BETWEEN 0 AND 5),
  value INTEGER NOT NULL,
  note TEXT NOT NULL DEFAULT ''
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create moods table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_moods_year_month ON moods (year, month)`); err != nil {
		return fmt.Errorf("create moods index: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Close() error {
	return s.db.Close()
}

func (s *SQLiteRecordProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM moods`); err != nil {
		return fmt.Errorf("reset moods: %w", err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Upsert(ctx context.Context, key domain.DateKey, record domain.MoodRecord) error {
	const stmt = `
INSERT INTO moods (date_key, year, month, grade, value, note)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(date_key) DO UPDATE SET
  grade=excluded.grade,
  value=excluded.value,
  note=excluded.note;
`
	year, month, _, err := domain.ParseDateKey(string(key))
	if err != nil {
		return fmt.Errorf("upsert mood: %w", err)
	}
	_, err = s.db.ExecContext(ctx, stmt,
		string(key),
		year,
		month,
		int(record.Grade),
		record.Grade.Value(),
		record.Note,
	)
	if err != nil {
		return fmt.Errorf("upsert mood %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteRecordProjector) Delete(ctx context.Context, key domain.DateKey) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM moods WHERE date_key = ?`, string(key)); err != nil {
		return fmt.Errorf("delete mood %s: %w", key, err)
	}
	return nil
}

// MonthlyAverages returns the mean value per month of year, only for months
// that have records.
func (s *SQLiteRecordProjector) MonthlyAverages(ctx context.Context, year int) (map[int]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT month, AVG(value) FROM moods WHERE year = ? GROUP BY month ORDER BY month`, year)
	if err != nil {
		return nil, fmt.Errorf("query monthly averages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := map[int]float64{}
	for rows.Next() {
		var month int
		var avg sql.NullFloat64
		if err := rows.Scan(&month, &avg); err != nil {
			return nil, fmt.Errorf("scan monthly average: %w", err)
		}
		if avg.Valid {
			out[month] = avg.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly averages: %w", err)
	}
	return out, nil
}
