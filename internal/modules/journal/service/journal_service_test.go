package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"moodlog/internal/modules/journal/domain"
	"moodlog/internal/modules/journal/service"
	"moodlog/internal/platform/clock"
	apperrors "moodlog/internal/platform/errors"
)

type memorySnapshot struct {
	text     string
	found    bool
	writes   int
	writeErr error
}

func (m *memorySnapshot) Read(context.Context) (string, bool, error) {
	return m.text, m.found, nil
}

func (m *memorySnapshot) Write(_ context.Context, text string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.text = text
	m.found = true
	return nil
}

type fakeProjector struct {
	upserts map[domain.DateKey]domain.MoodRecord
	deletes []domain.DateKey
	resets  int
	err     error
}

func newFakeProjector() *fakeProjector {
	return &fakeProjector{upserts: map[domain.DateKey]domain.MoodRecord{}}
}

func (f *fakeProjector) Reset(context.Context) error {
	f.resets++
	f.upserts = map[domain.DateKey]domain.MoodRecord{}
	return nil
}

func (f *fakeProjector) Upsert(_ context.Context, key domain.DateKey, record domain.MoodRecord) error {
	if f.err != nil {
		return f.err
	}
	f.upserts[key] = record
	return nil
}

func (f *fakeProjector) Delete(_ context.Context, key domain.DateKey) error {
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, key)
	delete(f.upserts, key)
	return nil
}

func (f *fakeProjector) MonthlyAverages(context.Context, int) (map[int]float64, error) {
	return map[int]float64{}, nil
}

func newService(store *memorySnapshot, projector *fakeProjector) *service.JournalService {
	clk := clock.Fixed{At: time.Date(2024, time.January, 15, 21, 0, 0, 0, time.Local)}
	if projector == nil {
		return service.NewJournalService(clk, store, nil, zap.NewNop())
	}
	return service.NewJournalService(clk, store, projector, zap.NewNop())
}

func gradePtr(g domain.Grade) *domain.Grade { return &g }
func strPtr(s string) *string               { return &s }

func TestSetThenGetReturnsExactRecord(t *testing.T) {
	t.Parallel()
	store := &memorySnapshot{}
	projector := newFakeProjector()
	svc := newService(store, projector)
	ctx := context.Background()

	if err := svc.Set(ctx, "2024-01-15", gradePtr(domain.GradeB), strPtr("lunch with Sam")); err != nil {
		t.Fatalf("set: %v", err)
	}
	record, found, err := svc.Get(ctx, "2024-01-15")
	if err != nil || !found {
		t.Fatalf("get: %t %v", found, err)
	}
	if record != (domain.MoodRecord{Grade: domain.GradeB, Note: "lunch with Sam"}) {
		t.Fatalf("unexpected record %+v", record)
	}
	if store.writes != 1 {
		t.Fatalf("expected one synchronous write, got %d", store.writes)
	}
	if projector.upserts["2024-01-15"].Grade != domain.GradeB {
		t.Fatalf("projection not updated: %+v", projector.upserts)
	}
}

func TestSetWithoutNoteStoresEmptyString(t *testing.T) {
	t.Parallel()
	store := &memorySnapshot{}
	svc := newService(store, nil)
	if err := svc.Set(context.Background(), "2024-01-01", gradePtr(domain.GradeF), nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	parsed, err := domain.Parse(store.text)
	if err != nil {
		t.Fatalf("parse stored snapshot: %v", err)
	}
	if parsed["2024-01-01"].Note != "" {
		t.Fatalf("expected empty note")
	}
}

func TestSetNilGradeRemovesKey(t *testing.T) {
	t.Parallel()
	store := &memorySnapshot{text: `{"2024-01-01": {"grade": 2, "note": "x"}, "2024-01-02": {"grade": 3, "note": ""}}`, found: true}
	projector := newFakeProjector()
	svc := newService(store, projector)
	ctx := context.Background()

	if err := svc.Set(ctx, "2024-01-01", nil, strPtr("ignored")); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := records["2024-01-01"]; ok {
		t.Fatalf("cleared key must be absent, got %+v", records)
	}
	if len(records) != 1 {
		t.Fatalf("other keys must survive: %+v", records)
	}
	if len(projector.deletes) != 1 || projector.deletes[0] != "2024-01-01" {
		t.Fatalf("expected projection delete, got %v", projector.deletes)
	}

	if err := svc.Delete(ctx, "2024-05-05"); err != nil {
		t.Fatalf("delete missing key: %v", err)
	}
	if store.writes != 1 {
		t.Fatalf("deleting an absent key must not rewrite the snapshot, writes=%d", store.writes)
	}
}

func TestSetRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	store := &memorySnapshot{}
	svc := newService(store, nil)
	ctx := context.Background()

	if err := svc.Set(ctx, "2024-01-01", gradePtr(domain.Grade(6)), nil); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid grade error, got %v", err)
	}
	if err := svc.Set(ctx, "2024-1-1", gradePtr(domain.GradeA), nil); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid key error, got %v", err)
	}
	if _, _, err := svc.Get(ctx, "tomorrow"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid key error on get, got %v", err)
	}
	if store.writes != 0 {
		t.Fatalf("rejected input must not write")
	}
}

func TestSetSurfacesStorageWriteFailure(t *testing.T) {
	t.Parallel()
	store := &memorySnapshot{writeErr: errors.New("quota exceeded")}
	projector := newFakeProjector()
	svc := newService(store, projector)

	err := svc.Set(context.Background(), "2024-01-01", gradePtr(domain.GradeA), nil)
	if !errors.Is(err, apperrors.ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite, got %v", err)
	}
	if len(projector.upserts) != 0 {
		t.Fatalf("projection must not run after a failed write")
	}
	if _, found, _ := svc.Get(context.Background(), "2024-01-01"); found {
		t.Fatalf("failed write must not be visible")
	}
}

func TestMergeAndDeleteSurfaceStorageWriteFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	existing, err := domain.Serialize(domain.Collection{"2024-01-01": {Grade: domain.GradeB, Note: "kept"}})
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	store := &memorySnapshot{text: existing, found: true, writeErr: errors.New("disk full")}
	projector := newFakeProjector()
	svc := newService(store, projector)

	incoming := domain.Collection{
		"2024-01-01": {Grade: domain.GradeF},
		"2024-01-02": {Grade: domain.GradeA},
	}
	if _, err := svc.Merge(ctx, incoming); !errors.Is(err, apperrors.ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite from merge, got %v", err)
	}
	if err := svc.Delete(ctx, "2024-01-01"); !errors.Is(err, apperrors.ErrStorageWrite) {
		t.Fatalf("expected ErrStorageWrite from delete, got %v", err)
	}
	if store.text != existing {
		t.Fatalf("stored snapshot changed after failed writes:\n%s", store.text)
	}
	if len(projector.upserts) != 0 || len(projector.deletes) != 0 {
		t.Fatalf("projection must not run after a failed write: %+v %v", projector.upserts, projector.deletes)
	}
	record, found, err := svc.Get(ctx, "2024-01-01")
	if err != nil || !found || record.Grade != domain.GradeB || record.Note != "kept" {
		t.Fatalf("existing record must survive, got %+v %t %v", record, found, err)
	}
}

func TestProjectionFailureDoesNotFailWrite(t *testing.T) {
	t.Parallel()
	store := &memorySnapshot{}
	projector := newFakeProjector()
	projector.err = errors.New("database is locked")
	svc := newService(store, projector)
	if err := svc.Set(context.Background(), "2024-01-01", gradePtr(domain.GradeA), nil); err != nil {
		t.Fatalf("projection errors must only be logged: %v", err)
	}
	if store.writes != 1 {
		t.Fatalf("snapshot must still be written")
	}
}

func TestLoadCorruptSnapshot(t *testing.T) {
	t.Parallel()
	svc := newService(&memorySnapshot{text: "not json", found: true}, nil)
	if _, err := svc.Load(context.Background()); !errors.Is(err, apperrors.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestMergeAndReindex(t *testing.T) {
	t.Parallel()
	store := &memorySnapshot{text: `{"2024-01-01": {"grade": 2, "note": "x"}}`, found: true}
	projector := newFakeProjector()
	svc := newService(store, projector)
	ctx := context.Background()

	merged, err := svc.Merge(ctx, domain.Collection{
		"2024-01-01": {Grade: 0, Note: "y"},
		"2024-01-02": {Grade: 5},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(merged) != 2 || merged["2024-01-01"].Note != "y" {
		t.Fatalf("unexpected merge result %+v", merged)
	}

	total, err := svc.Reindex(ctx)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if total != 2 || projector.resets != 1 || len(projector.upserts) != 2 {
		t.Fatalf("unexpected reindex state total=%d resets=%d rows=%d", total, projector.resets, len(projector.upserts))
	}
}

func TestTodayUsesClock(t *testing.T) {
	t.Parallel()
	svc := newService(&memorySnapshot{}, nil)
	if got := svc.Today(); got != "2024-01-15" {
		t.Fatalf("today = %s", got)
	}
}
