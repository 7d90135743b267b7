package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"moodlog/internal/modules/journal/domain"
	journalout "moodlog/internal/modules/journal/port/out"
	"moodlog/internal/platform/clock"
	apperrors "moodlog/internal/platform/errors"
)

// JournalService owns the record collection. Every call reloads it from the
// snapshot store so nothing is cached across mutations.
type JournalService struct {
	clock     clock.Clock
	store     journalout.SnapshotStore
	projector journalout.RecordIndexProjector
	logger    *zap.Logger
}

func NewJournalService(clock clock.Clock, store journalout.SnapshotStore, projector journalout.RecordIndexProjector, logger *zap.Logger) *JournalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JournalService{clock: clock, store: store, projector: projector, logger: logger}
}

func (s *JournalService) Today() domain.DateKey {
	return domain.ToDateKey(s.clock.Now())
}

func (s *JournalService) Load(ctx context.Context) (domain.Collection, error) {
	text, found, err := s.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if !found {
		return domain.Collection{}, nil
	}
	records, err := domain.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return records, nil
}

func (s *JournalService) Get(ctx context.Context, key domain.DateKey) (domain.MoodRecord, bool, error) {
	if !key.Valid() {
		return domain.MoodRecord{}, false, fmt.Errorf("%w: date %q", apperrors.ErrInvalidInput, key)
	}
	records, err := s.Load(ctx)
	if err != nil {
		return domain.MoodRecord{}, false, err
	}
	record, ok := records[key]
	return record, ok, nil
}

// Set stores {grade, note}; a nil grade removes the day entirely.
func (s *JournalService) Set(ctx context.Context, key domain.DateKey, grade *domain.Grade, note *string) error {
	if !key.Valid() {
		return fmt.Errorf("%w: date %q", apperrors.ErrInvalidInput, key)
	}
	if grade != nil && !grade.Valid() {
		return fmt.Errorf("%w: grade %d out of range", apperrors.ErrInvalidInput, *grade)
	}
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if grade == nil {
		if _, ok := records[key]; !ok {
			return nil
		}
		delete(records, key)
	} else {
		record := domain.MoodRecord{Grade: *grade}
		if note != nil {
			record.Note = *note
		}
		records[key] = record
	}
	if err := s.persist(ctx, records); err != nil {
		return err
	}
	s.logger.Debug("journal entry written", zap.String("key", string(key)), zap.Bool("deleted", grade == nil))

	if s.projector == nil {
		return nil
	}
	if grade == nil {
		err = s.projector.Delete(ctx, key)
	} else {
		err = s.projector.Upsert(ctx, key, records[key])
	}
	if err != nil {
		s.logger.Warn("projection out of date, run reindex", zap.String("key", string(key)), zap.Error(err))
	}
	return nil
}

func (s *JournalService) Delete(ctx context.Context, key domain.DateKey) error {
	return s.Set(ctx, key, nil, nil)
}

// Merge applies an already-validated incoming collection with incoming-wins
// semantics and returns the merged result.
func (s *JournalService) Merge(ctx context.Context, incoming domain.Collection) (domain.Collection, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	merged := domain.Merge(current, incoming)
	if err := s.persist(ctx, merged); err != nil {
		return nil, err
	}
	s.logger.Info("journal import merged", zap.Int("incoming", len(incoming)), zap.Int("total", len(merged)))
	if s.projector != nil {
		for _, key := range incoming.Keys() {
			if err := s.projector.Upsert(ctx, key, merged[key]); err != nil {
				s.logger.Warn("projection out of date, run reindex", zap.String("key", string(key)), zap.Error(err))
				break
			}
		}
	}
	return merged, nil
}

// Reindex rebuilds the projection from the snapshot.
func (s *JournalService) Reindex(ctx context.Context) (int, error) {
	if s.projector == nil {
		return 0, fmt.Errorf("record index is not configured")
	}
	records, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return 0, err
	}
	for _, key := range records.Keys() {
		if err := s.projector.Upsert(ctx, key, records[key]); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

func (s *JournalService) MonthlyAverages(ctx context.Context, year int) (map[int]float64, error) {
	if s.projector == nil {
		return nil, fmt.Errorf("record index is not configured")
	}
	return s.projector.MonthlyAverages(ctx, year)
}

func (s *JournalService) persist(ctx context.Context, records domain.Collection) error {
	text, err := domain.Serialize(records)
	if err != nil {
		return err
	}
	if err := s.store.Write(ctx, text); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrStorageWrite, err)
	}
	return nil
}
