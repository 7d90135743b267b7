package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"moodlog/internal/modules/reminder/domain"
	reminderout "moodlog/internal/modules/reminder/port/out"
	"moodlog/internal/platform/clock"
	apperrors "moodlog/internal/platform/errors"
)

type ReminderService struct {
	clock  clock.Clock
	store  reminderout.SettingsStore
	logger *zap.Logger
}

func NewReminderService(clock clock.Clock, store reminderout.SettingsStore, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{clock: clock, store: store, logger: logger}
}

func (s *ReminderService) Now() time.Time {
	return s.clock.Now()
}

func (s *ReminderService) Settings(ctx context.Context) (domain.Settings, error) {
	return s.store.Load(ctx)
}

func (s *ReminderService) Update(ctx context.Context, enabled *bool, clockTime *string) (domain.Settings, error) {
	settings, err := s.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if clockTime != nil {
		if _, _, err := domain.ParseClock(*clockTime); err != nil {
			return domain.Settings{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		settings.Time = *clockTime
	}
	if enabled != nil {
		settings.Enabled = *enabled
	}
	if err := s.store.Save(ctx, settings); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Fire evaluates the reminder at now and, when due, records that it fired so
// the same day never fires twice.
func (s *ReminderService) Fire(ctx context.Context, now time.Time, loggedToday bool) (bool, error) {
	settings, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	today := now.Format(time.DateOnly)
	if !domain.Due(settings, now, today, loggedToday) {
		return false, nil
	}
	settings.LastReminded = today
	if err := s.store.Save(ctx, settings); err != nil {
		return false, err
	}
	s.logger.Info("reminder emitted", zap.String("day", today), zap.String("time", settings.Time))
	return true, nil
}
