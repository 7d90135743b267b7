package usecase

import (
	"context"
	"fmt"
	"time"

	journalin "moodlog/internal/modules/journal/port/in"
	"moodlog/internal/modules/reminder/domain"
	"moodlog/internal/modules/reminder/dto"
	reminderin "moodlog/internal/modules/reminder/port/in"
	"moodlog/internal/modules/reminder/service"
)

type Interactor struct {
	svc     *service.ReminderService
	journal journalin.Usecase
}

func NewInteractor(svc *service.ReminderService, journal journalin.Usecase) reminderin.Usecase {
	return &Interactor{svc: svc, journal: journal}
}

func (i *Interactor) GetSettings(ctx context.Context) (dto.SettingsOutput, error) {
	settings, err := i.svc.Settings(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings, i.svc.Now()), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) (dto.SettingsOutput, error) {
	settings, err := i.svc.Update(ctx, input.Enabled, input.Time)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return toSettingsOutput(settings, i.svc.Now()), nil
}

func (i *Interactor) Check(ctx context.Context) (dto.CheckOutput, error) {
	if i.journal == nil {
		return dto.CheckOutput{}, fmt.Errorf("journal is not configured")
	}
	// One reading of the clock decides both the day looked up and the day
	// recorded as reminded, even when the check straddles midnight.
	now := i.svc.Now()
	record, err := i.journal.GetRecord(ctx, now.Format(time.DateOnly))
	if err != nil {
		return dto.CheckOutput{}, err
	}
	due, err := i.svc.Fire(ctx, now, record.Found)
	if err != nil {
		return dto.CheckOutput{}, err
	}
	if !due {
		return dto.CheckOutput{}, nil
	}
	return dto.CheckOutput{Due: true, Message: domain.Message}, nil
}

func toSettingsOutput(settings domain.Settings, now time.Time) dto.SettingsOutput {
	out := dto.SettingsOutput{Enabled: settings.Enabled, Time: settings.Time, LastReminded: settings.LastReminded}
	if next, ok := domain.NextAt(settings, now); ok {
		out.NextAt = next
	}
	return out
}
