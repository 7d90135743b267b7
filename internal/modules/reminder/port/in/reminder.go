package in

import (
	"context"

	"moodlog/internal/modules/reminder/dto"
)

type Usecase interface {
	GetSettings(ctx context.Context) (dto.SettingsOutput, error)
	UpdateSettings(ctx context.Context, input dto.UpdateSettingsInput) (dto.SettingsOutput, error)
	Check(ctx context.Context) (dto.CheckOutput, error)
}
