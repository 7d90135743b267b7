package in

import (
	"context"

	"moodlog/internal/modules/reminder/dto"
	reminderin "moodlog/internal/modules/reminder/port/in"
)

type CLIHandler struct {
	usecase reminderin.Usecase
}

func NewCLIHandler(usecase reminderin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (dto.SettingsOutput, error) {
	return h.usecase.GetSettings(ctx)
}

func (h CLIHandler) Set(ctx context.Context, enabled *bool, clockTime *string) (dto.SettingsOutput, error) {
	return h.usecase.UpdateSettings(ctx, dto.UpdateSettingsInput{Enabled: enabled, Time: clockTime})
}

func (h CLIHandler) Check(ctx context.Context) (dto.CheckOutput, error) {
	return h.usecase.Check(ctx)
}
