package dto

import "time"

type SettingsOutput struct {
	Enabled      bool
	Time         string
	LastReminded string
	// NextAt is zero when the reminder is disabled.
	NextAt time.Time
}

type UpdateSettingsInput struct {
	Enabled *bool
	Time    *string
}

type CheckOutput struct {
	Due     bool
	Message string
}
