package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidReminderMinutes = errors.New("reminder minutes must be between 1 and 120")
	ErrInvalidHolidayDate     = errors.New("invalid holiday date (must be YYYY-MM-DD)")
)

const (
	DefaultReminderMinutes = 5
	MaxReminderMinutes     = 120
)

type Settings struct {
	SwimmingEnabled bool    `json:"swimming_enabled" db:"swimming_enabled"`
	HolidayMode     bool    `json:"holiday_mode" db:"holiday_mode"`
	HolidayStart    *string `json:"holiday_start" db:"holiday_start"`
	HolidayEnd      *string `json:"holiday_end" db:"holiday_end"`
}

func DefaultSettings() Settings {
	return Settings{
		SwimmingEnabled: true,
	}
}

// SettingsPatch carries the fields to overwrite; nil fields are left untouched.
// An empty holiday date clears the stored value.
type SettingsPatch struct {
	SwimmingEnabled *bool   `json:"swimming_enabled"`
	HolidayMode     *bool   `json:"holiday_mode"`
	HolidayStart    *string `json:"holiday_start"`
	HolidayEnd      *string `json:"holiday_end"`
}

func (p SettingsPatch) Validate() error {
	for _, d := range []*string{p.HolidayStart, p.HolidayEnd} {
		if d == nil || *d == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, *d); err != nil {
			return ErrInvalidHolidayDate
		}
	}
	return nil
}

func (s Settings) Merge(p SettingsPatch) Settings {
	if p.SwimmingEnabled != nil {
		s.SwimmingEnabled = *p.SwimmingEnabled
	}
	if p.HolidayMode != nil {
		s.HolidayMode = *p.HolidayMode
	}
	if p.HolidayStart != nil {
		s.HolidayStart = optionalDate(*p.HolidayStart)
	}
	if p.HolidayEnd != nil {
		s.HolidayEnd = optionalDate(*p.HolidayEnd)
	}
	return s
}

func optionalDate(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

type NotificationSettings struct {
	Enabled bool `json:"enabled"`
	Minutes int  `json:"minutes"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{Minutes: DefaultReminderMinutes}
}

func ValidateReminderMinutes(minutes int) error {
	if minutes < 1 || minutes > MaxReminderMinutes {
		return ErrInvalidReminderMinutes
	}
	return nil
}
