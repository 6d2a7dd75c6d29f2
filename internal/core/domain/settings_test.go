package domain_test

import (
	"testing"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestSettings_Merge(t *testing.T) {
	t.Run("Success: Defaults", func(t *testing.T) {
		s := domain.DefaultSettings()
		assert.True(t, s.SwimmingEnabled)
		assert.False(t, s.HolidayMode)
		assert.Nil(t, s.HolidayStart)
	})

	t.Run("Success: Nil fields are untouched", func(t *testing.T) {
		s := domain.DefaultSettings().Merge(domain.SettingsPatch{HolidayMode: ptr(true)})
		assert.True(t, s.SwimmingEnabled)
		assert.True(t, s.HolidayMode)
	})

	t.Run("Success: Dates set and cleared", func(t *testing.T) {
		s := domain.DefaultSettings().Merge(domain.SettingsPatch{
			HolidayStart: ptr("2026-08-01"),
			HolidayEnd:   ptr("2026-08-15"),
		})
		require.NotNil(t, s.HolidayStart)
		assert.Equal(t, "2026-08-01", *s.HolidayStart)

		s = s.Merge(domain.SettingsPatch{HolidayStart: ptr("")})
		assert.Nil(t, s.HolidayStart)
		assert.NotNil(t, s.HolidayEnd)
	})
}

func TestSettingsPatch_Validate(t *testing.T) {
	assert.NoError(t, domain.SettingsPatch{}.Validate())
	assert.NoError(t, domain.SettingsPatch{HolidayEnd: ptr("")}.Validate())
	assert.NoError(t, domain.SettingsPatch{HolidayStart: ptr("2026-12-24")}.Validate())
	assert.Equal(t, domain.ErrInvalidHolidayDate, domain.SettingsPatch{HolidayStart: ptr("24/12/2026")}.Validate())
}

func TestValidateReminderMinutes(t *testing.T) {
	assert.Equal(t, domain.ErrInvalidReminderMinutes, domain.ValidateReminderMinutes(0))
	assert.NoError(t, domain.ValidateReminderMinutes(1))
	assert.NoError(t, domain.ValidateReminderMinutes(120))
	assert.Equal(t, domain.ErrInvalidReminderMinutes, domain.ValidateReminderMinutes(121))

	n := domain.DefaultNotificationSettings()
	assert.False(t, n.Enabled)
	assert.Equal(t, 5, n.Minutes)
}
