package domain_test

import (
	"strings"
	"testing"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestActivity_Validate(t *testing.T) {
	tests := []struct {
		name    string
		act     domain.Activity
		wantErr error
	}{
		{
			name:    "Success: Minimal custom activity",
			act:     domain.Activity{Task: "Read", Time: "19:45"},
			wantErr: nil,
		},
		{
			name:    "Success: Full activity",
			act:     domain.Activity{Task: "Stretch", Time: "07:00", Phase: domain.PhaseMorning, Days: domain.DaysWeekday},
			wantErr: nil,
		},
		{
			name:    "Error: Blank task",
			act:     domain.Activity{Task: "   ", Time: "07:00"},
			wantErr: domain.ErrActivityTaskEmpty,
		},
		{
			name:    "Error: Task too long",
			act:     domain.Activity{Task: strings.Repeat("a", 101), Time: "07:00"},
			wantErr: domain.ErrActivityTaskTooLong,
		},
		{
			name:    "Error: Detail too long",
			act:     domain.Activity{Task: "x", Detail: strings.Repeat("d", 501), Time: "07:00"},
			wantErr: domain.ErrActivityDetailTooLong,
		},
		{
			name:    "Error: Hour out of range",
			act:     domain.Activity{Task: "x", Time: "24:00"},
			wantErr: domain.ErrInvalidActivityTime,
		},
		{
			name:    "Error: Missing leading zero",
			act:     domain.Activity{Task: "x", Time: "7:00"},
			wantErr: domain.ErrInvalidActivityTime,
		},
		{
			name:    "Error: Unknown phase",
			act:     domain.Activity{Task: "x", Time: "07:00", Phase: "afternoon"},
			wantErr: domain.ErrInvalidPhase,
		},
		{
			name:    "Error: Unknown days rule",
			act:     domain.Activity{Task: "x", Time: "07:00", Days: "weekend"},
			wantErr: domain.ErrInvalidDayRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.act.Validate())
		})
	}
}

func TestActivity_Normalize(t *testing.T) {
	a := domain.Activity{Task: "  Read  ", Detail: " ch. 3 ", Time: "21:00"}.Normalize()

	assert.Equal(t, "Read", a.Task)
	assert.Equal(t, "ch. 3", a.Detail)
	assert.Equal(t, domain.DefaultActivityIcon, a.Type)
	assert.Equal(t, domain.PhaseDay, a.Phase)
}

func TestActivity_ParseClock(t *testing.T) {
	h, m, err := domain.Activity{Time: "08:05"}.ParseClock()
	assert.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 5, m)

	_, _, err = domain.Activity{Time: "8am"}.ParseClock()
	assert.ErrorIs(t, err, domain.ErrInvalidActivityTime)
}

func TestNewCustomActivityID(t *testing.T) {
	id := domain.NewCustomActivityID()

	assert.True(t, strings.HasPrefix(id, domain.CustomActivityPrefix))
	assert.True(t, domain.Activity{ID: id}.IsCustom())
	assert.False(t, domain.Activity{ID: "m1"}.IsCustom())
	assert.NotEqual(t, id, domain.NewCustomActivityID())
}
