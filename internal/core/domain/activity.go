package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrActivityNotFound      = errors.New("activity not found")
	ErrActivityTaskEmpty     = errors.New("activity task cannot be empty")
	ErrActivityTaskTooLong   = errors.New("activity task is too long (max 100 chars)")
	ErrActivityDetailTooLong = errors.New("activity detail is too long (max 500 chars)")
	ErrInvalidActivityTime   = errors.New("invalid activity time (must be HH:MM 24h)")
	ErrInvalidPhase          = errors.New("invalid phase (must be morning, day, work, evening or night)")
	ErrInvalidDayRule        = errors.New("invalid days rule (must be all, weekday or workout)")
)

var clockRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

type Phase string

const (
	PhaseMorning Phase = "morning"
	PhaseDay     Phase = "day"
	PhaseWork    Phase = "work"
	PhaseEvening Phase = "evening"
	PhaseNight   Phase = "night"
)

// DayRule restricts on which weekdays a base-template activity applies.
type DayRule string

const (
	DaysAll     DayRule = "all"
	DaysWeekday DayRule = "weekday"
	DaysWorkout DayRule = "workout"
)

const (
	CustomActivityPrefix = "custom_"
	DefaultActivityIcon  = "Zap"
	MaxTaskLen           = 100
	MaxDetailLen         = 500
)

type Activity struct {
	ID         string  `json:"id" db:"id"`
	Time       string  `json:"time" db:"start_time"`
	Task       string  `json:"task" db:"task"`
	Phase      Phase   `json:"phase" db:"phase"`
	Detail     string  `json:"detail" db:"detail"`
	Type       string  `json:"type" db:"type"`
	Enabled    bool    `json:"enabled" db:"enabled"`
	IsSwimming bool    `json:"is_swimming,omitempty" db:"is_swimming"`
	Days       DayRule `json:"days,omitempty" db:"days"`
}

// NewCustomActivityID returns an id marking the activity as user-created.
func NewCustomActivityID() string {
	return CustomActivityPrefix + uuid.NewString()
}

func (a Activity) IsCustom() bool {
	return strings.HasPrefix(a.ID, CustomActivityPrefix)
}

// Validate checks the fields a user supplies for a custom activity.
func (a Activity) Validate() error {
	task := strings.TrimSpace(a.Task)
	if task == "" {
		return ErrActivityTaskEmpty
	}
	if len(task) > MaxTaskLen {
		return ErrActivityTaskTooLong
	}
	if len(strings.TrimSpace(a.Detail)) > MaxDetailLen {
		return ErrActivityDetailTooLong
	}
	if !clockRegex.MatchString(a.Time) {
		return ErrInvalidActivityTime
	}

	switch a.Phase {
	case "", PhaseMorning, PhaseDay, PhaseWork, PhaseEvening, PhaseNight:
	default:
		return ErrInvalidPhase
	}

	switch a.Days {
	case "", DaysAll, DaysWeekday, DaysWorkout:
	default:
		return ErrInvalidDayRule
	}

	return nil
}

// Normalize trims user input and fills the defaults a custom activity needs.
func (a Activity) Normalize() Activity {
	a.Task = strings.TrimSpace(a.Task)
	a.Detail = strings.TrimSpace(a.Detail)
	if a.Type == "" {
		a.Type = DefaultActivityIcon
	}
	if a.Phase == "" {
		a.Phase = PhaseDay
	}
	return a
}

// ParseClock splits the HH:MM time of the activity.
func (a Activity) ParseClock() (int, int, error) {
	if !clockRegex.MatchString(a.Time) {
		return 0, 0, ErrInvalidActivityTime
	}
	hour, _ := strconv.Atoi(a.Time[:2])
	minute, _ := strconv.Atoi(a.Time[3:])
	return hour, minute, nil
}
