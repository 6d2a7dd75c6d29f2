package domain

type Stats struct {
	Streak          int            `json:"streak"`
	TodayProgress   int            `json:"today_progress"`
	TodayCompleted  int            `json:"today_completed"`
	TodayTotal      int            `json:"today_total"`
	WeeklyCompleted int            `json:"weekly_completed"`
	TotalCompleted  int            `json:"total_completed"`
	ActivityCounts  map[string]int `json:"activity_counts"`
	IsHolidayMode   bool           `json:"is_holiday_mode"`
}

type DayProgress struct {
	Date       string `json:"date"`
	Weekday    string `json:"weekday"`
	Completed  int    `json:"completed"`
	Percentage int    `json:"percentage"`
	IsToday    bool   `json:"is_today"`
}

type ActivityCount struct {
	Activity Activity `json:"activity"`
	Count    int      `json:"count"`
}

type MonthlyStats struct {
	ThisMonth int `json:"this_month"`
	LastMonth int `json:"last_month"`
	Change    int `json:"change"`
}

// HeatLevel buckets a day's completion percentage for the calendar.
type HeatLevel string

const (
	HeatNone   HeatLevel = "none"
	HeatLow    HeatLevel = "low"
	HeatMedium HeatLevel = "medium"
	HeatHigh   HeatLevel = "high"
	HeatFull   HeatLevel = "full"
)

type CalendarDay struct {
	Date       string    `json:"date"`
	Day        int       `json:"day"`
	Completed  int       `json:"completed"`
	Percentage int       `json:"percentage"`
	Level      HeatLevel `json:"level"`
	IsToday    bool      `json:"is_today"`
}

type CalendarMonth struct {
	Month         string        `json:"month"`
	LeadingBlanks int           `json:"leading_blanks"`
	Days          []CalendarDay `json:"days"`
}

type ActivityStatus struct {
	Activity
	WasCompleted bool `json:"was_completed"`
}

type DayDetail struct {
	Date       string           `json:"date"`
	Completed  []string         `json:"completed"`
	Activities []ActivityStatus `json:"activities"`
}
