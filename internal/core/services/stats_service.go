package services

import (
	"math"
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

const TopActivitiesLimit = 5

// StatsInput is the planner state the calculators read. All functions in
// this file are pure and recompute on every call.
type StatsInput struct {
	Today     time.Time
	History   []domain.HistoryEntry
	Completed domain.CompletionMap
	Visible   []domain.Activity
	All       []domain.Activity
	Settings  domain.Settings
}

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func percentOf(part, total int) int {
	if total == 0 {
		return 0
	}
	return roundHalfUp(100 * float64(part) / float64(total))
}

// daysBefore returns the calendar day n days before today, computed at noon
// so DST shifts never skip or repeat a date.
func daysBefore(today time.Time, n int) time.Time {
	y, m, d := today.Date()
	return time.Date(y, m, d-n, 12, 0, 0, 0, today.Location())
}

func historyByDay(history []domain.HistoryEntry) map[string]int {
	out := make(map[string]int)
	for _, h := range history {
		out[h.CompletedAt]++
	}
	return out
}

// Streak counts consecutive days ending today with at least one completion.
func Streak(history []domain.HistoryEntry, today time.Time) int {
	days := historyByDay(history)
	streak := 0
	for days[domain.DayKey(daysBefore(today, streak))] > 0 {
		streak++
	}
	return streak
}

// TodayProgress is the rounded share of visible activities marked done.
func TodayProgress(completed domain.CompletionMap, visible []domain.Activity) int {
	p := percentOf(completed.CompletedCount(), len(visible))
	if p > 100 {
		return 100
	}
	return p
}

func Summarize(in StatsInput) domain.Stats {
	counts := make(map[string]int)
	for _, h := range in.History {
		counts[h.ActivityID]++
	}

	weekStart := domain.DayKey(daysBefore(in.Today, 6))
	today := domain.DayKey(in.Today)
	weekly := 0
	for _, h := range in.History {
		if h.CompletedAt >= weekStart && h.CompletedAt <= today {
			weekly++
		}
	}

	return domain.Stats{
		Streak:          Streak(in.History, in.Today),
		TodayProgress:   TodayProgress(in.Completed, in.Visible),
		TodayCompleted:  in.Completed.CompletedCount(),
		TodayTotal:      len(in.Visible),
		WeeklyCompleted: weekly,
		TotalCompleted:  len(in.History),
		ActivityCounts:  counts,
		IsHolidayMode:   in.Settings.HolidayMode,
	}
}

// WeeklyChart returns the last seven days, oldest first, with completion
// percentages relative to today's visible list.
func WeeklyChart(in StatsInput) []domain.DayProgress {
	days := historyByDay(in.History)
	out := make([]domain.DayProgress, 0, 7)
	for i := 6; i >= 0; i-- {
		d := daysBefore(in.Today, i)
		key := domain.DayKey(d)
		out = append(out, domain.DayProgress{
			Date:       key,
			Weekday:    d.Weekday().String()[:3],
			Completed:  days[key],
			Percentage: percentOf(days[key], len(in.Visible)),
			IsToday:    i == 0,
		})
	}
	return out
}

// TopActivities ranks activities by completion count. Ids that no longer
// resolve to a known activity are dropped.
func TopActivities(in StatsInput) []domain.ActivityCount {
	known := make(map[string]domain.Activity, len(in.All))
	for _, a := range in.All {
		known[a.ID] = a
	}

	counts := make(map[string]int)
	for _, h := range in.History {
		if _, ok := known[h.ActivityID]; ok {
			counts[h.ActivityID]++
		}
	}

	out := make([]domain.ActivityCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, domain.ActivityCount{Activity: known[id], Count: n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Activity.ID < out[j].Activity.ID
	})

	if len(out) > TopActivitiesLimit {
		out = out[:TopActivitiesLimit]
	}
	return out
}

func MonthlyComparison(in StatsInput) domain.MonthlyStats {
	y, m, _ := in.Today.Date()
	thisMonth := time.Date(y, m, 1, 12, 0, 0, 0, in.Today.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	thisKey := thisMonth.Format(domain.MonthLayout)
	lastKey := lastMonth.Format(domain.MonthLayout)

	var stats domain.MonthlyStats
	for _, h := range in.History {
		switch monthOf(h.CompletedAt) {
		case thisKey:
			stats.ThisMonth++
		case lastKey:
			stats.LastMonth++
		}
	}

	if stats.LastMonth > 0 {
		stats.Change = roundHalfUp(float64(stats.ThisMonth-stats.LastMonth) / float64(stats.LastMonth) * 100)
	} else {
		stats.Change = 100
	}
	return stats
}

func monthOf(day string) string {
	if len(day) < len(domain.MonthLayout) {
		return ""
	}
	return day[:len(domain.MonthLayout)]
}

// HeatLevelFor buckets a completion percentage for the calendar heatmap.
func HeatLevelFor(completed, total int) domain.HeatLevel {
	if total == 0 || completed == 0 {
		return domain.HeatNone
	}
	pct := 100 * float64(completed) / float64(total)
	switch {
	case pct < 30:
		return domain.HeatLow
	case pct < 60:
		return domain.HeatMedium
	case pct < 90:
		return domain.HeatHigh
	default:
		return domain.HeatFull
	}
}

// CalendarMonth builds the heatmap for month. LeadingBlanks is the number of
// empty cells before the 1st in a Sunday-first grid.
func CalendarMonth(in StatsInput, month time.Time) domain.CalendarMonth {
	loc := in.Today.Location()
	y, m, _ := month.Date()
	first := time.Date(y, m, 1, 12, 0, 0, 0, loc)
	daysInMonth := time.Date(y, m+1, 0, 12, 0, 0, 0, loc).Day()

	days := historyByDay(in.History)
	today := domain.DayKey(in.Today)
	total := len(in.Visible)

	cal := domain.CalendarMonth{
		Month:         first.Format(domain.MonthLayout),
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]domain.CalendarDay, 0, daysInMonth),
	}
	for d := 1; d <= daysInMonth; d++ {
		key := domain.DayKey(time.Date(y, m, d, 12, 0, 0, 0, loc))
		cal.Days = append(cal.Days, domain.CalendarDay{
			Date:       key,
			Day:        d,
			Completed:  days[key],
			Percentage: percentOf(days[key], total),
			Level:      HeatLevelFor(days[key], total),
			IsToday:    key == today,
		})
	}
	return cal
}

// DayDetail lists what was completed on day against the current activity list.
func DayDetail(in StatsInput, day string) domain.DayDetail {
	detail := domain.DayDetail{
		Date:       day,
		Completed:  make([]string, 0),
		Activities: make([]domain.ActivityStatus, 0, len(in.Visible)),
	}

	done := make(map[string]bool)
	for _, h := range in.History {
		if h.CompletedAt == day {
			detail.Completed = append(detail.Completed, h.ActivityID)
			done[h.ActivityID] = true
		}
	}
	for _, a := range in.Visible {
		detail.Activities = append(detail.Activities, domain.ActivityStatus{Activity: a, WasCompleted: done[a.ID]})
	}
	return detail
}
