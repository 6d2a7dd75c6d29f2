package schedule

import (
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

var (
	workoutDays = map[time.Weekday]bool{time.Monday: true, time.Wednesday: true, time.Friday: true}
	swimDays    = map[time.Weekday]bool{time.Tuesday: true, time.Thursday: true}
)

// Templates are authored in time order; For never re-sorts them.
var baseTemplate = []domain.Activity{
	{ID: "m1", Time: "08:30", Task: "Wake up", Phase: domain.PhaseMorning, Detail: "1 glass of water", Type: "Water", Enabled: true, Days: domain.DaysAll},
	{ID: "m2", Time: "08:45", Task: "Breakfast", Phase: domain.PhaseMorning, Detail: "Serious Mass (1 scoop + 500 ml milk)", Type: "Utensils", Enabled: true, Days: domain.DaysAll},
	{ID: "m3", Time: "09:00", Task: "Supplements", Phase: domain.PhaseMorning, Detail: "Omega-3 (1 capsule) + collagen", Type: "Zap", Enabled: true, Days: domain.DaysAll},
	{ID: "w1", Time: "10:00", Task: "Work", Phase: domain.PhaseWork, Detail: "2-2.5 liters of water through the day", Type: "Water", Enabled: true, Days: domain.DaysWeekday},
	{ID: "w2", Time: "13:00", Task: "Eye care #1", Phase: domain.PhaseWork, Detail: "Eye drops (3-4 times a day)", Type: "Eye", Enabled: true, Days: domain.DaysWeekday},
	{ID: "w3", Time: "16:00", Task: "Eye care #2", Phase: domain.PhaseWork, Detail: "Eye drops (1 drop)", Type: "Eye", Enabled: true, Days: domain.DaysWeekday},
	{ID: "e1", Time: "18:30", Task: "Family time", Phase: domain.PhaseEvening, Detail: "Dinner #1 (meat + carbs)", Type: "Utensils", Enabled: true, Days: domain.DaysAll},
	{ID: "e2", Time: "20:00", Task: "Preparation", Phase: domain.PhaseEvening, Detail: "Eye drops (1 drop)", Type: "Eye", Enabled: true, Days: domain.DaysWorkout},
	{ID: "e3", Time: "20:15", Task: "Workout / pool", Phase: domain.PhaseEvening, Detail: "Drink water while training, goggles at the pool!", Type: "Dumbbell", Enabled: true, IsSwimming: true, Days: domain.DaysWorkout},
	{ID: "n1", Time: "21:30", Task: "Recovery", Phase: domain.PhaseNight, Detail: "Small snack (fruit or bar) + eye drops", Type: "Utensils", Enabled: true, Days: domain.DaysAll},
	{ID: "n2", Time: "22:30", Task: "Before bed", Phase: domain.PhaseNight, Detail: "Cottage cheese or half a gainer serving + magnesium citrate", Type: "Zap", Enabled: true, Days: domain.DaysAll},
	{ID: "n3", Time: "23:00", Task: "Sleep", Phase: domain.PhaseNight, Detail: "Eye gel (10 days only)", Type: "Eye", Enabled: true, Days: domain.DaysAll},
}

var sundayTemplate = []domain.Activity{
	{ID: "sun1", Time: "09:30", Task: "Late wake up", Phase: domain.PhaseMorning, Detail: "Rest day, sleep in!", Type: "Water", Enabled: true},
	{ID: "sun2", Time: "10:00", Task: "Breakfast", Phase: domain.PhaseMorning, Detail: "Slow breakfast with family", Type: "Utensils", Enabled: true},
	{ID: "sun3", Time: "10:30", Task: "Supplements", Phase: domain.PhaseMorning, Detail: "Omega-3 + collagen", Type: "Zap", Enabled: true},
	{ID: "sun4", Time: "13:00", Task: "Eye care", Phase: domain.PhaseDay, Detail: "Eye drops (1 drop)", Type: "Eye", Enabled: true},
	{ID: "sun5", Time: "14:00", Task: "Family time", Phase: domain.PhaseDay, Detail: "Lunch with family", Type: "Utensils", Enabled: true},
	{ID: "sun6", Time: "18:00", Task: "Prepare for the week", Phase: domain.PhaseEvening, Detail: "Prepare food and clothes", Type: "Zap", Enabled: true},
	{ID: "sun7", Time: "20:00", Task: "Dinner", Phase: domain.PhaseEvening, Detail: "Light dinner", Type: "Utensils", Enabled: true},
	{ID: "sun8", Time: "22:00", Task: "Before bed", Phase: domain.PhaseNight, Detail: "Cottage cheese + magnesium citrate", Type: "Zap", Enabled: true},
	{ID: "sun9", Time: "22:30", Task: "Early sleep", Phase: domain.PhaseNight, Detail: "Monday tomorrow, sleep early!", Type: "Eye", Enabled: true},
}

var saturdayTemplate = []domain.Activity{
	{ID: "sat1", Time: "09:00", Task: "Wake up", Phase: domain.PhaseMorning, Detail: "1 glass of water", Type: "Water", Enabled: true},
	{ID: "sat2", Time: "09:30", Task: "Breakfast", Phase: domain.PhaseMorning, Detail: "Serious Mass + omega-3", Type: "Utensils", Enabled: true},
	{ID: "sat3", Time: "11:00", Task: "Family walk", Phase: domain.PhaseDay, Detail: "At least 5000 steps", Type: "Dumbbell", Enabled: true},
	{ID: "sat4", Time: "13:00", Task: "Eye care", Phase: domain.PhaseDay, Detail: "Eye drops (1 drop)", Type: "Eye", Enabled: true},
	{ID: "sat5", Time: "14:00", Task: "Lunch", Phase: domain.PhaseDay, Detail: "Family lunch", Type: "Utensils", Enabled: true},
	{ID: "sat6", Time: "18:00", Task: "Evening", Phase: domain.PhaseEvening, Detail: "Free time", Type: "Zap", Enabled: true},
	{ID: "sat7", Time: "20:00", Task: "Dinner", Phase: domain.PhaseEvening, Detail: "Meat + salad", Type: "Utensils", Enabled: true},
	{ID: "sat8", Time: "22:30", Task: "Before bed", Phase: domain.PhaseNight, Detail: "Cottage cheese + magnesium", Type: "Zap", Enabled: true},
	{ID: "sat9", Time: "23:30", Task: "Sleep", Phase: domain.PhaseNight, Detail: "Saturday night", Type: "Eye", Enabled: true},
}

// For returns the activities that apply on weekday. The slice is a fresh copy.
func For(weekday time.Weekday) []domain.Activity {
	switch weekday {
	case time.Sunday:
		return clone(sundayTemplate)
	case time.Saturday:
		return clone(saturdayTemplate)
	}

	out := make([]domain.Activity, 0, len(baseTemplate))
	for _, a := range baseTemplate {
		if AppliesOn(a.Days, weekday) {
			out = append(out, a)
		}
	}
	return out
}

// AppliesOn reports whether an activity tagged with rule belongs on weekday.
// Unknown or empty rules always apply.
func AppliesOn(rule domain.DayRule, weekday time.Weekday) bool {
	switch rule {
	case domain.DaysWeekday:
		return weekday >= time.Monday && weekday <= time.Friday
	case domain.DaysWorkout:
		return IsTrainingDay(weekday)
	default:
		return true
	}
}

// IsTrainingDay covers both gym and swim days.
func IsTrainingDay(weekday time.Weekday) bool {
	return workoutDays[weekday] || swimDays[weekday]
}

func IsSwimDay(weekday time.Weekday) bool {
	return swimDays[weekday]
}

func clone(src []domain.Activity) []domain.Activity {
	out := make([]domain.Activity, len(src))
	copy(out, src)
	return out
}
