package schedule_test

import (
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(list []domain.Activity) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestFor(t *testing.T) {
	t.Run("Success: Sunday returns fixed template", func(t *testing.T) {
		got := schedule.For(time.Sunday)
		require.Len(t, got, 9)
		assert.Equal(t, "sun1", got[0].ID)
		assert.Equal(t, "sun9", got[8].ID)
	})

	t.Run("Success: Saturday returns fixed template", func(t *testing.T) {
		got := schedule.For(time.Saturday)
		require.Len(t, got, 9)
		assert.Equal(t, "sat1", got[0].ID)
		assert.Equal(t, "sat3", got[2].ID)
	})

	t.Run("Success: Weekdays include all, weekday and workout items", func(t *testing.T) {
		for d := time.Monday; d <= time.Friday; d++ {
			got := schedule.For(d)
			assert.Equal(t,
				[]string{"m1", "m2", "m3", "w1", "w2", "w3", "e1", "e2", "e3", "n1", "n2", "n3"},
				ids(got), "weekday %s", d)

			for _, a := range got {
				switch a.Days {
				case domain.DaysAll, domain.DaysWeekday:
				case domain.DaysWorkout:
					assert.True(t, schedule.IsTrainingDay(d))
				default:
					t.Fatalf("unexpected days rule %q", a.Days)
				}
			}
		}
	})

	t.Run("Success: Templates stay in time order", func(t *testing.T) {
		for d := time.Sunday; d <= time.Saturday; d++ {
			got := schedule.For(d)
			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, got[i-1].Time, got[i].Time)
			}
		}
	})

	t.Run("Success: Returned slice is a fresh copy", func(t *testing.T) {
		first := schedule.For(time.Monday)
		first[0].Task = "mutated"
		first[0].Enabled = false

		second := schedule.For(time.Monday)
		assert.Equal(t, "Wake up", second[0].Task)
		assert.True(t, second[0].Enabled)
	})

	t.Run("Success: Swimming flag only on e3", func(t *testing.T) {
		for _, a := range schedule.For(time.Tuesday) {
			assert.Equal(t, a.ID == "e3", a.IsSwimming, a.ID)
		}
	})
}

func TestAppliesOn(t *testing.T) {
	tests := []struct {
		name    string
		rule    domain.DayRule
		weekday time.Weekday
		want    bool
	}{
		{"All on Sunday", domain.DaysAll, time.Sunday, true},
		{"Weekday on Monday", domain.DaysWeekday, time.Monday, true},
		{"Weekday on Saturday", domain.DaysWeekday, time.Saturday, false},
		{"Workout on Wednesday", domain.DaysWorkout, time.Wednesday, true},
		{"Workout on swim day", domain.DaysWorkout, time.Thursday, true},
		{"Workout on Sunday", domain.DaysWorkout, time.Sunday, false},
		{"Unknown rule defaults to included", domain.DayRule("fortnight"), time.Saturday, true},
		{"Empty rule defaults to included", "", time.Tuesday, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, schedule.AppliesOn(tt.rule, tt.weekday))
		})
	}
}

func TestWorkouts(t *testing.T) {
	t.Run("Success: Monday first, Sunday last", func(t *testing.T) {
		plan := schedule.Workouts(true)
		require.Len(t, plan, 7)
		assert.Equal(t, time.Monday, plan[0].Weekday)
		assert.Equal(t, time.Sunday, plan[6].Weekday)
		assert.Len(t, plan[0].Detailed, 4)
	})

	t.Run("Success: Swim days kept when swimming enabled", func(t *testing.T) {
		plan := schedule.Workouts(true)
		assert.True(t, plan[1].IsSwimming)
		assert.Equal(t, "Swimming (intense)", plan[1].Title)
	})

	t.Run("Success: Swim days become home workouts when disabled", func(t *testing.T) {
		plan := schedule.Workouts(false)
		for _, w := range plan {
			assert.False(t, w.IsSwimming, w.Day)
		}
		assert.Equal(t, "Home workout", plan[1].Title)
		assert.Equal(t, "Tuesday", plan[1].Day)
		assert.Equal(t, []string{"Stretching", "Yoga", "Light cardio"}, plan[3].Exercises)
	})
}
