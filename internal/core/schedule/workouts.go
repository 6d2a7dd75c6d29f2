package schedule

import (
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

var weeklyPlan = map[time.Weekday]domain.Workout{
	time.Monday: {
		Title: "Upper body (V-shape)",
		Exercises: []string{
			"Pull-ups (wide grip) - 4×max • back width",
			"Kettlebell row (15 kg) - 4×12 • fill the shoulder blades",
			"Push-ups - 4×15-20 • chest shape",
			"Shoulder press (15 kg) - 4×12 • round shoulders",
		},
		Detailed: []domain.Exercise{
			{Name: "Pull-ups (wide grip)", Sets: 4, Reps: "max", Purpose: "Back width"},
			{Name: "Kettlebell row (one arm)", Sets: 4, Reps: "12 (15 kg)", Purpose: "Fill the shoulder blades with muscle"},
			{Name: "Push-ups", Sets: 4, Reps: "15-20", Purpose: "Chest shape"},
			{Name: "Shoulder press (dumbbells)", Sets: 4, Reps: "12 (15 kg)", Purpose: "Round shoulders"},
		},
	},
	time.Tuesday: {
		Title:      "Swimming (intense)",
		Exercises:  []string{"45 min intense freestyle", "Goggles required!"},
		IsSwimming: true,
	},
	time.Wednesday: {
		Title: "Lower body (testosterone boost)",
		Exercises: []string{
			"Goblet squat (30 kg) - 4×15 • hormones",
			"Bulgarian squat (15 kg) - 3×12 • glute strength",
			"Romanian deadlift (30 kg) - 4×15 • hamstrings",
			"Hip bridge (30 kg) - 4×20 • glute shape",
		},
		Detailed: []domain.Exercise{
			{Name: "Goblet squat (30 kg kettlebell)", Sets: 4, Reps: "15", Purpose: "Main hormone exercise"},
			{Name: "Bulgarian squat (15 kg)", Sets: 3, Reps: "12 (each leg)", Purpose: "Glute roundness and strength"},
			{Name: "Romanian deadlift (30 kg kettlebell)", Sets: 4, Reps: "15", Purpose: "Hamstring definition"},
			{Name: "Hip bridge (30 kg)", Sets: 4, Reps: "20", Purpose: "Glute shape and lower back"},
		},
	},
	time.Thursday: {
		Title:      "Swimming (recovery)",
		Exercises:  []string{"Easy swim for circulation", "Breath control"},
		IsSwimming: true,
	},
	time.Friday: {
		Title: "Full body (strength and definition)",
		Exercises: []string{
			"Pull-ups (close grip) - 3×max • biceps + back",
			"Squat + shoulder press (15 kg) - 4×12 • combo",
			"Hanging knee raises - 4×15 • abs",
			"Farmer walk (15 kg) - 3×1min • balance",
		},
		Detailed: []domain.Exercise{
			{Name: "Pull-ups (close grip)", Sets: 3, Reps: "max", Purpose: "Biceps and back"},
			{Name: "Squat + shoulder press", Sets: 4, Reps: "12 (15 kg)", Purpose: "Compound movement"},
			{Name: "Hanging knee raises", Sets: 4, Reps: "15", Purpose: "Ab definition"},
			{Name: "Farmer walk", Sets: 3, Reps: "1 min", Purpose: "Walking with 15 kg each hand (balance)"},
		},
	},
	time.Saturday: {
		Title:     "Family walk",
		Exercises: []string{"At least 5000 steps with family"},
	},
	time.Sunday: {
		Title:     "Full rest (recovery)",
		Exercises: []string{"Good sleep", "Prepare for the new week"},
	},
}

var homeWorkout = domain.Workout{
	Title:     "Home workout",
	Exercises: []string{"Stretching", "Yoga", "Light cardio"},
}

// Workouts returns the weekly plan from Monday to Sunday. Swim days are
// replaced by a home workout when swimming is disabled.
func Workouts(swimmingEnabled bool) []domain.Workout {
	out := make([]domain.Workout, 0, 7)
	for i := 1; i <= 7; i++ {
		day := time.Weekday(i % 7)
		out = append(out, WorkoutFor(day, swimmingEnabled))
	}
	return out
}

func WorkoutFor(day time.Weekday, swimmingEnabled bool) domain.Workout {
	w := weeklyPlan[day]
	if w.IsSwimming && !swimmingEnabled {
		w = homeWorkout
	}
	w.Day = day.String()
	w.Weekday = day
	w.Exercises = append([]string(nil), w.Exercises...)
	w.Detailed = append([]domain.Exercise(nil), w.Detailed...)
	return w
}
