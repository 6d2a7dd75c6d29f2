package domain

import "time"

type Exercise struct {
	Name    string `json:"name"`
	Sets    int    `json:"sets"`
	Reps    string `json:"reps"`
	Purpose string `json:"purpose"`
}

type Workout struct {
	Day        string       `json:"day"`
	Weekday    time.Weekday `json:"weekday"`
	Title      string       `json:"title"`
	Exercises  []string     `json:"exercises"`
	Detailed   []Exercise   `json:"detailed,omitempty"`
	IsSwimming bool         `json:"is_swimming,omitempty"`
}
