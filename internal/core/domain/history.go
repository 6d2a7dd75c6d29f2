package domain

import (
	"time"
)

const (
	StatusCompleted = "completed"
	DateLayout      = "2006-01-02"
	MonthLayout     = "2006-01"
)

// HistoryEntry records one completion of an activity on a calendar day.
type HistoryEntry struct {
	ActivityID  string `json:"activity_id" db:"activity_id"`
	CompletedAt string `json:"completed_at" db:"completed_at"`
	Status      string `json:"status" db:"status"`
}

func NewHistoryEntry(activityID, day string) HistoryEntry {
	return HistoryEntry{
		ActivityID:  activityID,
		CompletedAt: day,
		Status:      StatusCompleted,
	}
}

// IndexOfEntry returns the position of the first entry for activityID on day, or -1.
func IndexOfEntry(history []HistoryEntry, activityID, day string) int {
	for i, h := range history {
		if h.ActivityID == activityID && h.CompletedAt == day {
			return i
		}
	}
	return -1
}

// CompletionMap holds today's done flags keyed by activity id.
type CompletionMap map[string]bool

func (m CompletionMap) Clone() CompletionMap {
	out := make(CompletionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m CompletionMap) CompletedCount() int {
	n := 0
	for _, done := range m {
		if done {
			n++
		}
	}
	return n
}

// DayKey formats t as the YYYY-MM-DD key used by history and completions.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// CompletionEvent is emitted whenever an activity is marked or unmarked.
type CompletionEvent struct {
	UserID     string    `json:"user_id"`
	ActivityID string    `json:"activity_id"`
	Date       string    `json:"date"`
	Completed  bool      `json:"completed"`
	OccurredAt time.Time `json:"occurred_at"`
}
