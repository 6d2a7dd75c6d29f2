package domain

import (
	"context"
)

// Snapshot is everything a backend returns when a session starts.
// Nil Settings or Notifications mean nothing was stored yet.
type Snapshot struct {
	Activities     []Activity
	History        []HistoryEntry
	Completed      CompletionMap
	CompletionsDay string
	Settings       *Settings
	Notifications  *NotificationSettings
}

// Store mirrors planner state to a backend. Every write is idempotent with
// respect to final state so out-of-order completion is harmless.
type Store interface {
	// LoadAll reads the persisted state of a user. Activities only holds
	// user-created activities; templates come from the schedule.
	LoadAll(ctx context.Context, userID string, day string) (*Snapshot, error)

	AppendHistory(ctx context.Context, userID string, entry HistoryEntry) error

	// RemoveHistory deletes the completion of activityID on day.
	RemoveHistory(ctx context.Context, userID string, activityID, day string) error

	SaveCompletions(ctx context.Context, userID string, day string, completed CompletionMap) error

	UpsertSettings(ctx context.Context, userID string, settings Settings) error

	SaveNotificationSettings(ctx context.Context, userID string, settings NotificationSettings) error

	InsertActivity(ctx context.Context, userID string, activity Activity) error

	DeleteActivity(ctx context.Context, userID string, id string) error
}
