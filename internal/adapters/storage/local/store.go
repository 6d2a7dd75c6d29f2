package local

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/comitanigiacomo/kanso-planner/internal/adapters/storage/kv"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

const (
	blobCompleted     = "completed"
	blobHistory       = "history"
	blobSettings      = "settings"
	blobActivities    = "activities"
	blobNotifications = "notifications"
)

type completions struct {
	Date  string               `json:"date"`
	Items domain.CompletionMap `json:"items"`
}

// Store keeps each part of a user's planner state as one JSON blob in a kv.Store.
type Store struct {
	kv kv.Store
	mu sync.Mutex
}

func NewStore(backend kv.Store) *Store {
	return &Store{kv: backend}
}

func Key(userID, blob string) string {
	return fmt.Sprintf("planner:%s:%s", userID, blob)
}

func (s *Store) LoadAll(ctx context.Context, userID string, day string) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &domain.Snapshot{}

	var done completions
	if ok, err := s.read(ctx, userID, blobCompleted, &done); err != nil {
		return nil, err
	} else if ok {
		snap.Completed = done.Items
		snap.CompletionsDay = done.Date
	}

	if _, err := s.read(ctx, userID, blobHistory, &snap.History); err != nil {
		return nil, err
	}
	if _, err := s.read(ctx, userID, blobActivities, &snap.Activities); err != nil {
		return nil, err
	}

	var settings domain.Settings
	if ok, err := s.read(ctx, userID, blobSettings, &settings); err != nil {
		return nil, err
	} else if ok {
		snap.Settings = &settings
	}

	var notifications domain.NotificationSettings
	if ok, err := s.read(ctx, userID, blobNotifications, &notifications); err != nil {
		return nil, err
	} else if ok {
		snap.Notifications = &notifications
	}

	return snap, nil
}

func (s *Store) AppendHistory(ctx context.Context, userID string, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []domain.HistoryEntry
	if _, err := s.read(ctx, userID, blobHistory, &history); err != nil {
		return err
	}
	if domain.IndexOfEntry(history, entry.ActivityID, entry.CompletedAt) >= 0 {
		return nil
	}
	// Newest first, matching the planner's in-memory order.
	return s.write(ctx, userID, blobHistory, append([]domain.HistoryEntry{entry}, history...))
}

func (s *Store) RemoveHistory(ctx context.Context, userID string, activityID, day string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []domain.HistoryEntry
	if _, err := s.read(ctx, userID, blobHistory, &history); err != nil {
		return err
	}
	kept := history[:0]
	for _, h := range history {
		if h.ActivityID == activityID && h.CompletedAt == day {
			continue
		}
		kept = append(kept, h)
	}
	if len(kept) == len(history) {
		return nil
	}
	return s.write(ctx, userID, blobHistory, kept)
}

func (s *Store) SaveCompletions(ctx context.Context, userID string, day string, completed domain.CompletionMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := completed
	if items == nil {
		items = domain.CompletionMap{}
	}
	return s.write(ctx, userID, blobCompleted, completions{Date: day, Items: items})
}

func (s *Store) UpsertSettings(ctx context.Context, userID string, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, userID, blobSettings, settings)
}

func (s *Store) SaveNotificationSettings(ctx context.Context, userID string, settings domain.NotificationSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, userID, blobNotifications, settings)
}

func (s *Store) InsertActivity(ctx context.Context, userID string, activity domain.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var activities []domain.Activity
	if _, err := s.read(ctx, userID, blobActivities, &activities); err != nil {
		return err
	}
	for i, a := range activities {
		if a.ID == activity.ID {
			activities[i] = activity
			return s.write(ctx, userID, blobActivities, activities)
		}
	}
	return s.write(ctx, userID, blobActivities, append(activities, activity))
}

func (s *Store) DeleteActivity(ctx context.Context, userID string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var activities []domain.Activity
	if _, err := s.read(ctx, userID, blobActivities, &activities); err != nil {
		return err
	}
	kept := activities[:0]
	for _, a := range activities {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(activities) {
		return nil
	}
	return s.write(ctx, userID, blobActivities, kept)
}

// read decodes a blob into dst. A corrupt blob is logged and reported as absent.
func (s *Store) read(ctx context.Context, userID, blob string, dst any) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, Key(userID, blob))
	if err != nil {
		return false, fmt.Errorf("load %s: %w", blob, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("[STORE] ignoring corrupt %s for user %s: %v", blob, userID, err)
		return false, nil
	}
	return true, nil
}

func (s *Store) write(ctx context.Context, userID, blob string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", blob, err)
	}
	if err := s.kv.Set(ctx, Key(userID, blob), raw); err != nil {
		return fmt.Errorf("save %s: %w", blob, err)
	}
	return nil
}
