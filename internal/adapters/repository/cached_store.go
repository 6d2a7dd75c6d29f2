package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-planner/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

var _ domain.Store = (*CachedStore)(nil)

const snapshotTTL = 30 * time.Minute

// CachedStore keeps the last LoadAll result per user in Redis and drops it on every write.
type CachedStore struct {
	next  domain.Store
	cache *redis.Client
}

func NewCachedStore(next domain.Store, cache *redis.Client) *CachedStore {
	return &CachedStore{
		next:  next,
		cache: cache,
	}
}

type cachedSnapshot struct {
	Day            string                       `json:"day"`
	Activities     []domain.Activity            `json:"activities"`
	History        []domain.HistoryEntry        `json:"history"`
	Completed      domain.CompletionMap         `json:"completed"`
	CompletionsDay string                       `json:"completions_day"`
	Settings       *domain.Settings             `json:"settings"`
	Notifications  *domain.NotificationSettings `json:"notifications"`
}

func (r *CachedStore) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, cache.SnapshotKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedStore) LoadAll(ctx context.Context, userID string, day string) (*domain.Snapshot, error) {
	key := cache.SnapshotKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var cached cachedSnapshot
		if err := json.Unmarshal(val, &cached); err == nil {
			if cached.Day == day {
				return &domain.Snapshot{
					Activities:     cached.Activities,
					History:        cached.History,
					Completed:      cached.Completed,
					CompletionsDay: cached.CompletionsDay,
					Settings:       cached.Settings,
					Notifications:  cached.Notifications,
				}, nil
			}
		} else {
			log.Printf("[CACHE] Corrupted snapshot for user %s, cleaning up key", userID)
			r.cache.Del(ctx, key)
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	snap, err := r.next.LoadAll(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(cachedSnapshot{
		Day:            day,
		Activities:     snap.Activities,
		History:        snap.History,
		Completed:      snap.Completed,
		CompletionsDay: snap.CompletionsDay,
		Settings:       snap.Settings,
		Notifications:  snap.Notifications,
	})
	if err == nil {
		if setErr := r.cache.Set(ctx, key, data, snapshotTTL).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return snap, nil
}

func (r *CachedStore) AppendHistory(ctx context.Context, userID string, entry domain.HistoryEntry) error {
	defer r.invalidate(ctx, userID)
	return r.next.AppendHistory(ctx, userID, entry)
}

func (r *CachedStore) RemoveHistory(ctx context.Context, userID string, activityID, day string) error {
	defer r.invalidate(ctx, userID)
	return r.next.RemoveHistory(ctx, userID, activityID, day)
}

func (r *CachedStore) SaveCompletions(ctx context.Context, userID string, day string, completed domain.CompletionMap) error {
	defer r.invalidate(ctx, userID)
	return r.next.SaveCompletions(ctx, userID, day, completed)
}

func (r *CachedStore) UpsertSettings(ctx context.Context, userID string, settings domain.Settings) error {
	defer r.invalidate(ctx, userID)
	return r.next.UpsertSettings(ctx, userID, settings)
}

func (r *CachedStore) SaveNotificationSettings(ctx context.Context, userID string, settings domain.NotificationSettings) error {
	defer r.invalidate(ctx, userID)
	return r.next.SaveNotificationSettings(ctx, userID, settings)
}

func (r *CachedStore) InsertActivity(ctx context.Context, userID string, activity domain.Activity) error {
	defer r.invalidate(ctx, userID)
	return r.next.InsertActivity(ctx, userID, activity)
}

func (r *CachedStore) DeleteActivity(ctx context.Context, userID string, id string) error {
	defer r.invalidate(ctx, userID)
	return r.next.DeleteActivity(ctx, userID, id)
}
