package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-planner/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-planner/internal/core/notify"
)

const tagTTL = 24 * time.Hour

var (
	_ notify.Platform         = (*Redis)(nil)
	_ notify.PermissionSetter = (*Redis)(nil)
)

// Redis publishes reminders on a per-user channel for connected clients.
// The latest payload per tag is also stored so a repeat replaces it.
type Redis struct {
	rdb    *redis.Client
	userID string
}

func NewRedis(rdb *redis.Client, userID string) *Redis {
	return &Redis{rdb: rdb, userID: userID}
}

func (r *Redis) Permission(ctx context.Context) (notify.Permission, error) {
	val, err := r.rdb.Get(ctx, cache.PermissionKey(r.userID)).Result()
	if errors.Is(err, redis.Nil) {
		return notify.PermissionDefault, nil
	}
	if err != nil {
		return notify.PermissionDefault, fmt.Errorf("read permission: %w", err)
	}
	p, err := notify.ParsePermission(val)
	if err != nil {
		log.Printf("[NOTIFY] ignoring stored permission %q for user %s", val, r.userID)
		return notify.PermissionDefault, nil
	}
	return p, nil
}

func (r *Redis) RequestPermission(ctx context.Context) (notify.Permission, error) {
	current, err := r.Permission(ctx)
	if err != nil {
		return notify.PermissionDefault, err
	}
	if current == notify.PermissionDenied {
		return current, nil
	}
	if err := r.SetPermission(ctx, notify.PermissionGranted); err != nil {
		return notify.PermissionDefault, err
	}
	return notify.PermissionGranted, nil
}

func (r *Redis) SetPermission(ctx context.Context, p notify.Permission) error {
	if err := r.rdb.Set(ctx, cache.PermissionKey(r.userID), string(p), 0).Err(); err != nil {
		return fmt.Errorf("store permission: %w", err)
	}
	return nil
}

func (r *Redis) Display(ctx context.Context, n notify.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	if n.Tag != "" {
		pipe.Set(ctx, cache.ReminderTagKey(r.userID, n.Tag), payload, tagTTL)
	}
	pipe.Publish(ctx, cache.ReminderChannel(r.userID), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Feed relays delivered reminders of one user from the Redis channel.
type Feed struct {
	rdb *redis.Client
}

func NewFeed(rdb *redis.Client) *Feed {
	return &Feed{rdb: rdb}
}

// Subscribe streams reminders until ctx is done. The returned channel is closed afterwards.
func (f *Feed) Subscribe(ctx context.Context, userID string) (<-chan notify.Notification, error) {
	sub := f.rdb.Subscribe(ctx, cache.ReminderChannel(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe reminders: %w", err)
	}

	out := make(chan notify.Notification)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var n notify.Notification
				if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
					log.Printf("[NOTIFY] dropping malformed reminder for user %s: %v", userID, err)
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
