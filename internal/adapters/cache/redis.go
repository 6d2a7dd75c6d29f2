package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	return rdb, nil
}

// Key layout shared by every Redis consumer of the planner.

func SnapshotKey(userID string) string {
	return "planner:snapshot:" + userID
}

func PermissionKey(userID string) string {
	return "planner:notify:" + userID + ":permission"
}

func ReminderTagKey(userID, tag string) string {
	return "planner:notify:" + userID + ":tag:" + tag
}

func ReminderChannel(userID string) string {
	return "planner:reminders:" + userID
}

// RateLimitKey holds the request counter of one subject ("user:<id>" or
// "ip:<addr>") for the current window.
func RateLimitKey(subject string) string {
	return "planner:rate:" + subject
}
