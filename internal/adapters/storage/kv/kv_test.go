package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("Missing key", func(t *testing.T) {
		v, ok, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("Set then Get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "planner:u1:history", []byte(`[]`)))
		v, ok, err := s.Get(ctx, "planner:u1:history")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[]`, string(v))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "k", []byte("one")))
		require.NoError(t, s.Set(ctx, "k", []byte("two")))
		v, _, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "two", string(v))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "gone", []byte("x")))
		require.NoError(t, s.Delete(ctx, "gone"))
		_, ok, err := s.Get(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, s.Delete(ctx, "never-there"))
	})
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())

	t.Run("Values are copied", func(t *testing.T) {
		m := NewMemory()
		buf := []byte("abc")
		require.NoError(t, m.Set(context.Background(), "k", buf))
		buf[0] = 'z'

		v, _, _ := m.Get(context.Background(), "k")
		assert.Equal(t, "abc", string(v))
	})
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)

	t.Run("Survives reopen", func(t *testing.T) {
		require.NoError(t, s.Set(context.Background(), "persist", []byte("yes")))
		require.NoError(t, s.Close())

		reopened, err := OpenSQLite(path)
		require.NoError(t, err)
		defer reopened.Close()

		v, ok, err := reopened.Get(context.Background(), "persist")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "yes", string(v))
	})
}

func TestNewSQLite_NilDB(t *testing.T) {
	_, err := NewSQLite(nil)
	assert.Error(t, err)
}

func TestRedis_Integration(t *testing.T) {
	_ = godotenv.Load("../../../../.env")

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       2,
	})
	defer rdb.Close()

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping Redis kv test: %v", err)
	}
	require.NoError(t, rdb.FlushDB(ctx).Err())

	exerciseStore(t, NewRedis(rdb))
}
