package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/notify"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
	"github.com/comitanigiacomo/kanso-planner/internal/core/workers"
)

type grantingPlatform struct{}

func (grantingPlatform) Permission(context.Context) (notify.Permission, error) {
	return notify.PermissionGranted, nil
}

func (grantingPlatform) RequestPermission(context.Context) (notify.Permission, error) {
	return notify.PermissionGranted, nil
}

func (grantingPlatform) Display(context.Context, notify.Notification) error { return nil }

// cancelSensitiveStore fails its load like a driver would on a cancelled
// context.
type cancelSensitiveStore struct {
	*MockStore
	snapshot *domain.Snapshot
}

func (s *cancelSensitiveStore) LoadAll(ctx context.Context, _ string, _ string) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.snapshot, nil
}

func TestSessionManager_BackendSelection(t *testing.T) {
	local, remote := new(MockStore), new(MockStore)

	t.Run("Success: Demo identity stays local", func(t *testing.T) {
		m := services.NewSessionManager(services.SessionConfig{Local: local, Remote: remote})
		assert.Same(t, local, m.StoreFor(domain.DemoIdentity()))
		assert.Same(t, remote, m.StoreFor(domain.Identity{UserID: "u1"}))
	})

	t.Run("Success: No remote configured means local for everyone", func(t *testing.T) {
		m := services.NewSessionManager(services.SessionConfig{Local: local})
		assert.Same(t, local, m.StoreFor(domain.Identity{UserID: "u1"}))
	})
}

func TestSessionManager_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Loads once and reuses the planner", func(t *testing.T) {
		local := new(MockStore)
		local.On("LoadAll", mock.Anything, domain.DemoUserID, mock.Anything).Return(&domain.Snapshot{
			Notifications: &domain.NotificationSettings{Enabled: true, Minutes: 5},
		}, nil).Once()

		var armedFor []string
		m := services.NewSessionManager(services.SessionConfig{
			Local:    local,
			Platform: func(string) notify.Platform { return grantingPlatform{} },
			Location: time.UTC,
			Clock:    func() time.Time { return time.Date(2026, 5, 4, 6, 0, 0, 0, time.UTC) },
			OnArm:    func(userID string, _ int) { armedFor = append(armedFor, userID) },
		})
		defer m.Close()

		p1 := m.Get(ctx, domain.DemoIdentity())
		p2 := m.Get(ctx, domain.DemoIdentity())

		assert.Same(t, p1, p2)
		assert.False(t, p1.Loading())
		assert.Equal(t, 1, m.Len())
		assert.NotEmpty(t, p1.PendingReminders(), "morning reminders are armed at 06:00")
		assert.Contains(t, armedFor, domain.DemoUserID)
		local.AssertNumberOfCalls(t, "LoadAll", 1)
	})

	t.Run("Success: Load failure still yields a usable planner", func(t *testing.T) {
		remote := new(MockStore)
		remote.On("LoadAll", mock.Anything, "u1", mock.Anything).Return(nil, errors.New("unreachable"))

		m := services.NewSessionManager(services.SessionConfig{Local: new(MockStore), Remote: remote})
		p := m.Get(ctx, domain.Identity{UserID: "u1"})

		assert.False(t, p.Loading())
		assert.NotEmpty(t, p.AllActivities())
	})

	t.Run("Success: Cancelled first request still loads stored state", func(t *testing.T) {
		remote := &cancelSensitiveStore{
			MockStore: new(MockStore),
			snapshot: &domain.Snapshot{
				History:  []domain.HistoryEntry{domain.NewHistoryEntry("m1", "2026-05-01")},
				Settings: &domain.Settings{SwimmingEnabled: false},
			},
		}
		m := services.NewSessionManager(services.SessionConfig{Local: new(MockStore), Remote: remote, Location: time.UTC})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		p := m.Get(cancelled, domain.Identity{UserID: "u1"})

		assert.False(t, p.Loading())
		assert.False(t, p.Settings().SwimmingEnabled, "stored settings win over defaults")
		assert.Len(t, p.History(), 1)
		assert.Same(t, p, m.Get(ctx, domain.Identity{UserID: "u1"}))
	})

	t.Run("Success: Drop forgets the session", func(t *testing.T) {
		local := new(MockStore)
		local.On("LoadAll", mock.Anything, domain.DemoUserID, mock.Anything).Return(&domain.Snapshot{}, nil)

		m := services.NewSessionManager(services.SessionConfig{Local: local})
		first := m.Get(ctx, domain.DemoIdentity())
		m.Drop(domain.DemoUserID)

		assert.Equal(t, 0, m.Len())
		assert.NotSame(t, first, m.Get(ctx, domain.DemoIdentity()))
	})
}

func TestSessionManager_StartTicksRollover(t *testing.T) {
	clock := &mutableClock{now: monday}
	local := new(MockStore)
	local.On("LoadAll", mock.Anything, domain.DemoUserID, mock.Anything).Return(&domain.Snapshot{}, nil)

	var rearms atomic.Int32
	m := services.NewSessionManager(services.SessionConfig{
		Local:    local,
		Platform: func(string) notify.Platform { return grantingPlatform{} },
		Location: time.UTC,
		Clock:    clock.Now,
		OnArm:    func(string, int) { rearms.Add(1) },
	})
	defer m.Close()
	m.Get(context.Background(), domain.DemoIdentity())
	before := rearms.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx, 5*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, before, rearms.Load(), "no rollover within the same day")

	clock.Set(monday.AddDate(0, 0, 1))
	assert.Eventually(t, func() bool {
		return rearms.Load() > before
	}, time.Second, 5*time.Millisecond)
}

func TestSyncStatus(t *testing.T) {
	at := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	status := services.NewSyncStatus(func() time.Time { return at })

	assert.True(t, status.For("u1").Healthy)

	status.RecordSuccess(workers.SyncJob{UserID: "u1", Op: services.OpAppendHistory})
	status.RecordFailure(workers.SyncJob{UserID: "u1", Op: services.OpUpsertSettings}, errors.New("timeout"))

	st := status.For("u1")
	assert.False(t, st.Healthy)
	assert.Equal(t, 1, st.Succeeded)
	assert.Equal(t, 1, st.Failed)
	assert.Equal(t, services.OpUpsertSettings, st.LastOp)
	assert.Equal(t, "timeout", st.LastError)
	require.NotNil(t, st.LastFailureAt)
	assert.Equal(t, at, *st.LastFailureAt)

	status.RecordSuccess(workers.SyncJob{UserID: "u1", Op: services.OpSaveCompletions})
	assert.True(t, status.For("u1").Healthy)
	assert.True(t, status.For("u2").Healthy)
}
