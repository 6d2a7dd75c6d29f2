package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/notify"
)

type SessionConfig struct {
	Local  domain.Store
	Remote domain.Store
	Syncer Syncer
	Events EventPublisher
	// EventQueue is the worker completion events go through.
	EventQueue Syncer
	// Platform builds the reminder surface of one user.
	Platform func(userID string) notify.Platform
	Location *time.Location
	Clock    func() time.Time
	OnFire   func(userID string, n notify.Notification)
	OnArm    func(userID string, armed int)
}

type session struct {
	planner *Planner
	once    sync.Once
}

// SessionManager keeps one Planner per signed-in user and picks its backend
// once, when the session is created.
type SessionManager struct {
	cfg SessionConfig

	mu       sync.Mutex
	sessions map[string]*session
}

func NewSessionManager(cfg SessionConfig) *SessionManager {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &SessionManager{
		cfg:      cfg,
		sessions: make(map[string]*session),
	}
}

// StoreFor returns the backend an identity is bound to. Demo identities and
// deployments without a remote database use the local store.
func (m *SessionManager) StoreFor(id domain.Identity) domain.Store {
	if id.Demo || m.cfg.Remote == nil {
		return m.cfg.Local
	}
	return m.cfg.Remote
}

// Get returns the planner of id, creating and loading it on first use.
func (m *SessionManager) Get(ctx context.Context, id domain.Identity) *Planner {
	m.mu.Lock()
	s, ok := m.sessions[id.UserID]
	if !ok {
		s = &session{planner: m.newPlanner(id)}
		m.sessions[id.UserID] = s
	}
	m.mu.Unlock()

	// The load outlives the request that triggered it: a client hanging up
	// must not leave the session on defaults for good.
	s.once.Do(func() {
		if err := s.planner.Initialize(context.WithoutCancel(ctx)); err != nil {
			log.Printf("[PLANNER] session for %s started with defaults", id.UserID)
		}
	})
	return s.planner
}

func (m *SessionManager) newPlanner(id domain.Identity) *Planner {
	userID := id.UserID

	var reminders Reminders
	if m.cfg.Platform != nil {
		opts := notify.Options{Location: m.cfg.Location, Clock: m.cfg.Clock}
		if m.cfg.OnFire != nil {
			opts.OnFire = func(n notify.Notification) { m.cfg.OnFire(userID, n) }
		}
		if m.cfg.OnArm != nil {
			opts.OnArm = func(armed int) { m.cfg.OnArm(userID, armed) }
		}
		reminders = notify.NewScheduler(m.cfg.Platform(userID), opts)
	}

	return NewPlanner(PlannerDeps{
		UserID:     userID,
		Store:      m.StoreFor(id),
		Syncer:     m.cfg.Syncer,
		Reminders:  reminders,
		Events:     m.cfg.Events,
		EventQueue: m.cfg.EventQueue,
		Location:   m.cfg.Location,
		Clock:      m.cfg.Clock,
	})
}

// Drop ends the session of userID and cancels its reminders.
func (m *SessionManager) Drop(userID string) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if ok {
		s.planner.Close()
	}
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *SessionManager) planners() []*Planner {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Planner, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.planner)
	}
	return out
}

// Start ticks every session on interval so day rollover re-arms reminders
// even when no request arrives. A non-positive interval disables the loop.
func (m *SessionManager) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		log.Println("[PLANNER] tick loop disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				for _, p := range m.planners() {
					p.Tick()
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Close cancels the reminders of every session.
func (m *SessionManager) Close() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.planner.Close()
	}
}
