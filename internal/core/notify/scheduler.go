package notify

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

const displayTimeout = 5 * time.Second

type Options struct {
	Location *time.Location
	Clock    func() time.Time
	// OnFire runs after a reminder was handed to the platform.
	OnFire func(n Notification)
	// OnArm reports how many timers the last Schedule call armed.
	OnArm func(armed int)
}

// Armed describes a pending reminder.
type Armed struct {
	ActivityID string    `json:"activity_id"`
	Task       string    `json:"task"`
	FireAt     time.Time `json:"fire_at"`
}

type entry struct {
	Armed
	offset int
	timer  *time.Timer
}

// Scheduler arms one-shot reminder timers ahead of activities. It owns its
// timers exclusively and tears them all down before re-arming.
type Scheduler struct {
	platform Platform
	opts     Options

	mu    sync.Mutex
	armed map[string]*entry
}

func NewScheduler(platform Platform, opts Options) *Scheduler {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Scheduler{
		platform: platform,
		opts:     opts,
		armed:    make(map[string]*entry),
	}
}

// Schedule cancels every armed timer, then arms one per activity whose
// reminder time today is strictly in the future. It returns the number armed.
func (s *Scheduler) Schedule(activities []domain.Activity, offsetMinutes int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()

	now := s.opts.Clock().In(s.opts.Location)
	y, m, d := now.Date()
	offset := time.Duration(offsetMinutes) * time.Minute

	for _, a := range activities {
		hour, minute, err := a.ParseClock()
		if err != nil {
			log.Printf("[NOTIFY] skipping %s: %v", a.ID, err)
			continue
		}

		fireAt := time.Date(y, m, d, hour, minute, 0, 0, s.opts.Location).Add(-offset)
		if !fireAt.After(now) {
			continue
		}

		if prev, ok := s.armed[a.ID]; ok {
			prev.timer.Stop()
		}
		e := &entry{
			Armed:  Armed{ActivityID: a.ID, Task: a.Task, FireAt: fireAt},
			offset: offsetMinutes,
		}
		e.timer = time.AfterFunc(fireAt.Sub(now), func() { s.fire(e) })
		s.armed[a.ID] = e
	}

	n := len(s.armed)
	if s.opts.OnArm != nil {
		s.opts.OnArm(n)
	}
	return n
}

// Cancel stops every armed timer. No reminder is displayed after it returns.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	if s.opts.OnArm != nil {
		s.opts.OnArm(0)
	}
}

func (s *Scheduler) cancelLocked() {
	for id, e := range s.armed {
		e.timer.Stop()
		delete(s.armed, id)
	}
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.armed)
}

// Pending lists armed reminders ordered by fire time.
func (s *Scheduler) Pending() []Armed {
	s.mu.Lock()
	out := make([]Armed, 0, len(s.armed))
	for _, e := range s.armed {
		out = append(out, e.Armed)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].FireAt.Before(out[j].FireAt)
	})
	return out
}

// RequestPermission reports whether reminders may be displayed. A denial or a
// platform error yields false.
func (s *Scheduler) RequestPermission(ctx context.Context) bool {
	p, err := s.platform.RequestPermission(ctx)
	if err != nil {
		log.Printf("[NOTIFY] permission request failed: %v", err)
		return false
	}
	return p == PermissionGranted
}

func (s *Scheduler) Permission(ctx context.Context) Permission {
	p, err := s.platform.Permission(ctx)
	if err != nil {
		log.Printf("[NOTIFY] permission query failed: %v", err)
		return PermissionDefault
	}
	return p
}

func (s *Scheduler) SetPermission(ctx context.Context, p Permission) error {
	setter, ok := s.platform.(PermissionSetter)
	if !ok {
		return ErrPermissionUnsupported
	}
	return setter.SetPermission(ctx, p)
}

func (s *Scheduler) fire(e *entry) {
	s.mu.Lock()
	if s.armed[e.ActivityID] != e {
		s.mu.Unlock()
		return
	}
	delete(s.armed, e.ActivityID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), displayTimeout)
	defer cancel()

	if p, err := s.platform.Permission(ctx); err != nil || p != PermissionGranted {
		return
	}

	n := Notification{
		Title:      "🔔 " + e.Task,
		Body:       fmt.Sprintf("In %d minutes!", e.offset),
		Icon:       DefaultIcon,
		Badge:      DefaultIcon,
		Tag:        e.ActivityID,
		Renotify:   true,
		Vibrate:    append([]int(nil), DefaultVibrate...),
		ActivityID: e.ActivityID,
		FireAt:     e.FireAt,
	}

	if err := s.platform.Display(ctx, n); err != nil {
		log.Printf("[NOTIFY] display failed for %s: %v", e.ActivityID, err)
		return
	}
	if s.opts.OnFire != nil {
		s.opts.OnFire(n)
	}
}
