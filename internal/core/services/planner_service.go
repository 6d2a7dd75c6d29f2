package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/notify"
	"github.com/comitanigiacomo/kanso-planner/internal/core/schedule"
	"github.com/comitanigiacomo/kanso-planner/internal/core/workers"
)

const (
	OpAppendHistory    = "append_history"
	OpRemoveHistory    = "remove_history"
	OpSaveCompletions  = "save_completions"
	OpUpsertSettings   = "upsert_settings"
	OpSaveNotification = "save_notification_settings"
	OpInsertActivity   = "insert_activity"
	OpDeleteActivity   = "delete_activity"
	OpPublishEvent     = "publish_completion"
)

type Syncer interface {
	Enqueue(job workers.SyncJob) error
}

type Reminders interface {
	Schedule(activities []domain.Activity, offsetMinutes int) int
	Cancel()
	Pending() []notify.Armed
	RequestPermission(ctx context.Context) bool
	Permission(ctx context.Context) notify.Permission
	SetPermission(ctx context.Context, p notify.Permission) error
}

type EventPublisher interface {
	PublishCompletion(ctx context.Context, event domain.CompletionEvent) error
}

type PlannerDeps struct {
	UserID    string
	Store     domain.Store
	Syncer    Syncer
	Reminders Reminders
	Events    EventPublisher
	// EventQueue carries completion events so a slow broker never delays
	// store writes. Nil falls back to Syncer.
	EventQueue Syncer
	Location   *time.Location
	Clock      func() time.Time
	// Templates defaults to schedule.For.
	Templates func(time.Weekday) []domain.Activity
}

// Planner owns one user's in-memory day. Mutations apply synchronously and
// mirror to the store through the syncer without waiting for the write.
type Planner struct {
	userID     string
	store      domain.Store
	syncer     Syncer
	eventQueue Syncer
	reminders  Reminders
	events     EventPublisher
	loc        *time.Location
	clock      func() time.Time
	templates  func(time.Weekday) []domain.Activity

	mu            sync.Mutex
	day           string
	loading       bool
	activities    []domain.Activity
	custom        []domain.Activity
	completed     domain.CompletionMap
	history       []domain.HistoryEntry
	settings      domain.Settings
	notifications domain.NotificationSettings
}

func NewPlanner(deps PlannerDeps) *Planner {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.Templates == nil {
		deps.Templates = schedule.For
	}
	p := &Planner{
		userID:        deps.UserID,
		store:         deps.Store,
		syncer:        deps.Syncer,
		eventQueue:    deps.EventQueue,
		reminders:     deps.Reminders,
		events:        deps.Events,
		loc:           deps.Location,
		clock:         deps.Clock,
		templates:     deps.Templates,
		loading:       true,
		completed:     domain.CompletionMap{},
		history:       []domain.HistoryEntry{},
		settings:      domain.DefaultSettings(),
		notifications: domain.DefaultNotificationSettings(),
	}
	p.ensureDayLocked()
	return p
}

// Initialize loads persisted state. On failure the defaults stay in place and
// the error is returned for logging; loading always ends.
func (p *Planner) Initialize(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.ensureDayLocked()
	day := p.day
	p.mu.Unlock()

	snap, err := p.store.LoadAll(ctx, p.userID, day)

	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() {
		p.loading = false
		p.rearmLocked()
	}()

	if err != nil {
		log.Printf("[PLANNER] load failed for user %s: %v", p.userID, err)
		return err
	}
	p.applySnapshotLocked(snap, day)
	return nil
}

func (p *Planner) applySnapshotLocked(snap *domain.Snapshot, day string) {
	if snap == nil {
		return
	}

	now := p.ensureDayLocked()
	p.custom = append([]domain.Activity(nil), snap.Activities...)
	p.rebuildLocked(now)

	p.completed = domain.CompletionMap{}
	if snap.CompletionsDay == day && p.day == day {
		for id, done := range snap.Completed {
			if p.indexLocked(id) >= 0 {
				p.completed[id] = done
			}
		}
	}

	if snap.History != nil {
		p.history = append([]domain.HistoryEntry(nil), snap.History...)
	}
	if snap.Settings != nil {
		p.settings = *snap.Settings
	}
	if snap.Notifications != nil {
		p.notifications = *snap.Notifications
	}
}

func (p *Planner) now() time.Time {
	return p.clock().In(p.loc)
}

// ensureDayLocked rolls the planner over when the calendar day changed:
// today's activities are rebuilt and the completion map starts empty.
func (p *Planner) ensureDayLocked() time.Time {
	now := p.now()
	key := domain.DayKey(now)
	if key == p.day {
		return now
	}

	rolled := p.day != ""
	p.day = key
	p.completed = domain.CompletionMap{}
	p.rebuildLocked(now)

	if rolled {
		log.Printf("[PLANNER] day rolled over to %s for user %s", key, p.userID)
		p.rearmLocked()
	}
	return now
}

func (p *Planner) rebuildLocked(now time.Time) {
	weekday := now.Weekday()
	list := p.templates(weekday)
	for _, a := range p.custom {
		if schedule.AppliesOn(a.Days, weekday) {
			list = append(list, a)
		}
	}
	p.activities = list
}

// Tick lets a background loop drive day rollover between requests.
func (p *Planner) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureDayLocked()
}

func (p *Planner) indexLocked(id string) int {
	for i, a := range p.activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (p *Planner) enqueueLocked(op string, apply func(ctx context.Context) error) {
	enqueueOn(p.syncer, workers.SyncJob{UserID: p.userID, Op: op, Apply: apply})
}

func (p *Planner) enqueueEventLocked(apply func(ctx context.Context) error) {
	queue := p.eventQueue
	if queue == nil {
		queue = p.syncer
	}
	enqueueOn(queue, workers.SyncJob{UserID: p.userID, Op: OpPublishEvent, Apply: apply})
}

func enqueueOn(queue Syncer, job workers.SyncJob) {
	if queue == nil {
		return
	}
	// The worker logs and reports drops itself.
	_ = queue.Enqueue(job)
}

// ToggleCompleted flips the done flag of id for today and returns the new value.
func (p *Planner) ToggleCompleted(id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.ensureDayLocked()
	if p.indexLocked(id) < 0 {
		return false, domain.ErrActivityNotFound
	}

	userID, day := p.userID, p.day
	done := !p.completed[id]
	p.completed[id] = done

	if done {
		entry := domain.NewHistoryEntry(id, day)
		p.history = append([]domain.HistoryEntry{entry}, p.history...)
		p.enqueueLocked(OpAppendHistory, func(ctx context.Context) error {
			return p.store.AppendHistory(ctx, userID, entry)
		})
	} else {
		if i := domain.IndexOfEntry(p.history, id, day); i >= 0 {
			p.history = append(p.history[:i:i], p.history[i+1:]...)
		}
		p.enqueueLocked(OpRemoveHistory, func(ctx context.Context) error {
			return p.store.RemoveHistory(ctx, userID, id, day)
		})
	}

	completed := p.completed.Clone()
	p.enqueueLocked(OpSaveCompletions, func(ctx context.Context) error {
		return p.store.SaveCompletions(ctx, userID, day, completed)
	})

	if p.events != nil {
		event := domain.CompletionEvent{UserID: userID, ActivityID: id, Date: day, Completed: done, OccurredAt: now.UTC()}
		p.enqueueEventLocked(func(ctx context.Context) error {
			return p.events.PublishCompletion(ctx, event)
		})
	}

	return done, nil
}

// UpdateSettings merges patch into the current settings. The patch is
// expected to be validated by the caller.
func (p *Planner) UpdateSettings(patch domain.SettingsPatch) domain.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ensureDayLocked()
	p.settings = p.settings.Merge(patch)

	userID, settings := p.userID, p.settings
	p.enqueueLocked(OpUpsertSettings, func(ctx context.Context) error {
		return p.store.UpsertSettings(ctx, userID, settings)
	})
	p.rearmLocked()
	return settings
}

// AddActivity stores a user-created activity under a fresh custom id.
func (p *Planner) AddActivity(a domain.Activity) domain.Activity {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.ensureDayLocked()
	a = a.Normalize()
	a.ID = domain.NewCustomActivityID()
	a.Enabled = true

	p.custom = append(p.custom, a)
	if schedule.AppliesOn(a.Days, now.Weekday()) {
		p.activities = append(p.activities, a)
	}

	userID := p.userID
	p.enqueueLocked(OpInsertActivity, func(ctx context.Context) error {
		return p.store.InsertActivity(ctx, userID, a)
	})
	p.rearmLocked()
	return a
}

// DeleteActivity removes id from today's list. Custom activities are also
// removed from storage; template activities come back the next day.
func (p *Planner) DeleteActivity(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ensureDayLocked()
	i := p.indexLocked(id)
	if i < 0 {
		return domain.ErrActivityNotFound
	}
	p.activities = append(p.activities[:i:i], p.activities[i+1:]...)
	delete(p.completed, id)

	for j, a := range p.custom {
		if a.ID == id {
			p.custom = append(p.custom[:j:j], p.custom[j+1:]...)
			break
		}
	}

	userID := p.userID
	p.enqueueLocked(OpDeleteActivity, func(ctx context.Context) error {
		return p.store.DeleteActivity(ctx, userID, id)
	})
	p.rearmLocked()
	return nil
}

func (p *Planner) visibleLocked() []domain.Activity {
	out := make([]domain.Activity, 0, len(p.activities))
	for _, a := range p.activities {
		if !a.Enabled {
			continue
		}
		if a.IsSwimming && !p.settings.SwimmingEnabled {
			continue
		}
		out = append(out, a)
	}
	return out
}

// VisibleActivities is today's list without disabled items and, when
// swimming is off, without swimming items.
func (p *Planner) VisibleActivities() []domain.Activity {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureDayLocked()
	return p.visibleLocked()
}

func (p *Planner) AllActivities() []domain.Activity {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureDayLocked()
	return append([]domain.Activity(nil), p.activities...)
}

func (p *Planner) Completed() domain.CompletionMap {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureDayLocked()
	return p.completed.Clone()
}

func (p *Planner) History() []domain.HistoryEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.HistoryEntry(nil), p.history...)
}

func (p *Planner) Settings() domain.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings
}

func (p *Planner) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Today returns the current day key.
func (p *Planner) Today() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureDayLocked()
	return p.day
}

func (p *Planner) statsInputLocked(now time.Time) StatsInput {
	return StatsInput{
		Today:     now,
		History:   append([]domain.HistoryEntry(nil), p.history...),
		Completed: p.completed.Clone(),
		Visible:   p.visibleLocked(),
		All:       append([]domain.Activity(nil), p.activities...),
		Settings:  p.settings,
	}
}

// StatsInput snapshots the state the stats calculators read.
func (p *Planner) StatsInput() StatsInput {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.ensureDayLocked()
	return p.statsInputLocked(now)
}

func (p *Planner) Stats() domain.Stats {
	return Summarize(p.StatsInput())
}

func (p *Planner) Workouts() []domain.Workout {
	return schedule.Workouts(p.Settings().SwimmingEnabled)
}

func (p *Planner) NotificationSettings() domain.NotificationSettings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notifications
}

// EnableNotifications requests permission and, when granted, arms reminders
// for the visible activities. A denial returns false and stores the
// notifications as disabled.
func (p *Planner) EnableNotifications(ctx context.Context) bool {
	granted := p.reminders != nil && p.reminders.RequestPermission(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureDayLocked()
	p.notifications.Enabled = granted
	p.saveNotificationsLocked()
	p.rearmLocked()
	return granted
}

// DisableNotifications stops future reminders. Permission is left as is.
func (p *Planner) DisableNotifications() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications.Enabled = false
	p.saveNotificationsLocked()
	p.rearmLocked()
}

func (p *Planner) SetReminderMinutes(minutes int) error {
	if err := domain.ValidateReminderMinutes(minutes); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.ensureDayLocked()
	p.notifications.Minutes = minutes
	p.saveNotificationsLocked()
	p.rearmLocked()
	return nil
}

func (p *Planner) SetNotificationPermission(ctx context.Context, perm notify.Permission) error {
	if p.reminders == nil {
		return notify.ErrPermissionUnsupported
	}
	return p.reminders.SetPermission(ctx, perm)
}

func (p *Planner) NotificationPermission(ctx context.Context) notify.Permission {
	if p.reminders == nil {
		return notify.PermissionDefault
	}
	return p.reminders.Permission(ctx)
}

func (p *Planner) PendingReminders() []notify.Armed {
	if p.reminders == nil {
		return []notify.Armed{}
	}
	return p.reminders.Pending()
}

func (p *Planner) saveNotificationsLocked() {
	userID, settings := p.userID, p.notifications
	p.enqueueLocked(OpSaveNotification, func(ctx context.Context) error {
		return p.store.SaveNotificationSettings(ctx, userID, settings)
	})
}

func (p *Planner) rearmLocked() {
	if p.reminders == nil {
		return
	}
	if p.loading || !p.notifications.Enabled {
		p.reminders.Cancel()
		return
	}
	p.reminders.Schedule(p.visibleLocked(), p.notifications.Minutes)
}

// Close tears down every armed reminder.
func (p *Planner) Close() {
	if p.reminders != nil {
		p.reminders.Cancel()
	}
}
