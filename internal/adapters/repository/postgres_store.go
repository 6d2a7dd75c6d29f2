package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

var _ domain.Store = (*PostgresStore)(nil)

// PostgresStore is the remote backend. Every row is scoped by user_id.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type settingsRow struct {
	SwimmingEnabled      bool    `db:"swimming_enabled"`
	HolidayMode          bool    `db:"holiday_mode"`
	HolidayStart         *string `db:"holiday_start"`
	HolidayEnd           *string `db:"holiday_end"`
	NotificationsEnabled bool    `db:"notifications_enabled"`
	ReminderMinutes      int     `db:"reminder_minutes"`
}

// LoadAll derives today's completion map from the history rows dated day.
func (r *PostgresStore) LoadAll(ctx context.Context, userID string, day string) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Activities:     []domain.Activity{},
		History:        []domain.HistoryEntry{},
		Completed:      domain.CompletionMap{},
		CompletionsDay: day,
	}

	err := r.db.SelectContext(ctx, &snap.Activities, `
		SELECT id, start_time, task, phase, detail, type, enabled, is_swimming, days
		FROM activities
		WHERE user_id = $1
		ORDER BY start_time ASC, created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: load activities failed: %w", err)
	}

	err = r.db.SelectContext(ctx, &snap.History, `
		SELECT activity_id, completed_at::text AS completed_at, status
		FROM history
		WHERE user_id = $1
		ORDER BY completed_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: load history failed: %w", err)
	}
	for _, h := range snap.History {
		if h.CompletedAt == day {
			snap.Completed[h.ActivityID] = true
		}
	}

	var row settingsRow
	err = r.db.GetContext(ctx, &row, `
		SELECT swimming_enabled, holiday_mode,
		       holiday_start::text AS holiday_start, holiday_end::text AS holiday_end,
		       notifications_enabled, reminder_minutes
		FROM settings
		WHERE user_id = $1`, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("repository: load settings failed: %w", err)
	default:
		snap.Settings = &domain.Settings{
			SwimmingEnabled: row.SwimmingEnabled,
			HolidayMode:     row.HolidayMode,
			HolidayStart:    row.HolidayStart,
			HolidayEnd:      row.HolidayEnd,
		}
		snap.Notifications = &domain.NotificationSettings{
			Enabled: row.NotificationsEnabled,
			Minutes: row.ReminderMinutes,
		}
	}

	return snap, nil
}

func (r *PostgresStore) AppendHistory(ctx context.Context, userID string, entry domain.HistoryEntry) error {
	status := entry.Status
	if status == "" {
		status = domain.StatusCompleted
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (user_id, activity_id, completed_at, status)
		VALUES ($1, $2, $3::date, $4)
		ON CONFLICT (user_id, activity_id, completed_at) DO NOTHING`,
		userID, entry.ActivityID, entry.CompletedAt, status,
	)
	if err != nil {
		return fmt.Errorf("repository: append history failed: %w", err)
	}
	return nil
}

func (r *PostgresStore) RemoveHistory(ctx context.Context, userID string, activityID, day string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM history
		WHERE user_id = $1 AND activity_id = $2 AND completed_at = $3::date`,
		userID, activityID, day,
	)
	if err != nil {
		return fmt.Errorf("repository: remove history failed: %w", err)
	}
	return nil
}

// SaveCompletions is a no-op: the completion map is rebuilt from history on load.
func (r *PostgresStore) SaveCompletions(ctx context.Context, userID string, day string, completed domain.CompletionMap) error {
	return nil
}

func (r *PostgresStore) UpsertSettings(ctx context.Context, userID string, s domain.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (user_id, swimming_enabled, holiday_mode, holiday_start, holiday_end)
		VALUES ($1, $2, $3, $4::date, $5::date)
		ON CONFLICT (user_id) DO UPDATE
		SET swimming_enabled = EXCLUDED.swimming_enabled,
		    holiday_mode = EXCLUDED.holiday_mode,
		    holiday_start = EXCLUDED.holiday_start,
		    holiday_end = EXCLUDED.holiday_end,
		    updated_at = NOW()`,
		userID, s.SwimmingEnabled, s.HolidayMode, s.HolidayStart, s.HolidayEnd,
	)
	if err != nil {
		return fmt.Errorf("repository: upsert settings failed: %w", err)
	}
	return nil
}

func (r *PostgresStore) SaveNotificationSettings(ctx context.Context, userID string, n domain.NotificationSettings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (user_id, notifications_enabled, reminder_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET notifications_enabled = EXCLUDED.notifications_enabled,
		    reminder_minutes = EXCLUDED.reminder_minutes,
		    updated_at = NOW()`,
		userID, n.Enabled, n.Minutes,
	)
	if err != nil {
		return fmt.Errorf("repository: save notification settings failed: %w", err)
	}
	return nil
}

func (r *PostgresStore) InsertActivity(ctx context.Context, userID string, a domain.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (user_id, id, start_time, task, phase, detail, type, enabled, is_swimming, days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, id) DO UPDATE
		SET start_time = EXCLUDED.start_time,
		    task = EXCLUDED.task,
		    phase = EXCLUDED.phase,
		    detail = EXCLUDED.detail,
		    type = EXCLUDED.type,
		    enabled = EXCLUDED.enabled,
		    is_swimming = EXCLUDED.is_swimming,
		    days = EXCLUDED.days`,
		userID, a.ID, a.Time, a.Task, string(a.Phase), a.Detail, a.Type, a.Enabled, a.IsSwimming, string(a.Days),
	)
	if err != nil {
		return fmt.Errorf("repository: insert activity failed: %w", err)
	}
	return nil
}

func (r *PostgresStore) DeleteActivity(ctx context.Context, userID string, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("repository: delete activity failed: %w", err)
	}
	return nil
}

func (r *PostgresStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
