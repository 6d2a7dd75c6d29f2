package notifier

import (
	"context"
	"log"
	"sync"

	"github.com/comitanigiacomo/kanso-planner/internal/core/notify"
)

const maxRecent = 50

var (
	_ notify.Platform         = (*Log)(nil)
	_ notify.PermissionSetter = (*Log)(nil)
)

// Log delivers reminders to the process log. Permission lives in memory only.
type Log struct {
	userID string

	mu         sync.Mutex
	permission notify.Permission
	recent     []notify.Notification
}

func NewLog(userID string) *Log {
	return &Log{userID: userID, permission: notify.PermissionDefault}
}

func (l *Log) Permission(_ context.Context) (notify.Permission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.permission, nil
}

func (l *Log) RequestPermission(_ context.Context) (notify.Permission, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.permission != notify.PermissionDenied {
		l.permission = notify.PermissionGranted
	}
	return l.permission, nil
}

func (l *Log) SetPermission(_ context.Context, p notify.Permission) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.permission = p
	return nil
}

func (l *Log) Display(_ context.Context, n notify.Notification) error {
	l.mu.Lock()
	// A tag identifies one reminder: a new delivery replaces the old one.
	kept := l.recent[:0]
	for _, prev := range l.recent {
		if n.Tag == "" || prev.Tag != n.Tag {
			kept = append(kept, prev)
		}
	}
	l.recent = append(kept, n)
	if len(l.recent) > maxRecent {
		l.recent = l.recent[len(l.recent)-maxRecent:]
	}
	l.mu.Unlock()

	log.Printf("[NOTIFY] user=%s tag=%s %s: %s", l.userID, n.Tag, n.Title, n.Body)
	return nil
}

// Recent returns the latest delivered notifications, oldest first.
func (l *Log) Recent() []notify.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]notify.Notification(nil), l.recent...)
}
