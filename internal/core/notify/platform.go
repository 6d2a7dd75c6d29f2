package notify

import (
	"context"
	"errors"
	"time"
)

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

var (
	ErrInvalidPermission     = errors.New("notify: invalid permission (must be default, granted or denied)")
	ErrPermissionUnsupported = errors.New("notify: platform does not accept permission updates")
)

func ParsePermission(v string) (Permission, error) {
	switch p := Permission(v); p {
	case PermissionDefault, PermissionGranted, PermissionDenied:
		return p, nil
	}
	return "", ErrInvalidPermission
}

const (
	DefaultIcon = "/icon-192.png"
)

var DefaultVibrate = []int{200, 100, 200}

// Notification is the reminder payload handed to a platform. Tag carries the
// activity id so a repeat delivery replaces the previous one.
type Notification struct {
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Icon       string    `json:"icon"`
	Badge      string    `json:"badge"`
	Tag        string    `json:"tag"`
	Renotify   bool      `json:"renotify"`
	Vibrate    []int     `json:"vibrate"`
	ActivityID string    `json:"activity_id"`
	FireAt     time.Time `json:"fire_at"`
}

// Platform is the surface reminders are delivered through.
type Platform interface {
	Permission(ctx context.Context) (Permission, error)
	// RequestPermission asks for permission and returns the resulting state.
	// A previous denial is sticky.
	RequestPermission(ctx context.Context) (Permission, error)
	Display(ctx context.Context, n Notification) error
}

// PermissionSetter is implemented by platforms whose permission state is
// decided by a client and reported back.
type PermissionSetter interface {
	SetPermission(ctx context.Context, p Permission) error
}
