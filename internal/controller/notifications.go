package controller

import (
	"sync"
	"time"

	"github.com/Veraticus/trendscope/internal/model"
	"github.com/google/uuid"
)

// DefaultNotificationTTL is how long a notification stays visible.
const DefaultNotificationTTL = 5 * time.Second

// notificationCenter keeps the stack of live notifications.
type notificationCenter struct {
	now   func() time.Time
	items []model.Notification
	ttl   time.Duration
	mu    sync.Mutex
}

func newNotificationCenter(ttl time.Duration, now func() time.Time) *notificationCenter {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &notificationCenter{ttl: ttl, now: now}
}

// push adds a notification on top of the stack.
func (nc *notificationCenter) push(message string, severity model.Severity) model.Notification {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	now := nc.now()
	n := model.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(nc.ttl),
	}
	nc.items = append(nc.pruneLocked(now), n)
	return n
}

// active returns unexpired notifications, oldest first.
func (nc *notificationCenter) active() []model.Notification {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	nc.items = nc.pruneLocked(nc.now())
	out := make([]model.Notification, len(nc.items))
	copy(out, nc.items)
	return out
}

// dismiss removes a notification before it expires.
func (nc *notificationCenter) dismiss(id string) bool {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	for i, n := range nc.items {
		if n.ID == id {
			nc.items = append(nc.items[:i], nc.items[i+1:]...)
			return true
		}
	}
	return false
}

func (nc *notificationCenter) pruneLocked(now time.Time) []model.Notification {
	kept := nc.items[:0]
	for _, n := range nc.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	return kept
}
