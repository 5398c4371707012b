package model

import "time"

// Severity classifies a notification.
type Severity string

// Notification severities.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a transient, auto-dismissing message for the user.
type Notification struct {
	CreatedAt time.Time
	ExpiresAt time.Time
	ID        string
	Message   string
	Severity  Severity
}

// Expired reports whether the notification should no longer be shown at now.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
