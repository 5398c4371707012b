package controller

import (
	"time"

	"github.com/Veraticus/trendscope/internal/upload"
)

// Option is a functional option for configuring the controller.
type Option func(*Controller)

// WithDecoder sets the preview decoder.
func WithDecoder(d Decoder) Option {
	return func(c *Controller) {
		if d != nil {
			c.decoder = d
		}
	}
}

// WithSurface sets the initial surface.
func WithSurface(s Surface) Option {
	return func(c *Controller) {
		if s != nil {
			c.surface = s
		}
	}
}

// WithRules sets the file acceptance rules.
func WithRules(r upload.Rules) Option {
	return func(c *Controller) {
		if len(r.AllowedTypes) > 0 && r.MaxBytes > 0 {
			c.rules = r
		}
	}
}

// WithRequestTimeout bounds each prediction request.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}

// WithHealthCheck configures the backend ping.
func WithHealthCheck(baseURL string, timeout time.Duration, attempts int) Option {
	return func(c *Controller) {
		c.baseURL = baseURL
		if timeout > 0 {
			c.healthTimeout = timeout
		}
		if attempts > 0 {
			c.healthAttempts = attempts
		}
	}
}

// WithNotificationTTL sets how long notifications stay visible.
func WithNotificationTTL(d time.Duration) Option {
	return func(c *Controller) {
		c.notifyTTL = d
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}
