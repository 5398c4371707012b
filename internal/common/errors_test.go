package common

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		fallback string
		want     string
	}{
		{
			name:     "user error",
			err:      NewUserError("Backend is down", errors.New("dial tcp")),
			fallback: "generic",
			want:     "Backend is down",
		},
		{
			name:     "validation error",
			err:      NewValidationError("y_max", "Y-axis Max must be greater than Y-axis Min", nil),
			fallback: "generic",
			want:     "Y-axis Max must be greater than Y-axis Min",
		},
		{
			name:     "wrapped server error with detail",
			err:      fmt.Errorf("predict: %w", &ServerError{StatusCode: 422, Detail: "Chart axis values invalid"}),
			fallback: "generic",
			want:     "Chart axis values invalid",
		},
		{
			name:     "server error without detail",
			err:      &ServerError{StatusCode: 500},
			fallback: "Prediction failed",
			want:     "Prediction failed",
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			fallback: "generic",
			want:     "generic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, tt.fallback))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "deadline", err: fmt.Errorf("ping: %w", context.DeadlineExceeded), want: true},
		{name: "server 503", err: &ServerError{StatusCode: 503}, want: true},
		{name: "server 404", err: &ServerError{StatusCode: 404}, want: false},
		{name: "net error", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: true},
		{name: "plain", err: errors.New("x"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	err := NewValidationError("file", "Please select a valid image file (PNG or JPG)", ErrUnsupportedImage)

	assert.ErrorIs(t, err, ErrUnsupportedImage)
	assert.Equal(t, "file: Please select a valid image file (PNG or JPG)", err.Error())
}
