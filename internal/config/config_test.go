package config

import (
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/trendscope/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5*time.Second, cfg.API.HealthTimeout)
	assert.Equal(t, 1, cfg.API.HealthAttempts)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, []string{"image/png", "image/jpeg", "image/jpg"}, cfg.Upload.AllowedTypes)
	assert.Equal(t, 5*time.Second, cfg.Notifications.TTL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "default", cfg.UI.Theme)
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("api.base_url", "https://trend.example.com/")
	v.Set("api.timeout", "45s")
	v.Set("notifications.ttl", "2s")
	v.Set("logging.level", "debug")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "https://trend.example.com", cfg.API.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Notifications.TTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.API.HealthTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   any
		wantMsg string
	}{
		{name: "bad url", key: "api.base_url", value: "not a url", wantMsg: "BaseURL must be a valid URL"},
		{name: "bad level", key: "logging.level", value: "loud", wantMsg: "Level must be one of: debug, info, warn, error"},
		{name: "bad theme", key: "ui.theme", value: "neon", wantMsg: "Theme must be one of"},
		{name: "too many attempts", key: "api.health_attempts", value: 50, wantMsg: "HealthAttempts must be at most 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultAPIBaseURL, cfg.API.BaseURL)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("TRENDSCOPE_API_BASE_URL", "https://env.example.com")
	t.Setenv("TRENDSCOPE_API_HEALTH_ATTEMPTS", "3")

	v := viper.New()
	v.SetEnvPrefix("TRENDSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.HealthAttempts)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
}
