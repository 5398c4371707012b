// Package config loads and validates trendscope configuration.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/trendscope/internal/common"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is the prediction API used when no override is configured.
// Release builds set it with -ldflags "-X github.com/Veraticus/trendscope/internal/config.DefaultAPIBaseURL=...".
var DefaultAPIBaseURL = "http://localhost:8000"

// Config is the full application configuration.
type Config struct {
	API           APIConfig           `mapstructure:"api"`
	Upload        UploadConfig        `mapstructure:"upload"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	UI            UIConfig            `mapstructure:"ui"`
}

// APIConfig configures the prediction API client.
type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	UserAgent      string        `mapstructure:"user_agent" default:"trendscope"`
	Timeout        time.Duration `mapstructure:"timeout" default:"30s" validate:"gt=0"`
	HealthTimeout  time.Duration `mapstructure:"health_timeout" default:"5s" validate:"gt=0"`
	HealthAttempts int           `mapstructure:"health_attempts" default:"1" validate:"gte=1,lte=10"`
}

// UploadConfig limits which files may be selected.
type UploadConfig struct {
	AllowedTypes []string `mapstructure:"allowed_types" default:"[\"image/png\",\"image/jpeg\",\"image/jpg\"]" validate:"min=1,dive,required"`
	MaxBytes     int64    `mapstructure:"max_bytes" default:"10485760" validate:"gt=0"`
}

// NotificationsConfig controls transient user messages.
type NotificationsConfig struct {
	TTL time.Duration `mapstructure:"ttl" default:"5s" validate:"gt=0"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" default:"info" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" default:"console" validate:"oneof=console json"`
	File   string `mapstructure:"file" default:"$HOME/.local/state/trendscope/trendscope.log"`
}

// UIConfig controls the interactive front end.
type UIConfig struct {
	Theme string `mapstructure:"theme" default:"default" validate:"oneof=default catppuccin"`
}

var validate = validator.New()

// Default returns a configuration with every default applied.
func Default() Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic(fmt.Sprintf("invalid config defaults: %v", err))
	}
	cfg.API.BaseURL = DefaultAPIBaseURL
	return cfg
}

// SetDefaults registers every configuration key with v so that environment
// variables are seen by Unmarshal even when no config file sets the key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.user_agent", d.API.UserAgent)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.health_timeout", d.API.HealthTimeout)
	v.SetDefault("api.health_attempts", d.API.HealthAttempts)
	v.SetDefault("upload.allowed_types", d.Upload.AllowedTypes)
	v.SetDefault("upload.max_bytes", d.Upload.MaxBytes)
	v.SetDefault("notifications.ttl", d.Notifications.TTL)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("ui.theme", d.UI.Theme)
}

// Load builds a Config from v, filling unset values with defaults and validating the result.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if v != nil {
		if err := v.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
		}
	}

	if err := defaults.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.Logging.File = ExpandPath(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, describe(fe))
	}

	return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}
