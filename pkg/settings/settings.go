package settings

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"
)

// Setting scope and names as stored in the settings backend
const (
	Scope = "notifications"

	NameMaxRetryAttempts  = "maxRetryAttempts"
	NameRetryDelayMinutes = "retryDelayMinutes"
	NameQueueBatchSize    = "queueBatchSize"
)

// Documented defaults applied whenever a setting is missing or malformed
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 5 * time.Minute
	DefaultBatchSize   = 50
)

// ErrSettingNotFound is returned by providers when a setting has no value
var ErrSettingNotFound = errors.New("setting not found")

// Provider supplies raw string-typed settings from an external store
type Provider interface {
	GetSetting(ctx context.Context, scope, name string) (string, error)
}

// Settings is the typed configuration the delivery pipeline runs with.
// Resolved once per batch invocation so hot loops never do string-keyed
// lookups.
type Settings struct {
	MaxAttempts int
	RetryDelay  time.Duration
	BatchSize   int
}

// Defaults returns the documented fallback configuration
func Defaults() Settings {
	return Settings{
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
		BatchSize:   DefaultBatchSize,
	}
}

// Resolve reads the delivery tunables from the provider, falling back to
// defaults for missing or malformed values. Configuration problems are never
// fatal: a broken settings store degrades to documented defaults with a
// warning, not a stopped queue.
func Resolve(ctx context.Context, provider Provider, logger *slog.Logger) Settings {
	s := Defaults()
	if provider == nil {
		return s
	}
	if logger == nil {
		logger = slog.Default()
	}

	if v, ok := lookupInt(ctx, provider, NameMaxRetryAttempts, logger); ok && v > 0 {
		s.MaxAttempts = v
	}
	if v, ok := lookupInt(ctx, provider, NameRetryDelayMinutes, logger); ok && v > 0 {
		s.RetryDelay = time.Duration(v) * time.Minute
	}
	if v, ok := lookupInt(ctx, provider, NameQueueBatchSize, logger); ok && v > 0 {
		s.BatchSize = v
	}

	return s
}

func lookupInt(ctx context.Context, provider Provider, name string, logger *slog.Logger) (int, bool) {
	raw, err := provider.GetSetting(ctx, Scope, name)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			logger.LogAttrs(ctx, slog.LevelWarn, "settings lookup failed, using default",
				slog.String("setting", name),
				slog.String("error", err.Error()),
			)
		}
		return 0, false
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelWarn, "setting is not an integer, using default",
			slog.String("setting", name),
			slog.String("value", raw),
		)
		return 0, false
	}

	return v, true
}
