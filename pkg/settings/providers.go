package settings

import (
	"context"
	"strconv"
	"sync"

	"github.com/campuskit/notify/pkg/config"
)

// StaticProvider serves settings from a fixed map, keyed by scope/name.
// Useful for tests and single-binary deployments without a settings store.
type StaticProvider struct {
	mu     sync.RWMutex
	values map[[2]string]string
}

// NewStaticProvider creates a provider over the given scope->name->value map
func NewStaticProvider(values map[string]map[string]string) *StaticProvider {
	p := &StaticProvider{values: make(map[[2]string]string)}
	for scope, names := range values {
		for name, value := range names {
			p.values[[2]string{scope, name}] = value
		}
	}
	return p
}

// GetSetting implements Provider
func (p *StaticProvider) GetSetting(ctx context.Context, scope, name string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	value, ok := p.values[[2]string{scope, name}]
	if !ok {
		return "", ErrSettingNotFound
	}
	return value, nil
}

// SetSetting updates a value in place. Used by tests to simulate an
// operator changing tunables between batch runs.
func (p *StaticProvider) SetSetting(scope, name, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[[2]string{scope, name}] = value
}

// envSettings maps the delivery tunables onto environment variables
type envSettings struct {
	MaxRetryAttempts  int `env:"NOTIFY_MAX_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelayMinutes int `env:"NOTIFY_RETRY_DELAY_MINUTES" envDefault:"5"`
	QueueBatchSize    int `env:"NOTIFY_QUEUE_BATCH_SIZE" envDefault:"50"`
}

// EnvProvider reads settings from environment variables, loading a .env file
// once if present. Parsed a single time at construction; the environment is
// not re-read per lookup.
type EnvProvider struct {
	parsed envSettings
}

// NewEnvProvider creates an environment-backed settings provider
func NewEnvProvider() (*EnvProvider, error) {
	var parsed envSettings
	if err := config.Load(&parsed); err != nil {
		return nil, err
	}

	return &EnvProvider{parsed: parsed}, nil
}

// GetSetting implements Provider
func (p *EnvProvider) GetSetting(ctx context.Context, scope, name string) (string, error) {
	if scope != Scope {
		return "", ErrSettingNotFound
	}

	switch name {
	case NameMaxRetryAttempts:
		return strconv.Itoa(p.parsed.MaxRetryAttempts), nil
	case NameRetryDelayMinutes:
		return strconv.Itoa(p.parsed.RetryDelayMinutes), nil
	case NameQueueBatchSize:
		return strconv.Itoa(p.parsed.QueueBatchSize), nil
	}

	return "", ErrSettingNotFound
}
