package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.RWMutex
	cache  = make(map[string]any)
	loaded sync.Once
)

// LoadEnv loads environment variables from the given .env files before any
// struct is parsed. Later files override earlier ones. Calling it is
// optional; Load falls back to the default .env in the working directory.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	// godotenv does not override already-set variables, so precedence is
	// established by loading in reverse order
	for i := len(paths) - 1; i >= 0; i-- {
		if err := godotenv.Load(paths[i]); err != nil {
			return fmt.Errorf("failed to load env file %q: %w", paths[i], err)
		}
	}
	return nil
}

// Load parses environment variables into the provided configuration struct
// based on its `env` field tags. Each unique struct type is parsed once per
// process; subsequent calls return the cached copy.
//
//	type dbConfig struct {
//		ConnURL string `env:"PG_CONN_URL,required"`
//	}
//
//	var cfg dbConfig
//	if err := config.Load(&cfg); err != nil { ... }
func Load[T any](v *T) error {
	loaded.Do(func() {
		// The default .env file might not exist and that's ok
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeName[T]()

	mu.RLock()
	cached, ok := cache[key]
	mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	mu.Lock()
	// Store a copy so callers cannot mutate the cached value
	cache[key] = *v
	mu.Unlock()

	return nil
}

// MustLoad is Load that panics on failure. Intended for main wiring where a
// broken environment should stop the process.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}

// ResetCache clears every cached configuration. Tests use it to reparse the
// environment after changing variables.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()

	cache = make(map[string]any)
}

func typeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.PkgPath() + "." + t.Name()
}
