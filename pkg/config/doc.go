// Package config loads application configuration from environment variables
// into tagged structs, wrapping github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for parsing.
//
// Each unique struct type is parsed once per process and cached, so every
// component can call Load for its own slice of the environment without
// re-reading anything:
//
//	type queueConfig struct {
//		Concurrency int `env:"NOTIFY_CONCURRENCY" envDefault:"4"`
//	}
//
//	var cfg queueConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// ResetCache exists for tests that mutate the environment between loads.
package config
