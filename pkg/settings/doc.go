// Package settings resolves the delivery pipeline's tunables (max retry
// attempts, base retry delay, batch size) from a string-typed external
// settings store into a typed Settings struct.
//
// Resolution happens once per batch invocation. Missing or malformed values
// fall back to documented defaults and are never fatal; a broken settings
// backend degrades the queue to defaults rather than stopping it.
//
// Two providers ship with the package: StaticProvider (map-backed, for tests
// and embedded use) and EnvProvider (environment variables with optional
// .env loading).
package settings
