// Package pg bootstraps the PostgreSQL layer shared by the notification
// queue, preference and device-token storages: pooled connectivity with
// startup retries (pgx/v5), schema migrations (goose/v3), a health check
// closure, and a couple of error classification helpers.
//
// Config is populated from environment variables. Typical startup:
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    return err
//	}
package pg
