package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuskit/notify/pkg/pg"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			pool, err := pg.Connect(ctx, cfg.DB)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			if err := pg.Migrate(ctx, pool, cfg.DB, logger); err != nil {
				return err
			}

			fmt.Println("migrations applied")
			return nil
		},
	}
}
