package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func purgeCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete sent and failed notifications past the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			purged, err := a.store.PurgeOld(ctx, time.Duration(days)*24*time.Hour)
			if err != nil {
				return err
			}

			fmt.Printf("purged %d notification(s) older than %d day(s)\n", purged, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "retention window in days")

	return cmd
}
