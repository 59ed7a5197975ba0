package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuskit/notify/pkg/processor"
)

func processCmd() *cobra.Command {
	var (
		limit  int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run one delivery sweep over the notification queue",
		Long: `Selects eligible pending notifications, resolves each recipient's
channel preferences, and delivers through the email and/or push adapters.
Intended to be invoked periodically from cron; overlapping runs are safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var opts []processor.ProcessOption
			if dryRun {
				opts = append(opts, processor.WithDryRun())
			}

			report, err := a.proc.ProcessBatch(ctx, limit, opts...)
			if err != nil {
				return err
			}

			fmt.Printf("processed:  %d\n", report.Processed)
			fmt.Printf("email sent: %d\n", report.EmailSent)
			fmt.Printf("push sent:  %d\n", report.PushSent)
			fmt.Printf("skipped:    %d\n", report.Skipped)
			fmt.Printf("failed:     %d\n", report.Failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "max records this sweep (0 = use queueBatchSize setting)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report eligibility without delivering or mutating")

	return cmd
}
