package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/campuskit/notify/pkg/delivery"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Assess queue health for dashboards and alerting",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.store.Statistics(ctx)
			if err != nil {
				return err
			}

			// All-time failure share stands in for the windowed rate when
			// no external aggregation is wired up
			var failureRate float64
			if terminal := stats.Sent + stats.Failed; terminal > 0 {
				failureRate = float64(stats.Failed) / float64(terminal) * 100
			}

			report := delivery.AssessHealth(delivery.HealthInput{
				Pending:     stats.Pending,
				Sent:        stats.Sent,
				Failed:      stats.Failed,
				FailureRate: failureRate,
			})

			fmt.Printf("status: %s\n", report.Status)
			for _, rec := range report.Recommendations {
				fmt.Printf("  - %s\n", rec)
			}
			return nil
		},
	}
}
