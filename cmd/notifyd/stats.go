package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show queue statistics",
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

			fmt.Printf("pending:    %d\n", stats.Pending)
			fmt.Printf("processing: %d\n", stats.Processing)
			fmt.Printf("sent:       %d\n", stats.Sent)
			fmt.Printf("failed:     %d\n", stats.Failed)
			fmt.Printf("total:      %d\n", stats.Total)
			return nil
		},
	}
}
