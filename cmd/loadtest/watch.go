package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll and print queue depth and task counts until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()
		for {
			depth, err := queues.Depth(ctx)
			if err != nil {
				return fmt.Errorf("getting queue depth, %w", err)
			}
			status, err := services.Describe(ctx)
			if err != nil {
				return fmt.Errorf("describing service, %w", err)
			}
			fmt.Printf("[%s] depth=%d desired=%d running=%d pending=%d\n",
				time.Now().Format(time.TimeOnly), depth, status.DesiredCount, status.RunningCount, status.PendingCount)

			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 10*time.Second, "polling interval")
	rootCmd.AddCommand(watchCmd)
}
