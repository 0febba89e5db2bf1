package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current queue depth and service task counts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		depth, err := queues.Depth(cmd.Context())
		if err != nil {
			return fmt.Errorf("getting queue depth, %w", err)
		}
		status, err := services.Describe(cmd.Context())
		if err != nil {
			return fmt.Errorf("describing service, %w", err)
		}
		fmt.Printf("queue %s: %d messages\n", queues.Name(), depth)
		fmt.Printf("service %s/%s: desired=%d running=%d pending=%d status=%s\n",
			clusterName, serviceName, status.DesiredCount, status.RunningCount, status.PendingCount, status.Status)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
