package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge all messages from the queue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := queues.Purge(cmd.Context()); err != nil {
			return fmt.Errorf("purging queue, %w", err)
		}
		log.Infow("purged queue", "queue", queues.Name())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
