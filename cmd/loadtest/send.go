package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var sendCount int

type testMessage struct {
	TestID        string `json:"test_id"`
	MessageNumber int    `json:"message_number"`
	Timestamp     string `json:"timestamp"`
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send test messages to the queue",
	RunE: func(cmd *cobra.Command, _ []string) error {
		testID := uuid.NewString()
		for i := 1; i <= sendCount; i++ {
			id, err := queues.SendMessage(cmd.Context(), testMessage{
				TestID:        testID,
				MessageNumber: i,
				Timestamp:     time.Now().UTC().Format(time.RFC3339),
			})
			if err != nil {
				return fmt.Errorf("sending message %d/%d, %w", i, sendCount, err)
			}
			log.Infow("sent test message", "message_id", id, "test_id", testID)
		}
		return nil
	},
}

func init() {
	sendCmd.Flags().IntVar(&sendCount, "count", 1, "number of messages to send")
	rootCmd.AddCommand(sendCmd)
}
