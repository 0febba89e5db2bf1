package main

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	scenarioMessages  int
	scenarioTarget    int
	scenarioPollDelay time.Duration
	scenarioAttempts  uint
)

// scenarioCmd runs the full scale-up/scale-down round trip against a deployed
// scaler: inject messages, wait for the service to reach the target, drain the
// queue, wait for the service to return to zero.
var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run the automated scale-up/scale-down scenario",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		baseline, err := services.Describe(ctx)
		if err != nil {
			return fmt.Errorf("reading baseline, %w", err)
		}
		log.Infow("baseline", "desired", baseline.DesiredCount, "running", baseline.RunningCount)

		testID := uuid.NewString()
		for i := 1; i <= scenarioMessages; i++ {
			if _, err := queues.SendMessage(ctx, testMessage{
				TestID:        testID,
				MessageNumber: i,
				Timestamp:     time.Now().UTC().Format(time.RFC3339),
			}); err != nil {
				return fmt.Errorf("sending message %d/%d, %w", i, scenarioMessages, err)
			}
		}
		log.Infow("sent messages", "count", scenarioMessages, "test_id", testID)

		if err := waitForRunningCount(ctx, func(running int) bool { return running >= scenarioTarget }); err != nil {
			return fmt.Errorf("waiting for scale-up to %d tasks, %w", scenarioTarget, err)
		}
		log.Infow("scale-up observed", "target", scenarioTarget)

		if err := queues.Purge(ctx); err != nil {
			return fmt.Errorf("draining queue, %w", err)
		}
		log.Infow("purged queue")

		if err := waitForRunningCount(ctx, func(running int) bool { return running == 0 }); err != nil {
			return fmt.Errorf("waiting for scale-down to zero, %w", err)
		}
		log.Infow("scale-down observed")
		log.Infow("scenario passed")
		return nil
	},
}

func waitForRunningCount(ctx context.Context, done func(running int) bool) error {
	return retry.Do(func() error {
		running, err := services.RunningCount(ctx)
		if err != nil {
			return err
		}
		if !done(running) {
			return fmt.Errorf("running count %d not at expected state yet", running)
		}
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(scenarioAttempts),
		retry.Delay(scenarioPollDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

func init() {
	scenarioCmd.Flags().IntVar(&scenarioMessages, "messages", 5, "number of test messages to inject")
	scenarioCmd.Flags().IntVar(&scenarioTarget, "scale-up-target", 1, "running count that confirms scale-up")
	scenarioCmd.Flags().DurationVar(&scenarioPollDelay, "poll-delay", 10*time.Second, "delay between state polls")
	scenarioCmd.Flags().UintVar(&scenarioAttempts, "poll-attempts", 30, "maximum state polls per wait")
	rootCmd.AddCommand(scenarioCmd)
}
