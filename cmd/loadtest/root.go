package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	sdk "github.com/ecscale/ecscale/pkg/aws"
	"github.com/ecscale/ecscale/pkg/providers/queue"
	"github.com/ecscale/ecscale/pkg/providers/service"
	"github.com/ecscale/ecscale/pkg/utils/env"
)

var (
	queueURL    string
	clusterName string
	serviceName string

	log      *zap.SugaredLogger
	queues   queue.Provider
	services service.Provider
)

// rootCmd drives manual load testing of a deployed scaler against real AWS:
// inspect state, inject queue traffic, and run the end-to-end scenario.
var rootCmd = &cobra.Command{
	Use:           "ecscale-loadtest",
	Short:         "Load-test harness for the queue-driven ECS scaler",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if queueURL == "" || clusterName == "" || serviceName == "" {
			return fmt.Errorf("--queue-url, --cluster-name and --service-name are required (or set SQS_QUEUE_URL, ECS_CLUSTER_NAME, ECS_SERVICE_NAME)")
		}
		logger := lo.Must(zap.NewDevelopment())
		log = logger.Sugar()

		cfg := sdk.LoadDefaultConfig(cmd.Context())
		queues = queue.NewDefaultProvider(sdk.NewSQSClient(cfg), queueURL)
		services = service.NewDefaultProvider(sdk.NewECSClient(cfg), clusterName, serviceName)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&queueURL, "queue-url", env.WithDefaultString("SQS_QUEUE_URL", ""), "SQS queue URL under test")
	rootCmd.PersistentFlags().StringVar(&clusterName, "cluster-name", env.WithDefaultString("ECS_CLUSTER_NAME", ""), "ECS cluster under test")
	rootCmd.PersistentFlags().StringVar(&serviceName, "service-name", env.WithDefaultString("ECS_SERVICE_NAME", ""), "ECS service under test")
}
