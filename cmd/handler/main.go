package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ecscale/ecscale/pkg/apis/config/settings"
	sdk "github.com/ecscale/ecscale/pkg/aws"
	awscache "github.com/ecscale/ecscale/pkg/cache"
	"github.com/ecscale/ecscale/pkg/controllers/scaling"
	"github.com/ecscale/ecscale/pkg/operator/options"
	"github.com/ecscale/ecscale/pkg/providers/queue"
	"github.com/ecscale/ecscale/pkg/providers/service"
)

func main() {
	logger := lo.Must(zap.NewProduction())
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	opts := options.New().MustParse()
	ctx := settings.ToContext(context.Background(), opts.Settings())

	cfg := sdk.LoadDefaultConfig(ctx)
	controller := scaling.NewController(
		queue.NewDefaultProvider(sdk.NewSQSClient(cfg), opts.QueueURL),
		service.NewDefaultProvider(sdk.NewECSClient(cfg), opts.ClusterName, opts.ServiceName),
		awscache.NewValidation(),
		logger.Sugar(),
	)

	lambda.StartWithOptions(controller.Handle, lambda.WithContext(ctx))
}
