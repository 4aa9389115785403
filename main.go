package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-rules/api"
	"github.com/carson-networks/budget-rules/internal/config"
	"github.com/carson-networks/budget-rules/internal/logging"
	"github.com/carson-networks/budget-rules/internal/operator"
	"github.com/carson-networks/budget-rules/internal/rules"
	"github.com/carson-networks/budget-rules/internal/service"
	"github.com/carson-networks/budget-rules/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger, err := logging.SetupLogging(envConfig.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("logging.SetupLogging")
		return
	}
	logger.WithField("storageBackend", envConfig.StorageBackend).Info("budget-rules starting")

	store, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer store.Close()

	engine := rules.NewEngine(
		rules.WithLogger(logger),
		rules.WithFutureDateLimit(envConfig.FutureDateLimitDays),
		rules.WithWarningThreshold(envConfig.WarningThreshold),
	)

	delegator := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(store, delegator, engine, service.WithWarningThreshold(envConfig.WarningThreshold))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpRest := api.Rest{
		Logger:          logger,
		Port:            envConfig.HTTPPort,
		Storage:         store,
		Service:         svc,
		DefaultCurrency: envConfig.DefaultCurrency,
	}
	httpRest.Serve(ctx)
}
