package main

import (
	"intercom/internal/config"
	"intercom/internal/handlers"
	"intercom/pkg/clients/discord"
	envconfig "intercom/pkg/config"
	"intercom/pkg/logging"
	"intercom/pkg/monitoring"
	"intercom/pkg/server"
	"intercom/pkg/version"
)

const (
	serviceName      = "intercom"
	metricsNamespace = "home_intercom_server"
)

func main() {
	logger := logging.NewLoggerWithService(serviceName)
	envconfig.LoadEnv(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	logger.WithFields(logging.Fields{
		"version":      version.Version,
		"commit":       version.GetShortCommit(),
		"auth_mode":    cfg.AuthMode,
		"http_addr":    cfg.HTTPAddr,
		"metrics_addr": cfg.MetricsAddr,
		"rate_limit":   cfg.RateLimitPerMin,
	}).Info("Starting intercom notifier")

	healthChecker := monitoring.NewHealthChecker(serviceName, version.Version)
	metricsCollector := monitoring.NewMetricsCollector(metricsNamespace, version.Version, version.GitCommit)

	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		config.EnvWebhookURL:    cfg.WebhookURL,
		config.EnvRequestSecret: cfg.RequestSecret,
	}))

	app := server.SetupServiceRouter(logger, metricsCollector)
	handlers.RegisterRoutes(app, handlers.Deps{
		Config:  cfg,
		Logger:  logger,
		Sender:  discord.NewClient(cfg.WebhookURL),
		Metrics: handlers.NewIntercomMetrics(metricsCollector),
		Health:  healthChecker,
	})

	metricsApp := server.SetupMetricsRouter(logger, metricsCollector)

	if err := server.Start(logger,
		server.Listener{Config: server.DefaultConfig("app", cfg.HTTPAddr), Handler: app},
		server.Listener{Config: server.DefaultConfig("metrics", cfg.MetricsAddr), Handler: metricsApp},
	); err != nil {
		logger.WithError(err).Fatal("Server exited with error")
	}
}
