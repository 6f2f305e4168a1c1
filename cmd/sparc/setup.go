package main

import (
	"log/slog"
	"os"

	"github.com/sparclabs/sparc/internal/analytics"
	"github.com/sparclabs/sparc/internal/config"
	"github.com/sparclabs/sparc/internal/db"
	"github.com/sparclabs/sparc/internal/generator"
	"github.com/sparclabs/sparc/internal/models"
	"github.com/sparclabs/sparc/internal/publish"
	"github.com/sparclabs/sparc/internal/repository"
	"github.com/sparclabs/sparc/internal/scheduler"
)

var configFile string

func newLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Logging.Level),
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Logging.Level),
		})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func buildAdapters(cfg *config.Config, logger *slog.Logger) *publish.Registry {
	registry := publish.NewRegistry()
	if cfg.Credentials.TwitterBearerToken != "" {
		registry.Register(models.PlatformTwitter, publish.NewTwitterAdapter(cfg.Credentials.TwitterBearerToken, logger))
	}
	if cfg.Email.SMTPServer != "" {
		registry.Register(models.PlatformEmail, publish.NewEmailAdapter(
			cfg.Email.SMTPServer,
			cfg.Email.SMTPPort,
			cfg.Email.From,
			cfg.Credentials.SMTPUsername,
			cfg.Credentials.SMTPPassword,
			logger,
		))
	}
	return registry
}

func buildScheduler(cfg *config.Config, database *db.DB, logger *slog.Logger) *scheduler.Scheduler {
	return scheduler.New(
		repository.NewScheduleRepository(database.DB),
		repository.NewContentRepository(database.DB),
		repository.NewCampaignRepository(database.DB),
		buildAdapters(cfg, logger),
		logger,
	)
}

func buildGenerator(cfg *config.Config, logger *slog.Logger) *generator.Generator {
	client := generator.NewClient(
		cfg.Credentials.GeneratorEndpoint,
		cfg.Credentials.GeneratorAPIKey,
		cfg.Generator.DeploymentName,
		cfg.Generator.APIVersion,
	)
	return generator.New(client, logger)
}

func buildAggregator(database *db.DB, logger *slog.Logger) *analytics.Aggregator {
	return analytics.New(repository.NewAnalyticsRepository(database.DB), logger)
}
