package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gorm.io/gorm"

	"github.com/andrescamacho/hideout-go/internal/adapters/metrics"
	"github.com/andrescamacho/hideout-go/internal/adapters/persistence"
	"github.com/andrescamacho/hideout-go/internal/adapters/snapshot"
	"github.com/andrescamacho/hideout-go/internal/application/common"
	"github.com/andrescamacho/hideout-go/internal/application/mediator"
	"github.com/andrescamacho/hideout-go/internal/application/setup"
	"github.com/andrescamacho/hideout-go/internal/infrastructure/config"
	"github.com/andrescamacho/hideout-go/internal/infrastructure/database"
	"github.com/andrescamacho/hideout-go/internal/infrastructure/logging"
)

// app bundles the wired dependencies one CLI invocation needs
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	logger   *slog.Logger
	mediator mediator.Mediator
	stations *snapshot.FileStationProvider
	logFile  io.Closer
}

type appOptions struct {
	// withMetrics initializes the Prometheus registry and metric middlewares
	withMetrics bool
}

// newApp loads config, opens the database and builds a configured mediator
func newApp(opts appOptions) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, logFile, err := logging.Setup(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		_ = logFile.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	a := &app{
		cfg:      cfg,
		db:       db,
		logger:   logger,
		stations: snapshot.NewFileStationProvider(cfg.Hideout.StationsFile),
		logFile:  logFile,
	}

	registry := setup.NewHandlerRegistry(
		persistence.NewGormProfileRepository(db),
		a.stations,
		a.stations,
		persistence.NewGormMarketPriceRepository(db),
		nil,
	)

	// Validation runs inside logging so rejected requests are logged too
	registry.Use(common.LoggingMiddleware()).Use(common.ValidationMiddleware())

	if opts.withMetrics && cfg.Metrics.Enabled {
		metrics.InitRegistry()
		requestMetrics := metrics.NewRequestMetricsCollector()
		progressMetrics := metrics.NewProgressMetricsCollector()
		if err := requestMetrics.Register(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to register request metrics: %w", err)
		}
		if err := progressMetrics.Register(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to register progress metrics: %w", err)
		}
		registry.Use(metrics.PrometheusMiddleware(requestMetrics)).Use(metrics.ProgressMiddleware(progressMetrics))
	}

	a.mediator, err = registry.CreateConfiguredMediator()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	return a, nil
}

// send dispatches a request with the app logger in context
func (a *app) send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	ctx = common.WithLogger(ctx, common.NewSlogLogger(a.logger))
	return a.mediator.Send(ctx, request)
}

// Close releases the database and log file
func (a *app) Close() {
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
	_ = a.logFile.Close()
}

// withApp runs fn against a freshly wired app and closes it afterwards
func withApp(fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(context.Background(), a)
}
