package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/hideout-go/internal/adapters/persistence"
	"github.com/andrescamacho/hideout-go/internal/infrastructure/config"
)

const memoryPath = ":memory:"

// NewConnection opens the configured database. Slow queries and driver
// errors are reported through log; a nil log silences gorm entirely.
func NewConnection(cfg *config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Type {
	case "postgres":
		dialector = postgres.Open(postgresDSN(cfg))

	case "sqlite":
		dsn, err := sqliteDSN(cfg)
		if err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger(cfg, log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Type, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying db: %w", err)
	}

	switch cfg.Type {
	case "postgres":
		sqlDB.SetMaxOpenConns(cfg.Pool.MaxOpen)
		sqlDB.SetMaxIdleConns(cfg.Pool.MaxIdle)
		sqlDB.SetConnMaxLifetime(cfg.Pool.MaxLifetime)
	case "sqlite":
		// One writer at a time; an in-memory database also lives and dies
		// with its single connection.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// postgresDSN prefers the URL and falls back to the discrete fields
func postgresDSN(cfg *config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// sqliteDSN creates the parent directory of a file database and appends the
// busy timeout so a CLI run waits for a concurrent `serve` instead of
// failing with SQLITE_BUSY.
func sqliteDSN(cfg *config.DatabaseConfig) (string, error) {
	path := cfg.Path
	if path == "" {
		path = memoryPath
	}
	if path != memoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}
	if cfg.BusyTimeout > 0 {
		path = fmt.Sprintf("%s?_busy_timeout=%d", path, cfg.BusyTimeout.Milliseconds())
	}
	return path, nil
}

func gormLogger(cfg *config.DatabaseConfig, log *slog.Logger) logger.Interface {
	if log == nil {
		return logger.Default.LogMode(logger.Silent)
	}

	level := logger.Warn
	if cfg.LogQueries {
		level = logger.Info
	}
	return logger.New(slogWriter{log: log.With("component", "gorm")}, logger.Config{
		SlowThreshold:             cfg.SlowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	})
}

// slogWriter satisfies gorm's logger.Writer
type slogWriter struct {
	log *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.log.Info(fmt.Sprintf(format, args...))
}

// NewTestConnection opens a migrated in-memory SQLite database
func NewTestConnection() (*gorm.DB, error) {
	db, err := NewConnection(&config.DatabaseConfig{Type: "sqlite", Path: memoryPath}, nil)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate test database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates or updates the profile and price tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(persistence.AllModels()...)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
