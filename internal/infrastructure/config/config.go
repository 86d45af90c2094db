package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Hideout  HideoutConfig  `mapstructure:"hideout"`
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`

	// Source is the config file that was read, empty when only defaults
	// and environment variables apply
	Source string `mapstructure:"-"`
}

// envKeys lists every key so AutomaticEnv also applies to keys no config
// file mentions; viper's Unmarshal only sees keys it knows about.
var envKeys = []string{
	"database.type", "database.url", "database.host", "database.port", "database.user",
	"database.password", "database.name", "database.sslmode", "database.path", "database.busy_timeout",
	"database.slow_query_threshold", "database.log_queries",
	"database.pool.max_open", "database.pool.max_idle", "database.pool.max_lifetime",
	"hideout.stations_file", "hideout.profile", "hideout.edition", "hideout.game_mode", "hideout.view_mode",
	"server.host", "server.port", "server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
	"metrics.enabled", "metrics.path",
	"logging.level", "logging.format", "logging.output", "logging.file_path", "logging.include_caller",
}

// LoadConfig resolves the configuration. Later sources win:
//
//	defaults < config.yaml (or configPath) < HT_* variables < DATABASE_URL
//
// A .env file in the working directory only fills variables that are unset.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is fine
	_ = godotenv.Load()

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
		if !v.IsSet("database.type") {
			v.Set("database.type", "postgres")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	SetDefaults(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Defaults returns the configuration used when nothing is configured
func Defaults() *Config {
	cfg := &Config{}
	SetDefaults(cfg)
	return cfg
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/hideout")
	}

	// HT_DATABASE_PATH, HT_HIDEOUT_STATIONS_FILE, ...
	v.SetEnvPrefix("HT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	return v
}
