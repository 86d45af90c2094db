package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage hideout tracker configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (HT_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default profile) are stored in ~/.hideout/config.json

Examples:
  hideout config show
  hideout config clear-profile`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigClearProfileCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.Defaults()
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Hideout Configuration")
			fmt.Fprintln(out, "=====================")

			if cfg.Source != "" {
				fmt.Fprintf(out, "Loaded from:        %s\n\n", cfg.Source)
			} else {
				fmt.Fprintln(out, "Loaded from:        defaults and environment")
				fmt.Fprintln(out)
			}

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultProfile != "" {
				fmt.Fprintf(out, "  Default Profile:  %s\n", userCfg.DefaultProfile)
			} else {
				fmt.Fprintf(out, "  Default Profile:  (not set)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
			}
			fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nHideout:")
			fmt.Fprintf(out, "  Stations file:    %s\n", cfg.Hideout.StationsFile)
			fmt.Fprintf(out, "  Edition:          %s\n", cfg.Hideout.Edition)
			fmt.Fprintf(out, "  Game mode:        %s\n", cfg.Hideout.GameMode)
			fmt.Fprintf(out, "  View mode:        %s\n", cfg.Hideout.ViewMode)

			fmt.Fprintln(out, "\nServer:")
			fmt.Fprintf(out, "  Address:          %s:%d\n", cfg.Server.Host, cfg.Server.Port)
			fmt.Fprintf(out, "  Metrics:          %s (%s)\n", yesNo(cfg.Metrics.Enabled), cfg.Metrics.Path)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigClearProfileCommand creates the config clear-profile subcommand
func newConfigClearProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-profile",
		Short: "Clear default profile setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultProfile(); err != nil {
				return fmt.Errorf("failed to clear default profile: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default profile cleared")
			return nil
		},
	}

	return cmd
}
