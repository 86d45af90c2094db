package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	profileRef string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hideout",
		Short: "Hideout tracker - plan station upgrades and pooled item demand",
		Long: `Hideout tracker keeps per-profile station progress and computes the
pooled item demand of every upgrade you still have ahead of you.

Station data is read from a snapshot file (hideout.stations_file); progress
is stored in the configured database.

Examples:
  hideout profile create main --edition "Edge of Darkness"
  hideout station set generator 2
  hideout item add bolts --have 3 --fir 1
  hideout needs --mode all --outstanding
  hideout station list
  hideout serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profileRef, "profile", "p", "",
		"Profile name or id (default: user config, then hideout.profile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewProfileCommand())
	rootCmd.AddCommand(NewStationCommand())
	rootCmd.AddCommand(NewRequirementCommand())
	rootCmd.AddCommand(NewItemCommand())
	rootCmd.AddCommand(NewNeedsCommand())
	rootCmd.AddCommand(NewEditionCommand())
	rootCmd.AddCommand(NewPrefsCommand())
	rootCmd.AddCommand(NewTraderCommand())
	rootCmd.AddCommand(NewSkillCommand())
	rootCmd.AddCommand(NewProgressCommand())
	rootCmd.AddCommand(NewPricesCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
