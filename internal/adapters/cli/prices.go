package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/adapters/snapshot"
	marketCommands "github.com/andrescamacho/hideout-go/internal/application/market/commands"
)

// NewPricesCommand creates the prices command with subcommands
func NewPricesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Manage market price snapshots",
		Long: `Manage market price snapshots used to estimate the cost of pooled needs.

Examples:
  hideout prices import prices-regular.json
  hideout prices import prices-pve.json --game-mode pve`,
	}

	cmd.AddCommand(newPricesImportCommand())

	return cmd
}

// newPricesImportCommand creates the prices import subcommand
func newPricesImportCommand() *cobra.Command {
	var gameMode string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the price snapshot of a game mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			prices, err := snapshot.DecodePrices(f)
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, a *app) error {
				if gameMode == "" {
					gameMode = a.cfg.Hideout.GameMode
				}

				response, err := a.send(ctx, &marketCommands.ImportMarketPricesCommand{
					GameMode: gameMode,
					Prices:   prices,
				})
				if err != nil {
					return fmt.Errorf("failed to import prices: %w", err)
				}

				result := response.(*marketCommands.ImportMarketPricesResponse)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Imported %d prices for %s\n", result.Imported, result.GameMode)
				if result.Skipped > 0 {
					fmt.Fprintf(out, "  Skipped %d invalid entries\n", result.Skipped)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&gameMode, "game-mode", "", "regular or pve (default: hideout.game_mode)")

	return cmd
}
