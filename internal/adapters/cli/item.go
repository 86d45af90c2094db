package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/application/progress/commands"
)

// NewItemCommand creates the item command with subcommands
func NewItemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Track owned item counts",
		Long: `Track how many of each item you own. Counts are split by provenance:
"have" counts copies that are not found in raid, "fir" counts found-in-raid
copies. FIR copies can cover any requirement.

Examples:
  hideout item add bolts --have 2
  hideout item add wires --have 1 --fir 1
  hideout item add bolts --have -1
  hideout item set screws --have 5 --fir 2`,
	}

	cmd.AddCommand(newItemAddCommand())
	cmd.AddCommand(newItemSetCommand())

	return cmd
}

// newItemAddCommand creates the item add subcommand
func newItemAddCommand() *cobra.Command {
	var (
		have int
		fir  int
	)

	cmd := &cobra.Command{
		Use:   "add <item-id>",
		Short: "Adjust owned counts by a delta",
		Long: `Adjust owned counts by a delta. Negative deltas remove copies; counts
never drop below zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if have == 0 && fir == 0 {
				return fmt.Errorf("at least one of --have or --fir is required")
			}

			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &commands.AdjustItemCountsCommand{
					ProfileRef:   ref,
					ItemID:       args[0],
					DeltaHave:    have,
					DeltaHaveFir: fir,
				})
				if err != nil {
					return fmt.Errorf("failed to adjust item counts: %w", err)
				}

				printItemCounts(cmd, response.(*commands.ItemCountsResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&have, "have", 0, "Change to the non-FIR count")
	cmd.Flags().IntVar(&fir, "fir", 0, "Change to the found-in-raid count")

	return cmd
}

// newItemSetCommand creates the item set subcommand
func newItemSetCommand() *cobra.Command {
	var (
		have int
		fir  int
	)

	cmd := &cobra.Command{
		Use:   "set <item-id>",
		Short: "Set owned counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &commands.SetItemCountsCommand{
					ProfileRef: ref,
					ItemID:     args[0],
					Have:       have,
					HaveFir:    fir,
				})
				if err != nil {
					return fmt.Errorf("failed to set item counts: %w", err)
				}

				printItemCounts(cmd, response.(*commands.ItemCountsResponse))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&have, "have", 0, "Non-FIR count")
	cmd.Flags().IntVar(&fir, "fir", 0, "Found-in-raid count")

	return cmd
}

func printItemCounts(cmd *cobra.Command, result *commands.ItemCountsResponse) {
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: have %d (FIR %d)\n",
		result.ItemID, result.Counts.Have, result.Counts.HaveFir)
}
