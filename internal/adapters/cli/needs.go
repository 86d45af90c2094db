package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
)

// NewNeedsCommand creates the needs command
func NewNeedsCommand() *cobra.Command {
	var (
		mode        string
		outstanding bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "needs",
		Short: "Show pooled item demand",
		Long: `Show the pooled item demand of the selected profile.

Identical items required by several stations are summed into one line. The
NEED column splits into FIR and non-FIR: found-in-raid copies are reserved
for FIR requirements first, and leftovers cover the rest.

Modes:
  nextLevel  only the next level of each station (default)
  all        every level not yet built, locked stations included

Examples:
  hideout needs
  hideout needs --mode all --outstanding
  hideout needs --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &queries.GetPooledNeedsQuery{
					ProfileRef:      ref,
					ViewMode:        mode,
					OutstandingOnly: outstanding,
				})
				if err != nil {
					return fmt.Errorf("failed to compute needs: %w", err)
				}

				result := response.(*queries.GetPooledNeedsResponse)
				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(result)
				}

				fmt.Fprintf(out, "Pooled needs for %s (%s, %s)\n\n", result.ProfileName, result.ViewMode, result.GameMode)
				if len(result.Items) == 0 {
					fmt.Fprintln(out, "Nothing needed.")
					return nil
				}

				w := newTable(out)
				fmt.Fprintln(w, "ITEM\tREQUIRED\tFIR\tHAVE\tHAVE FIR\tNEED\tNEED FIR\tCOST")
				fmt.Fprintln(w, "----\t--------\t---\t----\t--------\t----\t--------\t----")
				for _, line := range result.Items {
					cost := "-"
					if line.Price != nil && line.NeededCost > 0 {
						cost = formatRoubles(line.NeededCost)
					}
					fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
						line.Item.Name,
						line.Required,
						line.RequiredFir,
						line.Owned.Have,
						line.Owned.HaveFir,
						line.Needs.NeededTotal,
						line.Needs.NeededFir,
						cost,
					)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				fmt.Fprintf(out, "\n%d item(s) outstanding", result.OutstandingItems)
				if result.TotalNeededCost > 0 {
					fmt.Fprintf(out, ", about %s to buy", formatRoubles(result.TotalNeededCost))
				}
				fmt.Fprintln(out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "View mode: nextLevel or all (default: profile preference)")
	cmd.Flags().BoolVar(&outstanding, "outstanding", false, "Only list items still needed")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}
