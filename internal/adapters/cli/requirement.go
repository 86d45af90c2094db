package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/application/progress/commands"
)

// NewRequirementCommand creates the requirement command with subcommands
func NewRequirementCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requirement",
		Short: "Mark item requirements as handed in",
		Long: `Mark individual item requirements as completed. Completed requirements
no longer count toward pooled needs.

Examples:
  hideout requirement done 5d484fc0654e76006657e0ab
  hideout requirement undo 5d484fc0654e76006657e0ab
  hideout requirement toggle 5d484fc0654e76006657e0ab`,
	}

	cmd.AddCommand(newRequirementSetCommand("done", "Mark a requirement completed", boolRef(true)))
	cmd.AddCommand(newRequirementSetCommand("undo", "Mark a requirement not completed", boolRef(false)))
	cmd.AddCommand(newRequirementSetCommand("toggle", "Flip a requirement's completed state", nil))

	return cmd
}

func newRequirementSetCommand(use, short string, completed *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <requirement-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &commands.SetRequirementCompletedCommand{
					ProfileRef:    ref,
					RequirementID: args[0],
					Completed:     completed,
				})
				if err != nil {
					return fmt.Errorf("failed to update requirement: %w", err)
				}

				result := response.(*commands.SetRequirementCompletedResponse)
				state := "open"
				if result.Completed {
					state = "completed"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (%s level %d) is %s\n",
					result.RequirementID, result.StationID, result.Level, state)
				return nil
			})
		},
	}

	return cmd
}

func boolRef(b bool) *bool { return &b }
