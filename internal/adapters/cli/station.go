package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/application/progress/commands"
	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

// NewStationCommand creates the station command with subcommands
func NewStationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "station",
		Short: "Inspect and update hideout stations",
		Long: `Inspect and update hideout stations of the selected profile.

Stations are referenced by id or normalized name (e.g. "generator").

Examples:
  hideout station list
  hideout station show workbench
  hideout station set generator 2
  hideout station hide cultist-circle
  hideout station hide cultist-circle --show`,
	}

	// Add subcommands
	cmd.AddCommand(newStationListCommand())
	cmd.AddCommand(newStationShowCommand())
	cmd.AddCommand(newStationSetCommand())
	cmd.AddCommand(newStationHideCommand())

	return cmd
}

// newStationListCommand creates the station list subcommand
func newStationListCommand() *cobra.Command {
	var showHidden bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stations with lock state and upgrade readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &queries.GetStationStatusQuery{ProfileRef: ref})
				if err != nil {
					return fmt.Errorf("failed to load stations: %w", err)
				}

				w := newTable(cmd.OutOrStdout())
				fmt.Fprintln(w, "STATION\tLEVEL\tSTATE\tREADINESS\tBLOCKED BY")
				fmt.Fprintln(w, "-------\t-----\t-----\t---------\t----------")
				for _, s := range response.(*queries.GetStationStatusResponse).Stations {
					if s.Hidden && !showHidden {
						continue
					}
					fmt.Fprintf(w, "%s\t%d/%d\t%s\t%s\t%s\n",
						s.NormalizedName,
						s.CurrentLevel, s.MaxLevel,
						stationState(s),
						s.Readiness,
						formatPrereqs(s.UnmetPrerequisite),
					)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&showHidden, "all", false, "Include hidden stations")

	return cmd
}

// newStationShowCommand creates the station show subcommand
func newStationShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <station>",
		Short: "Show why a station is or is not ready to upgrade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &queries.GetStationStatusQuery{ProfileRef: ref, StationRef: args[0]})
				if err != nil {
					return fmt.Errorf("failed to load station: %w", err)
				}

				s := response.(*queries.GetStationStatusResponse).Stations[0]
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s (%s)\n", s.Name, s.StationID)
				fmt.Fprintf(out, "  Level:      %d/%d\n", s.CurrentLevel, s.MaxLevel)
				fmt.Fprintf(out, "  State:      %s\n", stationState(s))
				fmt.Fprintf(out, "  Readiness:  %s\n", s.Readiness)
				if len(s.UnmetPrerequisite) > 0 {
					fmt.Fprintf(out, "  Blocked by: %s\n", formatPrereqs(s.UnmetPrerequisite))
				}
				for _, reason := range s.Reasons {
					fmt.Fprintf(out, "  - %s\n", reason)
				}
				for _, shortfall := range s.Shortfalls {
					fmt.Fprintf(out, "  - %s: %d more\n", shortfall.ItemID, shortfall.Needs.NeededTotal)
				}
				return nil
			})
		},
	}

	return cmd
}

// newStationSetCommand creates the station set subcommand
func newStationSetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <station> <level>",
		Short: "Set a station's built level",
		Long: `Set a station's built level. Levels above the station's maximum are
clamped to the maximum.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", args[1], err)
			}

			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &commands.SetStationLevelCommand{
					ProfileRef: ref,
					StationRef: args[0],
					Level:      level,
				})
				if err != nil {
					return fmt.Errorf("failed to set station level: %w", err)
				}

				result := response.(*commands.SetStationLevelResponse)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ %s is now level %d\n", args[0], result.Level)
				if result.Clamped {
					fmt.Fprintf(out, "  (requested %d, clamped to the station maximum)\n", level)
				}
				return nil
			})
		},
	}

	return cmd
}

// newStationHideCommand creates the station hide subcommand
func newStationHideCommand() *cobra.Command {
	var (
		show   bool
		toggle bool
	)

	cmd := &cobra.Command{
		Use:   "hide <station>",
		Short: "Hide a station from needs and listings",
		Long: `Hide a station. Hidden stations contribute nothing to pooled needs.

Use --show to unhide it again or --toggle to flip the current state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if show && toggle {
				return fmt.Errorf("--show and --toggle are mutually exclusive")
			}

			var hidden *bool
			if !toggle {
				value := !show
				hidden = &value
			}

			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &commands.SetStationHiddenCommand{
					ProfileRef: ref,
					StationRef: args[0],
					Hidden:     hidden,
				})
				if err != nil {
					return fmt.Errorf("failed to update station: %w", err)
				}

				if response.(*commands.SetStationHiddenResponse).Hidden {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ %s hidden\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ %s visible\n", args[0])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Unhide the station")
	cmd.Flags().BoolVar(&toggle, "toggle", false, "Flip the hidden state")

	return cmd
}

func stationState(s queries.StationStatus) string {
	switch {
	case s.Hidden:
		return "hidden"
	case s.Locked:
		return "locked"
	default:
		return "unlocked"
	}
}

func formatPrereqs(reqs []hideout.StationLevelRequirement) string {
	if len(reqs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(reqs))
	for _, r := range reqs {
		parts = append(parts, fmt.Sprintf("%s %d", r.StationNormalizedName, r.Level))
	}
	return strings.Join(parts, ", ")
}
