package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/application/progress/commands"
	"github.com/andrescamacho/hideout-go/internal/domain/hideout"
)

// NewEditionCommand creates the edition command
func NewEditionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edition <edition>",
		Short: "Change the game edition of the selected profile",
		Long: `Change the game edition. Stations are raised to the minimum level the
edition grants; levels already above that floor are never lowered.

Editions: ` + editionNames(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &commands.ApplyEditionCommand{ProfileRef: ref, Edition: args[0]})
				if err != nil {
					return fmt.Errorf("failed to apply edition: %w", err)
				}

				result := response.(*commands.ApplyEditionResponse)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Edition set to %s\n", result.Edition)
				if !result.Changed {
					fmt.Fprintln(out, "  No station levels changed.")
				}
				return nil
			})
		},
	}

	return cmd
}

// NewPrefsCommand creates the prefs command
func NewPrefsCommand() *cobra.Command {
	var (
		viewMode   string
		showHidden string
		itemSize   string
		gameMode   string
	)

	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Update view preferences",
		Long: `Update the view preferences of the selected profile. Only the flags you
pass are changed.

Examples:
  hideout prefs --view-mode all
  hideout prefs --show-hidden true --item-size small
  hideout prefs --game-mode pve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &commands.UpdatePreferencesCommand{}
			if cmd.Flags().Changed("view-mode") {
				command.ViewMode = &viewMode
			}
			if cmd.Flags().Changed("item-size") {
				command.ItemSize = &itemSize
			}
			if cmd.Flags().Changed("game-mode") {
				command.GameMode = &gameMode
			}
			if cmd.Flags().Changed("show-hidden") {
				show, err := strconv.ParseBool(showHidden)
				if err != nil {
					return fmt.Errorf("invalid --show-hidden %q: %w", showHidden, err)
				}
				command.ShowHidden = &show
			}

			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}
				command.ProfileRef = ref

				response, err := a.send(ctx, command)
				if err != nil {
					return fmt.Errorf("failed to update preferences: %w", err)
				}

				prefs := response.(*commands.UpdatePreferencesResponse).Preferences
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "✓ Preferences")
				fmt.Fprintf(out, "  View mode:   %s\n", prefs.ViewMode)
				fmt.Fprintf(out, "  Show hidden: %s\n", yesNo(prefs.ShowHidden))
				fmt.Fprintf(out, "  Item size:   %s\n", prefs.ItemSize)
				fmt.Fprintf(out, "  Game mode:   %s\n", prefs.GameMode)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&viewMode, "view-mode", "", "nextLevel or all")
	cmd.Flags().StringVar(&showHidden, "show-hidden", "", "true or false")
	cmd.Flags().StringVar(&itemSize, "item-size", "", "small, medium or large")
	cmd.Flags().StringVar(&gameMode, "game-mode", "", "regular or pve")

	return cmd
}

// NewTraderCommand creates the trader command
func NewTraderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trader <name> <level>",
		Short: "Record a trader loyalty level (0-4)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", args[1], err)
			}
			return setAttributeLevel(cmd, &commands.SetTraderLevelCommand{Trader: args[0], Level: level})
		},
	}

	return cmd
}

// NewSkillCommand creates the skill command
func NewSkillCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill <name> <level>",
		Short: "Record a skill level (0-51)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid level %q: %w", args[1], err)
			}
			return setAttributeLevel(cmd, &commands.SetSkillLevelCommand{Skill: args[0], Level: level})
		},
	}

	return cmd
}

func setAttributeLevel(cmd *cobra.Command, command interface{}) error {
	return withApp(func(ctx context.Context, a *app) error {
		ref, err := resolveProfileRef(a.cfg)
		if err != nil {
			return err
		}

		switch c := command.(type) {
		case *commands.SetTraderLevelCommand:
			c.ProfileRef = ref
		case *commands.SetSkillLevelCommand:
			c.ProfileRef = ref
		}

		response, err := a.send(ctx, command)
		if err != nil {
			return fmt.Errorf("failed to set level: %w", err)
		}

		result := response.(*commands.AttributeLevelResponse)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is now level %d\n", result.Name, result.Level)
		return nil
	})
}

func editionNames() string {
	editions := hideout.Editions()
	names := make([]string, 0, len(editions))
	for _, e := range editions {
		names = append(names, string(e))
	}
	return strings.Join(names, ", ")
}
