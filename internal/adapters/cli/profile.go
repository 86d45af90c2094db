package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/application/progress/commands"
	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
	"github.com/andrescamacho/hideout-go/internal/infrastructure/config"
)

// NewProfileCommand creates the profile command with subcommands
func NewProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage progress profiles",
		Long: `Manage progress profiles in the local database.

A profile holds station levels, owned items, completed requirements and view
preferences for one account.

Examples:
  hideout profile create main --edition "Edge of Darkness" --game-mode pve
  hideout profile list
  hideout profile show
  hideout profile use main
  hideout profile rename main-pve
  hideout profile delete old`,
	}

	// Add subcommands
	cmd.AddCommand(newProfileCreateCommand())
	cmd.AddCommand(newProfileListCommand())
	cmd.AddCommand(newProfileShowCommand())
	cmd.AddCommand(newProfileRenameCommand())
	cmd.AddCommand(newProfileDeleteCommand())
	cmd.AddCommand(newProfileUseCommand())

	return cmd
}

// newProfileCreateCommand creates the profile create subcommand
func newProfileCreateCommand() *cobra.Command {
	var (
		edition  string
		gameMode string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new profile",
		Long: `Create a new profile. Stations start at the minimum level the
edition grants, e.g. Edge of Darkness starts with stash level 4.

Edition and game mode default to hideout.edition and hideout.game_mode.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				if edition == "" {
					edition = a.cfg.Hideout.Edition
				}
				if gameMode == "" {
					gameMode = a.cfg.Hideout.GameMode
				}

				response, err := a.send(ctx, &commands.CreateProfileCommand{
					Name:     args[0],
					Edition:  edition,
					GameMode: gameMode,
				})
				if err != nil {
					return fmt.Errorf("failed to create profile: %w", err)
				}

				p := response.(*commands.CreateProfileResponse).Profile
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "✓ Profile created successfully")
				fmt.Fprintf(out, "  Name:      %s\n", p.Name())
				fmt.Fprintf(out, "  ID:        %s\n", p.ID())
				fmt.Fprintf(out, "  Edition:   %s\n", p.Preferences().Edition)
				fmt.Fprintf(out, "  Game mode: %s\n", p.Preferences().GameMode)
				fmt.Fprintln(out, "\nSet as default profile with: hideout profile use", p.Name())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&edition, "edition", "", "Game edition: "+editionNames())
	cmd.Flags().StringVar(&gameMode, "game-mode", "", "Game mode: regular or pve")

	return cmd
}

// newProfileListCommand creates the profile list subcommand
func newProfileListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				response, err := a.send(ctx, &queries.ListProfilesQuery{})
				if err != nil {
					return fmt.Errorf("failed to list profiles: %w", err)
				}

				profiles := response.(*queries.ListProfilesResponse).Profiles
				out := cmd.OutOrStdout()
				if len(profiles) == 0 {
					fmt.Fprintln(out, "No profiles found.")
					fmt.Fprintln(out, "\nCreate one with: hideout profile create <name>")
					return nil
				}

				w := newTable(out)
				fmt.Fprintln(w, "NAME\tEDITION\tMODE\tSTATIONS\tUPDATED\tID")
				fmt.Fprintln(w, "----\t-------\t----\t--------\t-------\t--")
				for _, p := range profiles {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
						p.Name, p.Edition, p.GameMode, p.Stations, p.UpdatedAt, p.ID)
				}
				return w.Flush()
			})
		},
	}

	return cmd
}

// newProfileShowCommand creates the profile show subcommand
func newProfileShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [profile]",
		Short: "Show profile details",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				ref, err := refFromArgs(a, args)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &queries.GetProfileQuery{ProfileRef: ref})
				if err != nil {
					return fmt.Errorf("failed to load profile: %w", err)
				}

				s := response.(*queries.GetProfileResponse).Profile
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Profile %s (%s)\n", s.Name, s.ID)
				fmt.Fprintf(out, "  Edition:      %s\n", s.Preferences.Edition)
				fmt.Fprintf(out, "  Game mode:    %s\n", s.Preferences.GameMode)
				fmt.Fprintf(out, "  View mode:    %s\n", s.Preferences.ViewMode)
				fmt.Fprintf(out, "  Show hidden:  %s\n", yesNo(s.Preferences.ShowHidden))
				fmt.Fprintf(out, "  Item size:    %s\n", s.Preferences.ItemSize)
				fmt.Fprintf(out, "  Updated:      %s\n", s.UpdatedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "  Items owned:  %d\n", len(s.ItemCounts))
				fmt.Fprintf(out, "  Completed:    %d requirements\n", len(s.CompletedRequirements))
				if len(s.TraderLevels) > 0 {
					fmt.Fprintf(out, "  Traders:      %v\n", s.TraderLevels)
				}
				if len(s.SkillLevels) > 0 {
					fmt.Fprintf(out, "  Skills:       %v\n", s.SkillLevels)
				}
				return nil
			})
		},
	}

	return cmd
}

// newProfileRenameCommand creates the profile rename subcommand
func newProfileRenameCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <new-name>",
		Short: "Rename the selected profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				if _, err := a.send(ctx, &commands.RenameProfileCommand{ProfileRef: ref, NewName: args[0]}); err != nil {
					return fmt.Errorf("failed to rename profile: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✓ Profile renamed to %s\n", args[0])
				return nil
			})
		},
	}

	return cmd
}

// newProfileDeleteCommand creates the profile delete subcommand
func newProfileDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <profile>",
		Short: "Delete a profile and all of its progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				response, err := a.send(ctx, &commands.DeleteProfileCommand{ProfileRef: args[0]})
				if err != nil {
					return fmt.Errorf("failed to delete profile: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✓ Profile %s deleted\n", response.(*commands.DeleteProfileResponse).ProfileID)
				return nil
			})
		},
	}

	return cmd
}

// newProfileUseCommand creates the profile use subcommand
func newProfileUseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <profile>",
		Short: "Set the default profile",
		Long: `Set the default profile for commands run without --profile.

The choice is stored in ~/.hideout/config.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				// Verify profile exists in database
				response, err := a.send(ctx, &queries.GetProfileQuery{ProfileRef: args[0]})
				if err != nil {
					return fmt.Errorf("failed to load profile: %w", err)
				}
				name := response.(*queries.GetProfileResponse).Profile.Name

				userConfigHandler, err := config.NewUserConfigHandler()
				if err != nil {
					return fmt.Errorf("failed to create user config handler: %w", err)
				}
				if err := userConfigHandler.SetDefaultProfile(name); err != nil {
					return fmt.Errorf("failed to set default profile: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Default profile set to %s\n", name)
				fmt.Fprintln(out, "Override with --profile.")
				return nil
			})
		},
	}

	return cmd
}

// refFromArgs prefers an explicit positional profile over the defaults
func refFromArgs(a *app, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return resolveProfileRef(a.cfg)
}
