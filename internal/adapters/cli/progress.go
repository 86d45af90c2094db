package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/hideout-go/internal/application/progress/commands"
	"github.com/andrescamacho/hideout-go/internal/application/progress/queries"
)

// NewProgressCommand creates the progress command with subcommands
func NewProgressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Export, import and reset profile progress",
		Long: `Export, import and reset profile progress.

Export documents are JSON and carry a schema version. Older documents are
migrated on import.

Examples:
  hideout progress export --out main.json
  hideout progress import main.json --name restored
  hideout progress import main.json --overwrite
  hideout progress reset --yes`,
	}

	cmd.AddCommand(newProgressExportCommand())
	cmd.AddCommand(newProgressImportCommand())
	cmd.AddCommand(newProgressResetCommand())

	return cmd
}

// newProgressExportCommand creates the progress export subcommand
func newProgressExportCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected profile as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &queries.ExportProgressQuery{ProfileRef: ref})
				if err != nil {
					return fmt.Errorf("failed to export progress: %w", err)
				}

				data, err := json.MarshalIndent(response.(*queries.ExportProgressResponse).Document, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode export: %w", err)
				}

				if outPath == "" {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return err
				}
				if err := os.WriteFile(outPath, data, 0644); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Progress exported to %s\n", outPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to file instead of stdout")

	return cmd
}

// newProgressImportCommand creates the progress import subcommand
func newProgressImportCommand() *cobra.Command {
	var (
		name      string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a profile from an export document",
		Long: `Import a profile from an export document.

Importing a profile that already exists fails unless --overwrite is given.
Use --name to import under a different name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			return withApp(func(ctx context.Context, a *app) error {
				response, err := a.send(ctx, &commands.ImportProgressCommand{
					Data:        data,
					ProfileName: name,
					Overwrite:   overwrite,
				})
				if err != nil {
					return fmt.Errorf("failed to import progress: %w", err)
				}

				result := response.(*commands.ImportProgressResponse)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "✓ Imported profile %s\n", result.Profile.Name())
				fmt.Fprintf(out, "  Schema version: %d\n", result.SchemaVersion)
				if result.Replaced {
					fmt.Fprintln(out, "  Replaced the existing profile.")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Import under this profile name")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing profile")

	return cmd
}

// newProgressResetCommand creates the progress reset subcommand
func newProgressResetCommand() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the selected profile to a fresh start",
		Long: `Reset station levels, items and completed requirements of the selected
profile. The edition is kept and its starting levels are re-applied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to reset without --yes")
			}

			return withApp(func(ctx context.Context, a *app) error {
				ref, err := resolveProfileRef(a.cfg)
				if err != nil {
					return err
				}

				response, err := a.send(ctx, &commands.ResetProgressCommand{ProfileRef: ref})
				if err != nil {
					return fmt.Errorf("failed to reset progress: %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✓ Progress of %s reset\n", response.(*commands.ResetProgressResponse).Profile.Name())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm the reset")

	return cmd
}
