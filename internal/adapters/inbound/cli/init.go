package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/config"
)

func newInitCmd() *cobra.Command {
	var (
		format string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .blueprintkit.yaml configuration file",
		Long:  "Create a .blueprintkit.yaml (or .blueprintkit.toml) holding the default caps and category weights.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			name, err := config.FileFor(format)
			if err != nil {
				return err
			}
			dest := filepath.Join(absPath, name)

			if !force {
				if existing := config.Find(absPath); existing != "" {
					return fmt.Errorf("%s already exists (use --force to overwrite)", filepath.Base(existing))
				}
			}

			content, err := config.Template(format)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Config format (yaml, toml)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
