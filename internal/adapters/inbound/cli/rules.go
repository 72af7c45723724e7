package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/tui"
	"github.com/blueprintkit/blueprintkit/internal/domain/rules"
)

func newRulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule tables and the grading scale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rules.Default()
			if err != nil {
				return fmt.Errorf("loading rules: %w", err)
			}
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rules.Tables())
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(set))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the rule tables as JSON")
	return cmd
}
