package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/report"
	"github.com/blueprintkit/blueprintkit/internal/adapters/outbound/tui"
	"github.com/blueprintkit/blueprintkit/internal/application"
	"github.com/blueprintkit/blueprintkit/internal/domain"
	"github.com/blueprintkit/blueprintkit/internal/logging"
)

func newValidateCmd() *cobra.Command {
	var (
		src         sourceFlags
		jsonOutput  bool
		markdown    bool
		output      string
		ciMode      bool
		minScore    int
		badge       bool
		showHistory bool
		strict      bool
		timeout     time.Duration
		noRecord    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [path|archive|url]",
		Short: "Validate a project and print its scores",
		Long: "Detect the technology stack of a project directory, archive or git repository, " +
			"score its security, quality and architecture, and list recommendations.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := src.request(args)
			if err != nil {
				return err
			}
			req.Strict = strict
			req.Timeout = timeout
			req.Record = !noRecord

			svc, err := newService()
			if err != nil {
				return err
			}

			if showHistory {
				if req.Kind != application.SourceDirectory {
					return fmt.Errorf("--history needs a project directory")
				}
				entries, err := svc.History(req.Location)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
				return nil
			}

			run, err := svc.ValidateSource(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			result := run.Result

			switch {
			case jsonOutput:
				err = writeOutput(cmd, output, func(w io.Writer) error { return renderJSON(w, result) })
			case markdown || output != "":
				md, rerr := svc.RenderReport(result, domain.ReportOptions{ProjectName: projectName(req.Location)})
				if rerr != nil {
					return rerr
				}
				err = writeOutput(cmd, output, func(w io.Writer) error { return renderMarkdown(w, md) })
			case badge:
				renderBadge(cmd.OutOrStdout(), result)
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(result, run.Config.MaxRecommendations))
			}
			if err != nil {
				return err
			}

			if ciMode && result.Overall < minScore {
				return fmt.Errorf("score %d is below minimum %d", result.Overall, minScore)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&src.git, "git", false, "Treat the argument as a git repository URL and clone it in memory")
	cmd.Flags().BoolVar(&src.archive, "archive", false, "Treat the argument as a .zip, .tar or .tar.gz archive")
	cmd.Flags().StringVar(&src.configDir, "config-dir", "", "Directory holding .blueprintkit.yaml (defaults to the project directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Output the markdown report")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if below --min")
	cmd.Flags().IntVar(&minScore, "min", 0, "Minimum overall score for CI mode")
	cmd.Flags().BoolVar(&badge, "badge", false, "Output shields.io badge URL")
	cmd.Flags().BoolVar(&showHistory, "history", false, "Show validation history")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of skipping files that exceed the caps")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort validation after this long (e.g. 30s)")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "Do not append this run to the project history")

	return cmd
}

// writeOutput sends rendered output to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, render func(io.Writer) error) error {
	if path == "" {
		return render(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

func renderJSON(w io.Writer, result *domain.ValidationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// renderMarkdown styles the report with glamour on a terminal and writes it
// raw everywhere else.
func renderMarkdown(w io.Writer, md string) error {
	if logging.IsTerminal(w) {
		styled, err := report.RenderTerminal(md, 100)
		if err == nil {
			md = styled
		}
	}
	_, err := io.WriteString(w, md)
	return err
}

func renderBadge(w io.Writer, result *domain.ValidationResult) {
	color := domain.BadgeColor(result.Overall)
	url := fmt.Sprintf("https://img.shields.io/badge/blueprintkit-%d%%2F100-%s", result.Overall, color)
	fmt.Fprintln(w, url)
}
