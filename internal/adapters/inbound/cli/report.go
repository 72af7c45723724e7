package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/blueprintkit/blueprintkit/internal/domain"
)

func newReportCmd() *cobra.Command {
	var (
		src       sourceFlags
		output    string
		title     string
		timestamp bool
		strict    bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "report [path|archive|url]",
		Short: "Write the markdown validation report",
		Long:  "Validate a project and write the full markdown report, including per-rule evidence and prioritized recommendations.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := src.request(args)
			if err != nil {
				return err
			}
			req.Strict = strict
			req.Timeout = timeout

			svc, err := newService()
			if err != nil {
				return err
			}
			run, err := svc.ValidateSource(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			opts := domain.ReportOptions{ProjectName: title}
			if opts.ProjectName == "" {
				opts.ProjectName = projectName(req.Location)
			}
			if timestamp {
				now := time.Now()
				opts.GeneratedAt = &now
			}
			md, err := svc.RenderReport(run.Result, opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				_, err := io.WriteString(w, md)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&src.git, "git", false, "Treat the argument as a git repository URL")
	cmd.Flags().BoolVar(&src.archive, "archive", false, "Treat the argument as an archive")
	cmd.Flags().StringVar(&src.configDir, "config-dir", "", "Directory holding .blueprintkit.yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Project name used in the report heading")
	cmd.Flags().BoolVar(&timestamp, "timestamp", false, "Include the generation time in the report")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of skipping files that exceed the caps")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort validation after this long")

	return cmd
}
