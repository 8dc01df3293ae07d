package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/clinic/internal/clinic/report"
	"github.com/aussiebroadwan/clinic/internal/clinic/store/drivers/sqlite"
)

func newAnalyticsCommand(opts *options) *cobra.Command {
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Export record counts as JSON or an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			if f == report.FormatXLSX && outPath == "-" {
				return fmt.Errorf("xlsx output needs --out <file>")
			}

			st, err := sqlite.NewStore("file:" + opts.cfg.DatabaseFile)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = st.Close() }()

			r, err := st.Analytics().Report(cmd.Context(), time.Now().UTC())
			if err != nil {
				return fmt.Errorf("build report: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "-" {
				file, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer func() { _ = file.Close() }()
				w = file
			}

			if err := report.Write(w, f, r); err != nil {
				return err
			}
			if outPath != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s report to %s\n", f, outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(report.FormatJSON), "output format (json, xlsx)")
	cmd.Flags().StringVar(&outPath, "out", "-", "output file, - for stdout")
	return cmd
}
