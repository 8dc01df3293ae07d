package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/clinic/internal/clinic/app"
	"github.com/aussiebroadwan/clinic/internal/clinic/store/drivers/sqlite"
)

func newPingCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check the database connection and print record counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, err := sqlite.NewStore("file:" + opts.cfg.DatabaseFile)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = st.Close() }()

			start := time.Now()
			if err := st.Ping(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "connected to %s in %s\n", opts.cfg.DatabaseFile, time.Since(start).Round(time.Microsecond))

			r, err := st.Analytics().Report(ctx, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("count records (run clinicctl migrate first?): %w", err)
			}
			fmt.Fprintf(out, "therapists:       %d\n", r.Therapists)
			fmt.Fprintf(out, "clinics:          %d\n", r.Clinics)
			fmt.Fprintf(out, "patients:         %d\n", r.Patients)
			fmt.Fprintf(out, "scenarios:        %d\n", r.Scenarios)
			fmt.Fprintf(out, "interventions:    %d\n", r.Interventions)
			fmt.Fprintf(out, "evidence entries: %d\n", r.EvidenceEntries)
			return nil
		},
	}
}

func newMigrateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := app.OpenStore(opts.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s\n", opts.cfg.DatabaseFile)
			return nil
		},
	}
}
