// Package cli implements clinicctl, the operator tool for the clinic
// service: database checks, migrations, demo data, analytics exports,
// evidence cache maintenance and a smoke test against a running server.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/clinic/internal/clinic/app"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

type options struct {
	cfg app.Config
}

// NewRootCommand builds clinicctl. Configuration starts from the same
// environment the server reads, then flags override it.
func NewRootCommand() *cobra.Command {
	opts := &options{cfg: app.LoadConfig()}

	cmd := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Operate a clinic records database and service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.cfg.DatabaseFile, "db", opts.cfg.DatabaseFile, "SQLite database file")
	cmd.PersistentFlags().StringVar(&opts.cfg.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.cfg.LogFormat, "log-format", "text", "log format (json, text)")

	cmd.AddCommand(
		newPingCommand(opts),
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newAnalyticsCommand(opts),
		newEvidenceCommand(opts),
		newSmokeCommand(),
	)
	return cmd
}

// logger writes to stderr so command output on stdout stays parseable.
func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	var out io.Writer = cmd.ErrOrStderr()
	return slogx.New(slogx.Config{
		Service: "clinicctl",
		Version: app.BuildVersion,
		Env:     o.cfg.Env,
		Level:   o.cfg.LogLevel,
		Format:  o.cfg.LogFormat,
		Output:  out,
	})
}
