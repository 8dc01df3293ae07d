package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/clinic/internal/clinic/app"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

func newEvidenceCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evidence",
		Short: "Read or drop evidence cache entries",
	}
	cmd.AddCommand(newEvidenceGetCommand(opts), newEvidenceInvalidateCommand(opts))
	return cmd
}

// withEvidence opens the store and the configured evidence service for the
// duration of fn.
func withEvidence(cmd *cobra.Command, opts *options, fn func(svc *service.EvidenceService) error) error {
	st, err := app.OpenStore(opts.cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	logger := opts.logger(cmd)
	cmd.SetContext(slogx.WithContext(cmd.Context(), logger))

	svc, closer, err := app.NewEvidenceService(cmd.Context(), opts.cfg, st, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closer() }()

	return fn(svc)
}

func newEvidenceGetCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <intervention-type>",
		Short: "Print evidence for an intervention type, fetching it on a miss",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEvidence(cmd, opts, func(svc *service.EvidenceService) error {
				e, cached, err := svc.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(clinicsdk.EvidenceResponse{
					InterventionType: e.InterventionType,
					Summary:          e.Summary,
					Evidence:         e.Evidence,
					FetchedAt:        e.FetchedAt,
					ExpiresAt:        e.ExpiresAt,
					Cached:           cached,
				})
			})
		},
	}
}

func newEvidenceInvalidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <intervention-type>",
		Short: "Drop the cached entry for an intervention type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEvidence(cmd, opts, func(svc *service.EvidenceService) error {
				if err := svc.Invalidate(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "invalidated %s\n", args[0])
				return nil
			})
		},
	}
}
