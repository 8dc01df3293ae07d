package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/clinic/internal/clinic/app"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/cryptox"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

func newSeedCommand(opts *options) *cobra.Command {
	seed := service.SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo data (safe to run repeatedly)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			generated := seed.Password == ""
			if generated {
				pw, err := cryptox.GeneratePassword()
				if err != nil {
					return err
				}
				seed.Password = pw
			}
			seed.Email = clinicsdk.NormalizeEmail(seed.Email)

			st, err := app.OpenStore(opts.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ctx := slogx.WithContext(cmd.Context(), opts.logger(cmd))
			seeder := &service.Seeder{Store: st, BcryptCost: opts.cfg.BcryptCost}
			res, err := seeder.Seed(ctx, seed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "therapist %s <%s>\n", res.TherapistID, seed.Email)
			if generated && res.TherapistCreated {
				fmt.Fprintf(out, "password  %s\n", seed.Password)
			}
			fmt.Fprintf(out, "clinic    %s\n", res.ClinicID)
			fmt.Fprintf(out, "created %d patients, %d interventions\n", res.Patients, res.Interventions)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&seed.Email, "email", "demo@clinic.local", "demo therapist email")
	f.StringVar(&seed.Password, "password", "", "demo therapist password (generated and printed when empty)")
	f.StringVar(&seed.FirstName, "first-name", "Demo", "demo therapist first name")
	f.StringVar(&seed.LastName, "last-name", "Therapist", "demo therapist last name")
	f.StringVar(&seed.ClinicName, "clinic", "Demo Clinic", "clinic name")
	f.IntVar(&seed.Patients, "patients", 3, "number of demo patients")
	f.IntVar(&seed.Interventions, "interventions", 20, "number of random interventions")
	return cmd
}
