package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/idx"
)

type smokeOptions struct {
	baseURL  string
	email    string
	password string
	timeout  time.Duration
}

func newSmokeCommand() *cobra.Command {
	so := &smokeOptions{}

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Walk a running server through register, records and reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), so.timeout)
			defer cancel()

			if so.email == "" {
				so.email = "smoke+" + strings.ToLower(idx.New().String()) + "@clinic.test"
			}
			failed := runSmoke(ctx, cmd.OutOrStdout(), clinicsdk.NewClient(so.baseURL), so.email, so.password)
			if failed > 0 {
				return fmt.Errorf("%d smoke step(s) failed", failed)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&so.baseURL, "base-url", "http://localhost:8080", "server base URL")
	f.StringVar(&so.email, "email", "", "therapist email, generated when empty")
	f.StringVar(&so.password, "password", "smoke-test-password", "therapist password")
	f.DurationVar(&so.timeout, "timeout", time.Minute, "overall deadline")
	return cmd
}

// smokeRun prints one line per step. A failed step skips everything that
// depends on it.
type smokeRun struct {
	out    io.Writer
	failed int
}

func (r *smokeRun) step(name string, fn func() error) bool {
	start := time.Now()
	if err := fn(); err != nil {
		r.failed++
		fmt.Fprintf(r.out, "FAIL  %-28s %v\n", name, err)
		return false
	}
	fmt.Fprintf(r.out, "PASS  %-28s %s\n", name, time.Since(start).Round(time.Millisecond))
	return true
}

func runSmoke(ctx context.Context, out io.Writer, client *clinicsdk.Client, email, password string) int {
	r := &smokeRun{out: out}

	r.step("livez", func() error {
		_, err := client.GetLiveness(ctx)
		return err
	})
	r.step("readyz", func() error {
		_, err := client.GetReadiness(ctx)
		return err
	})

	if !r.step("register", func() error {
		_, err := client.Register(ctx, clinicsdk.RegisterRequest{
			Email:     email,
			Password:  password,
			FirstName: "Smoke",
			LastName:  "Test",
		})
		return err
	}) {
		return r.failed
	}

	var sess *clinicsdk.Session
	if !r.step("login", func() error {
		var err error
		sess, err = client.Authenticate(ctx, clinicsdk.LoginRequest{Email: email, Password: password})
		return err
	}) {
		return r.failed
	}

	r.step("me", func() error {
		_, err := sess.Me(ctx)
		return err
	})

	if !r.step("create clinic", func() error {
		_, err := sess.CreateClinic(ctx, clinicsdk.CreateClinicRequest{Name: "Smoke Test Clinic"})
		return err
	}) {
		return r.failed
	}

	var patientID string
	if !r.step("create patient", func() error {
		res, err := sess.CreatePatient(ctx, clinicsdk.CreatePatientRequest{
			Demographics:    &clinicsdk.Demographics{FirstName: "Smoke", LastName: "Patient"},
			ClinicalProfile: &clinicsdk.ClinicalProfile{DSM5Codes: []string{"F41.1"}},
		})
		if err != nil {
			return err
		}
		patientID = res.Patient.PatientID
		return nil
	}) {
		return r.failed
	}

	var scenarioID string
	r.step("create scenario", func() error {
		res, err := sess.CreateScenario(ctx, clinicsdk.CreateScenarioRequest{
			PatientID:          patientID,
			ScenarioType:       "free_text",
			RawInput:           "Persistent worry and poor sleep for six weeks.",
			PresentingProblems: []string{"anxiety", "insomnia"},
		})
		if err != nil {
			return err
		}
		scenarioID = res.Scenario.ScenarioID
		return nil
	})
	if scenarioID != "" {
		r.step("get scenario", func() error {
			_, err := sess.GetScenario(ctx, scenarioID)
			return err
		})
	}

	r.step("list patients", func() error {
		res, err := sess.ListPatients(ctx)
		if err != nil {
			return err
		}
		if res.Count == 0 {
			return fmt.Errorf("expected at least one patient")
		}
		return nil
	})
	r.step("list patient scenarios", func() error {
		_, err := sess.ListPatientScenarios(ctx, patientID)
		return err
	})
	r.step("list assessment scales", func() error {
		res, err := sess.ListScales(ctx, "")
		if err != nil {
			return err
		}
		if res.Count == 0 {
			return fmt.Errorf("no assessment scales seeded")
		}
		return nil
	})
	r.step("quick-log intervention", func() error {
		_, err := sess.QuickLogIntervention(ctx, clinicsdk.QuickLogRequest{
			PatientID:        patientID,
			InterventionType: "CBT",
		})
		return err
	})
	r.step("recent interventions", func() error {
		_, err := sess.RecentInterventions(ctx)
		return err
	})
	r.step("evidence", func() error {
		_, err := sess.GetEvidence(ctx, "CBT")
		return err
	})

	fmt.Fprintf(out, "%d failed\n", r.failed)
	return r.failed
}
