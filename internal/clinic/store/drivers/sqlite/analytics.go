package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

type analyticsRepo struct {
	db dbtx
}

func (r *analyticsRepo) Report(ctx context.Context, now time.Time) (domain.AnalyticsReport, error) {
	report := domain.AnalyticsReport{GeneratedAt: now.UTC()}

	totals := []struct {
		table string
		dst   *int
	}{
		{"therapists", &report.Therapists},
		{"clinics", &report.Clinics},
		{"patients", &report.Patients},
		{"clinical_scenarios", &report.Scenarios},
		{"interventions", &report.Interventions},
		{"evidence_cache", &report.EvidenceEntries},
	}
	for _, t := range totals {
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+t.table).Scan(t.dst); err != nil {
			return domain.AnalyticsReport{}, fmt.Errorf("count %s: %w", t.table, err)
		}
	}

	var err error
	if report.PatientsByStatus, err = r.groupCount(ctx, "patients", "status"); err != nil {
		return domain.AnalyticsReport{}, err
	}
	if report.ScenariosByType, err = r.groupCount(ctx, "clinical_scenarios", "scenario_type"); err != nil {
		return domain.AnalyticsReport{}, err
	}
	if report.InterventionsByType, err = r.groupCount(ctx, "interventions", "intervention_type"); err != nil {
		return domain.AnalyticsReport{}, err
	}

	return report, nil
}

// groupCount is only called with fixed identifiers from Report.
func (r *analyticsRepo) groupCount(ctx context.Context, table, column string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s, COUNT(*) FROM %s GROUP BY %s ORDER BY %s`, column, table, column, column))
	if err != nil {
		return nil, fmt.Errorf("group %s by %s: %w", table, column, err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		out[key] = count
	}
	return out, rows.Err()
}
