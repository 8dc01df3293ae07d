package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

type scalesRepo struct {
	db dbtx
}

const scaleColumns = `scale_id, name, abbreviation, category, description, item_count,
	min_score, max_score, scoring_notes`

func scanScale(row scanner) (domain.AssessmentScale, error) {
	var s domain.AssessmentScale
	err := row.Scan(&s.ID, &s.Name, &s.Abbreviation, &s.Category, &s.Description, &s.ItemCount,
		&s.MinScore, &s.MaxScore, &s.ScoringNotes)
	return s, err
}

func (r *scalesRepo) ListScales(ctx context.Context, category string) ([]domain.AssessmentScale, error) {
	query := `SELECT ` + scaleColumns + ` FROM assessment_scales`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, strings.ToLower(category))
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.AssessmentScale{}
	for rows.Next() {
		s, err := scanScale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *scalesRepo) GetScaleByID(ctx context.Context, id string) (domain.AssessmentScale, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scaleColumns+` FROM assessment_scales WHERE scale_id = ?`, id)
	s, err := scanScale(row)
	if err != nil {
		return domain.AssessmentScale{}, mapNotFound(err)
	}
	return s, nil
}

func (r *scalesRepo) GetScaleByAbbreviation(ctx context.Context, abbr string) (domain.AssessmentScale, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+scaleColumns+` FROM assessment_scales WHERE abbreviation = ? COLLATE NOCASE`, abbr)
	s, err := scanScale(row)
	if err != nil {
		return domain.AssessmentScale{}, mapNotFound(err)
	}
	return s, nil
}

func (r *scalesRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM assessment_scales ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
