package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
)

type evidenceRepo struct {
	db dbtx
}

func (r *evidenceRepo) GetEvidence(ctx context.Context, interventionType string, now time.Time) (domain.EvidenceEntry, error) {
	var e domain.EvidenceEntry
	err := r.db.QueryRowContext(ctx, `
		SELECT intervention_type, summary, evidence, fetched_at, expires_at
		FROM evidence_cache
		WHERE intervention_type = ? AND expires_at > ?`, interventionType, now.UTC()).
		Scan(&e.InterventionType, &e.Summary, &e.Evidence, &e.FetchedAt, &e.ExpiresAt)
	if err != nil {
		return domain.EvidenceEntry{}, mapNotFound(err)
	}
	e.FetchedAt = e.FetchedAt.UTC()
	e.ExpiresAt = e.ExpiresAt.UTC()
	return e, nil
}

func (r *evidenceRepo) PutEvidence(ctx context.Context, e domain.EvidenceEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO evidence_cache (intervention_type, summary, evidence, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (intervention_type) DO UPDATE SET
			summary = excluded.summary,
			evidence = excluded.evidence,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at`,
		e.InterventionType, e.Summary, e.Evidence, e.FetchedAt.UTC(), e.ExpiresAt.UTC())
	return err
}

func (r *evidenceRepo) DeleteEvidence(ctx context.Context, interventionType string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM evidence_cache WHERE intervention_type = ?`, interventionType)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *evidenceRepo) DeleteExpiredEvidence(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM evidence_cache WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *evidenceRepo) TrimEvidence(ctx context.Context, maxEntries int) (int64, error) {
	if maxEntries <= 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM evidence_cache WHERE intervention_type IN (
			SELECT intervention_type FROM evidence_cache
			ORDER BY fetched_at DESC, intervention_type
			LIMIT -1 OFFSET ?
		)`, maxEntries)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
