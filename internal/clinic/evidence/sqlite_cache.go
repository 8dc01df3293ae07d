package evidence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

// SQLiteCache keeps entries in the evidence_cache table. After every write
// the table is trimmed to MaxEntries, evicting the oldest fetches.
type SQLiteCache struct {
	Store      store.Store
	MaxEntries int
}

func (c *SQLiteCache) Get(ctx context.Context, interventionType string) (domain.EvidenceEntry, bool, error) {
	e, err := c.Store.Evidence().GetEvidence(ctx, interventionType, time.Now().UTC())
	if errors.Is(err, store.ErrNotFound) {
		return domain.EvidenceEntry{}, false, nil
	}
	if err != nil {
		return domain.EvidenceEntry{}, false, err
	}
	return e, true, nil
}

func (c *SQLiteCache) Put(ctx context.Context, e domain.EvidenceEntry) error {
	if err := c.Store.Evidence().PutEvidence(ctx, e); err != nil {
		return fmt.Errorf("put evidence: %w", err)
	}
	if c.MaxEntries <= 0 {
		return nil
	}

	n, err := c.Store.Evidence().TrimEvidence(ctx, c.MaxEntries)
	if err != nil {
		return fmt.Errorf("trim evidence: %w", err)
	}
	if n > 0 {
		slogx.FromContext(ctx).Debug("evidence cache trimmed", slog.Int64("evicted", n))
	}
	return nil
}

func (c *SQLiteCache) Delete(ctx context.Context, interventionType string) error {
	err := c.Store.Evidence().DeleteEvidence(ctx, interventionType)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}
