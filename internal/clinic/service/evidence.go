package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

// DefaultEvidenceTTL is used when EvidenceService.TTL is zero.
const DefaultEvidenceTTL = 24 * time.Hour

// DefaultFetchTimeout bounds a shared provider fetch when
// EvidenceService.FetchTimeout is zero.
const DefaultFetchTimeout = 30 * time.Second

var ErrInvalidInterventionType = errors.New("invalid_intervention_type")

// EvidenceCache stores evidence entries keyed by intervention type. Get
// reports a miss with ok=false rather than an error.
type EvidenceCache interface {
	Get(ctx context.Context, interventionType string) (entry domain.EvidenceEntry, ok bool, err error)
	Put(ctx context.Context, entry domain.EvidenceEntry) error
	Delete(ctx context.Context, interventionType string) error
}

// Lookup fetches text about an intervention type from an external provider.
type Lookup interface {
	Lookup(ctx context.Context, interventionType string) (string, error)
}

// EvidenceService is a read-through cache in front of two lookups: a narrative
// summary and research evidence. Concurrent misses for the same type share a
// single fetch.
type EvidenceService struct {
	Cache    EvidenceCache
	Summary  Lookup
	Evidence Lookup
	TTL      time.Duration

	// FetchTimeout bounds a provider fetch. The fetch is detached from the
	// request that started it, so waiters sharing it are not failed when that
	// client goes away.
	FetchTimeout time.Duration

	// Now is overridable in tests.
	Now func() time.Time

	group singleflight.Group
}

func (s *EvidenceService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *EvidenceService) fetchTimeout() time.Duration {
	if s.FetchTimeout <= 0 {
		return DefaultFetchTimeout
	}
	return s.FetchTimeout
}

func (s *EvidenceService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultEvidenceTTL
	}
	return s.TTL
}

// Get returns the cached entry for interventionType, fetching and caching it on
// a miss. cached reports whether the entry came from the cache.
func (s *EvidenceService) Get(ctx context.Context, interventionType string) (domain.EvidenceEntry, bool, error) {
	interventionType = strings.TrimSpace(interventionType)
	if interventionType == "" {
		return domain.EvidenceEntry{}, false, ErrInvalidInterventionType
	}
	log := slogx.FromContext(ctx)

	entry, ok, err := s.Cache.Get(ctx, interventionType)
	if err != nil {
		log.Warn("evidence cache read failed", slog.String("intervention_type", interventionType), slog.Any("error", err))
	} else if ok && !entry.Expired(s.now()) {
		return entry, true, nil
	}

	ch := s.group.DoChan(interventionType, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout())
		defer cancel()
		return s.fetch(fctx, interventionType)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.EvidenceEntry{}, false, res.Err
		}
		return res.Val.(domain.EvidenceEntry), false, nil
	case <-ctx.Done():
		return domain.EvidenceEntry{}, false, ctx.Err()
	}
}

func (s *EvidenceService) fetch(ctx context.Context, interventionType string) (domain.EvidenceEntry, error) {
	var summary, evidence string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.Summary.Lookup(gctx, interventionType)
		if err != nil {
			return fmt.Errorf("summary lookup: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		evidence, err = s.Evidence.Lookup(gctx, interventionType)
		if err != nil {
			return fmt.Errorf("evidence lookup: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.EvidenceEntry{}, err
	}

	now := s.now()
	entry := domain.EvidenceEntry{
		InterventionType: interventionType,
		Summary:          summary,
		Evidence:         evidence,
		FetchedAt:        now,
		ExpiresAt:        now.Add(s.ttl()),
	}

	if err := s.Cache.Put(ctx, entry); err != nil {
		slogx.FromContext(ctx).Warn("evidence cache write failed",
			slog.String("intervention_type", interventionType),
			slog.Any("error", err),
		)
	}
	return entry, nil
}

// Invalidate drops the cached entry. Missing entries are not an error.
func (s *EvidenceService) Invalidate(ctx context.Context, interventionType string) error {
	interventionType = strings.TrimSpace(interventionType)
	if interventionType == "" {
		return ErrInvalidInterventionType
	}
	if err := s.Cache.Delete(ctx, interventionType); err != nil {
		return fmt.Errorf("invalidate evidence: %w", err)
	}
	slogx.FromContext(ctx).Info("evidence invalidated", slog.String("intervention_type", interventionType))
	return nil
}
