package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
)

func TestHousekeepingCleanup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	put := func(name string, fetched time.Time, ttl time.Duration) {
		require.NoError(t, s.Evidence().PutEvidence(ctx, domain.EvidenceEntry{
			InterventionType: name,
			Summary:          "s",
			Evidence:         "e",
			FetchedAt:        fetched,
			ExpiresAt:        fetched.Add(ttl),
		}))
	}

	put("expired", now.Add(-3*time.Hour), time.Hour)
	for i := range 4 {
		put(fmt.Sprintf("live-%d", i), now.Add(-time.Duration(i)*time.Minute), 24*time.Hour)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hk := service.NewHousekeepingService(s, logger, time.Hour, 2)
	hk.Cleanup(ctx)

	_, err := s.Evidence().GetEvidence(ctx, "expired", now.Add(-3*time.Hour))
	require.ErrorIs(t, err, store.ErrNotFound, "expired rows are deleted outright")

	for i, want := range []bool{true, true, false, false} {
		_, err := s.Evidence().GetEvidence(ctx, fmt.Sprintf("live-%d", i), now)
		if want {
			require.NoError(t, err)
		} else {
			require.True(t, errors.Is(err, store.ErrNotFound))
		}
	}
}

func TestHousekeepingStartStop(t *testing.T) {
	s := newTestStore(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hk := service.NewHousekeepingService(s, logger, 0, 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	done := make(chan struct{})
	go func() {
		hk.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("housekeeping did not stop")
	}
}

func TestHousekeepingStopWithoutStart(t *testing.T) {
	s := newTestStore(t)
	hk := service.NewHousekeepingService(s, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute, 0)

	require.NotPanics(t, func() {
		hk.Stop()
		hk.Stop()
	})
}
