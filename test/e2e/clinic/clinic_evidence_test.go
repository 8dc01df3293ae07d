//go:build e2e

package clinic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
)

func TestEvidenceCache(t *testing.T) {
	ctx := t.Context()
	client := clinicsdk.NewClient(setupClinicContainer(t, nil))
	sess := registerSession(t, client, "evidence")

	first, err := sess.GetEvidence(ctx, "Mindfulness")
	require.NoError(t, err)
	require.False(t, first.Cached)

	second, err := sess.GetEvidence(ctx, "Mindfulness")
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.Summary, second.Summary)

	_, err = sess.InvalidateEvidence(ctx, "Mindfulness")
	require.NoError(t, err)

	third, err := sess.GetEvidence(ctx, "Mindfulness")
	require.NoError(t, err)
	require.False(t, third.Cached)
}
