package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/clinic/internal/clinic/app"
	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/evidence"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"CLINIC_JWT_SECRET", "CLINIC_JWT_SECRET_FILE", "PORT", "EVIDENCE_CACHE_BACKEND", "CLINIC_TOKEN_TTL", "ENV"} {
		t.Setenv(k, "")
	}

	cfg := app.LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, 10, cfg.BcryptCost)
	require.Equal(t, app.EvidenceBackendSQLite, cfg.EvidenceBackend)
	require.Equal(t, 24*time.Hour, cfg.EvidenceTTL)
	require.Empty(t, cfg.JWTSecret)
	require.Equal(t, "dev", cfg.Env)
	require.True(t, cfg.DevLike())
}

func TestLoadConfigOverrides(t *testing.T) {
	secretFile := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(secretFile, []byte("  from-a-file-0123456789abcdef0123456789\n"), 0o600))

	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg app.Config)
	}{
		{
			name: "durations accept bare minutes",
			env:  map[string]string{"HOUSEKEEPING_INTERVAL": "15", "EVIDENCE_CACHE_TTL": "2h"},
			check: func(t *testing.T, cfg app.Config) {
				require.Equal(t, 15*time.Minute, cfg.HousekeepingInterval)
				require.Equal(t, 2*time.Hour, cfg.EvidenceTTL)
			},
		},
		{
			name: "garbage falls back to defaults",
			env:  map[string]string{"PORT": "eighty", "OTEL_HTTP_ENABLED": "maybe"},
			check: func(t *testing.T, cfg app.Config) {
				require.Equal(t, 8080, cfg.Port)
				require.False(t, cfg.OTelHTTP)
			},
		},
		{
			name: "backend is case insensitive",
			env:  map[string]string{"EVIDENCE_CACHE_BACKEND": "Redis", "REDIS_ADDR": "cache:6379"},
			check: func(t *testing.T, cfg app.Config) {
				require.Equal(t, app.EvidenceBackendRedis, cfg.EvidenceBackend)
				require.Equal(t, "cache:6379", cfg.RedisAddr)
			},
		},
		{
			name: "secret file is read when the variable is unset",
			env:  map[string]string{"CLINIC_JWT_SECRET": "", "CLINIC_JWT_SECRET_FILE": secretFile},
			check: func(t *testing.T, cfg app.Config) {
				require.Equal(t, "from-a-file-0123456789abcdef0123456789", cfg.JWTSecret)
			},
		},
		{
			name: "rate limits come from the environment",
			env:  map[string]string{"RATELIMIT_STRICT_REQUESTS": "1000", "RATELIMIT_STRICT_BURST": "50"},
			check: func(t *testing.T, cfg app.Config) {
				require.Equal(t, 1000, cfg.RateLimits.Strict.RequestsPerWindow)
				require.Equal(t, 50, cfg.RateLimits.Strict.Burst)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, app.LoadConfig())
		})
	}
}

func testConfig(t *testing.T) app.Config {
	t.Helper()

	cfg := app.LoadConfig()
	cfg.Env = "test"
	cfg.LogLevel = "error"
	cfg.DatabaseFile = filepath.Join(t.TempDir(), "clinic.db")
	cfg.JWTSecret = ""
	cfg.BcryptCost = 4
	cfg.EvidenceBackend = app.EvidenceBackendSQLite
	cfg.SummaryURL = ""
	cfg.EvidenceURL = ""
	cfg.OTelHTTP = true
	cfg.ShutdownGracePeriod = time.Second
	return cfg
}

func TestNewServesHealth(t *testing.T) {
	cfg := testConfig(t)

	application, err := app.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"database":"ok"`)
}

func TestNewRejectsMissingSecretOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "prod"

	_, err := app.New(cfg)
	require.Error(t, err)
}

func TestNewEvidenceServiceBackends(t *testing.T) {
	ctx := context.Background()
	st, err := app.OpenStore(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	t.Run("sqlite with static providers", func(t *testing.T) {
		cfg := testConfig(t)
		svc, closer, err := app.NewEvidenceService(ctx, cfg, st, slogx.Discard())
		require.NoError(t, err)
		t.Cleanup(func() { _ = closer() })

		require.IsType(t, &evidence.SQLiteCache{}, svc.Cache)
		require.Equal(t, evidence.StaticSummary, svc.Summary)
		require.Greater(t, svc.FetchTimeout, cfg.ProviderTimeout)

		e, cached, err := svc.Get(ctx, "CBT")
		require.NoError(t, err)
		require.False(t, cached)
		require.Equal(t, "Summary for CBT", e.Summary)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := testConfig(t)
		cfg.EvidenceBackend = app.EvidenceBackendRedis
		cfg.RedisAddr = mr.Addr()
		cfg.SummaryURL = "http://summary.invalid"

		svc, closer, err := app.NewEvidenceService(ctx, cfg, st, slogx.Discard())
		require.NoError(t, err)
		t.Cleanup(func() { _ = closer() })

		require.IsType(t, &evidence.RedisCache{}, svc.Cache)
		require.IsType(t, &evidence.HTTPLookup{}, svc.Summary)

		require.NoError(t, svc.Cache.Put(ctx, domain.EvidenceEntry{
			InterventionType: "DBT",
			Summary:          "s",
			Evidence:         "e",
			FetchedAt:        time.Now(),
			ExpiresAt:        time.Now().Add(time.Hour),
		}))
		_, cached, err := svc.Get(ctx, "DBT")
		require.NoError(t, err)
		require.True(t, cached)
	})

	t.Run("redis without address", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.EvidenceBackend = app.EvidenceBackendRedis
		cfg.RedisAddr = ""

		_, _, err := app.NewEvidenceService(ctx, cfg, st, slogx.Discard())
		require.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.EvidenceBackend = "memcached"

		_, _, err := app.NewEvidenceService(ctx, cfg, st, slogx.Discard())
		require.ErrorContains(t, err, "memcached")
	})
}
