package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/clinic/internal/clinic/evidence"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/internal/clinic/store/drivers/sqlite"
	"github.com/aussiebroadwan/clinic/pkg/cryptox"
	"github.com/aussiebroadwan/clinic/pkg/jwtx"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config, service string) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: service,
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// OpenStore opens the SQLite database and applies migrations.
func OpenStore(cfg Config) (*sqlite.Store, error) {
	db, err := sqlite.NewStore("file:" + cfg.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}

// NewSigner returns the HS256 signer and verifier for cfg. Dev and test
// environments get a random secret when none is configured.
func NewSigner(cfg Config, logger *slog.Logger) (*jwtx.HS256Signer, *jwtx.HS256Verifier, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 && cfg.DevLike() {
		tok, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return nil, nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = []byte(tok)
		logger.Warn("CLINIC_JWT_SECRET not set, using an ephemeral secret; sessions will not survive a restart")
	}

	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, nil, fmt.Errorf("jwt signer: %w", err)
	}
	return signer, jwtx.NewVerifierHS256(secret, cfg.Issuer), nil
}

// NewEvidenceService assembles the cache and providers selected by cfg. The
// returned close func releases the Redis client when one was opened.
func NewEvidenceService(ctx context.Context, cfg Config, st store.Store, logger *slog.Logger) (*service.EvidenceService, func() error, error) {
	closer := func() error { return nil }

	var cache service.EvidenceCache
	switch cfg.EvidenceBackend {
	case EvidenceBackendSQLite, "":
		cache = &evidence.SQLiteCache{Store: st, MaxEntries: cfg.EvidenceMaxEntries}
	case EvidenceBackendRedis:
		if cfg.RedisAddr == "" {
			return nil, nil, fmt.Errorf("evidence cache backend redis needs REDIS_ADDR")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		cache = evidence.NewRedisCache(client, cfg.RedisKeyPrefix)
		closer = client.Close
	default:
		return nil, nil, fmt.Errorf("unknown evidence cache backend %q", cfg.EvidenceBackend)
	}

	logger.Info("evidence cache configured",
		slog.String("backend", cfg.EvidenceBackend),
		slog.Duration("ttl", cfg.EvidenceTTL),
	)

	return &service.EvidenceService{
		Cache:    cache,
		Summary:  newLookup(cfg.SummaryURL, cfg.SummaryAPIKey, cfg, evidence.StaticSummary),
		Evidence: newLookup(cfg.EvidenceURL, cfg.EvidenceAPIKey, cfg, evidence.StaticEvidence),
		TTL:      cfg.EvidenceTTL,
		// Every attempt the providers are allowed, plus headroom for the cache write.
		FetchTimeout: cfg.ProviderTimeout*time.Duration(cfg.ProviderRetries+1) + 5*time.Second,
	}, closer, nil
}

func newLookup(url, key string, cfg Config, fallback evidence.StaticLookup) service.Lookup {
	if url == "" {
		return fallback
	}
	return evidence.NewHTTPLookup(evidence.HTTPLookupConfig{
		BaseURL: url,
		APIKey:  key,
		Timeout: cfg.ProviderTimeout,
		Retries: cfg.ProviderRetries,
	})
}
