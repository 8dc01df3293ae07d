package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	httpapi "github.com/aussiebroadwan/clinic/internal/clinic/http"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/pkg/jwtx"
)

// Application encapsulates the clinic service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db            store.Store
	verifier      jwtx.Verifier
	closeEvidence func() error

	authService         *service.AuthService
	mfaService          *service.MFAService
	clinicService       *service.ClinicService
	patientService      *service.PatientService
	scenarioService     *service.ScenarioService
	scaleService        *service.ScaleService
	interventionService *service.InterventionService
	evidenceService     *service.EvidenceService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with every dependency initialised.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg, "clinic-service"),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wrapped HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.server.Handler
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("clinic service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops background work and closes the
// database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down clinic service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.closeEvidence(); err != nil {
		app.logger.Error("error closing evidence cache", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("clinic service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := OpenStore(app.cfg)
	if err != nil {
		return err
	}
	app.db = db

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initServices() error {
	signer, verifier, err := NewSigner(app.cfg, app.logger)
	if err != nil {
		return err
	}
	app.verifier = verifier

	app.authService = &service.AuthService{
		Store:      app.db,
		Signer:     signer,
		Issuer:     app.cfg.Issuer,
		TokenTTL:   app.cfg.TokenTTL,
		BcryptCost: app.cfg.BcryptCost,
	}
	app.mfaService = &service.MFAService{
		Store:  app.db,
		Issuer: app.cfg.MFAIssuer,
	}
	app.clinicService = &service.ClinicService{Store: app.db}
	app.patientService = &service.PatientService{Store: app.db}
	app.scenarioService = &service.ScenarioService{Store: app.db}
	app.scaleService = &service.ScaleService{Store: app.db}
	app.interventionService = &service.InterventionService{Store: app.db}

	evidenceService, closer, err := NewEvidenceService(context.Background(), app.cfg, app.db, app.logger)
	if err != nil {
		return err
	}
	app.evidenceService = evidenceService
	app.closeEvidence = closer

	// Redis expires its own keys; only the SQLite cache needs pruning.
	maxEntries := 0
	if app.cfg.EvidenceBackend != EvidenceBackendRedis {
		maxEntries = app.cfg.EvidenceMaxEntries
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		maxEntries,
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		app.cfg.RateLimits,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AuthService = app.authService
	router.MFAService = app.mfaService
	router.ClinicService = app.clinicService
	router.PatientService = app.patientService
	router.ScenarioService = app.scenarioService
	router.ScaleService = app.scaleService
	router.InterventionService = app.interventionService
	router.EvidenceService = app.evidenceService
	router.ApplyRoutes()

	app.router = router

	var handler http.Handler = router
	if app.cfg.OTelHTTP {
		handler = otelhttp.NewHandler(router, "clinic-http",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
		app.logger.Info("otel http instrumentation enabled")
	}

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
