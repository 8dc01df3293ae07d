package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/clinic/api/clinic" // Swagger docs
	"github.com/aussiebroadwan/clinic/internal/clinic/domain"
	"github.com/aussiebroadwan/clinic/internal/clinic/service"
	"github.com/aussiebroadwan/clinic/internal/clinic/store"
	"github.com/aussiebroadwan/clinic/pkg/clinicsdk"
	"github.com/aussiebroadwan/clinic/pkg/httpx"
	"github.com/aussiebroadwan/clinic/pkg/jwtx"
	"github.com/aussiebroadwan/clinic/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	limits       httpx.RateLimitProfiles
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	AuthService         *service.AuthService
	MFAService          *service.MFAService
	ClinicService       *service.ClinicService
	PatientService      *service.PatientService
	ScenarioService     *service.ScenarioService
	ScaleService        *service.ScaleService
	InterventionService *service.InterventionService
	EvidenceService     *service.EvidenceService
}

func NewRouter(
	verifier jwtx.Verifier,
	limits httpx.RateLimitProfiles,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		limits:       limits,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

// Use appends middleware that runs after the default chain.
func (r *Router) Use(mws ...httpx.Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMFA()
	r.registerClinics()
	r.registerPatients()
	r.registerScenarios()
	r.registerScales()
	r.registerInterventions()
	r.registerEvidence()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	r.Mux.Handle("/", httpx.NotFoundHandler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Clinic Records API
//	@version		0.1.0
//	@description	Multi-tenant clinical records backend: therapist accounts, clinics, patients,
//	@description	clinical scenarios, assessment scales, interventions and an evidence cache.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/clinic
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				HS256 session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with authentication, the permission check and a per
// therapist rate limit.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig, perms ...domain.Permission) http.Handler {
	mws := []httpx.Middleware{httpx.AuthnMiddleware(r.verifier)}
	if len(perms) > 0 {
		mws = append(mws, httpx.RequirePermission(perms...))
	}
	mws = append(mws, httpx.RateLimitByTherapist(limit))
	return httpx.Chain(h, mws...)
}

func route(method, path string) string {
	return method + " " + clinicsdk.APIPrefix + path
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints are limited by IP and submitted email.
	r.Mux.Handle(route("POST", "/auth/register"),
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIPAndJSONField(r.limits.Strict, "email"),
		),
	)
	r.Mux.Handle(route("POST", "/auth/login"),
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.limits.Strict, "email"),
		),
	)
	r.Mux.Handle(route("POST", "/auth/logout"),
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle(route("GET", "/auth/me"), r.secured(h.HandleMe, r.limits.Lenient))
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.Mux.Handle(route("POST", "/auth/mfa/totp/enroll"), r.secured(h.HandleEnroll, r.limits.Moderate))
	// Code checks get the strict profile to slow down guessing.
	r.Mux.Handle(route("POST", "/auth/mfa/totp/verify"), r.secured(h.HandleVerify, r.limits.Strict))
	r.Mux.Handle(route("DELETE", "/auth/mfa/totp"), r.secured(h.HandleDisable, r.limits.Strict))
}

func (r *Router) registerClinics() {
	h := &ClinicHandler{ClinicService: r.ClinicService}

	r.Mux.Handle(route("POST", "/clinics"), r.secured(h.HandleCreate, r.limits.Moderate, domain.PermClinicsWrite))
	r.Mux.Handle(route("GET", "/clinics"), r.secured(h.HandleList, r.limits.Lenient, domain.PermClinicsRead))
	r.Mux.Handle(route("GET", "/clinics/{id}"), r.secured(h.HandleGet, r.limits.Lenient, domain.PermClinicsRead))
	r.Mux.Handle(route("PUT", "/clinics/{id}"), r.secured(h.HandleUpdate, r.limits.Moderate, domain.PermClinicsWrite))
}

func (r *Router) registerPatients() {
	h := &PatientHandler{PatientService: r.PatientService, ScenarioService: r.ScenarioService}

	r.Mux.Handle(route("POST", "/patients"), r.secured(h.HandleCreate, r.limits.Moderate, domain.PermPatientsWrite))
	r.Mux.Handle(route("GET", "/patients"), r.secured(h.HandleList, r.limits.Lenient, domain.PermPatientsRead))
	r.Mux.Handle(route("GET", "/patients/{id}"), r.secured(h.HandleGet, r.limits.Lenient, domain.PermPatientsRead))
	r.Mux.Handle(route("PUT", "/patients/{id}"), r.secured(h.HandleUpdate, r.limits.Moderate, domain.PermPatientsWrite))
	r.Mux.Handle(route("GET", "/patients/{id}/scenarios"),
		r.secured(h.HandleListScenarios, r.limits.Lenient, domain.PermPatientsRead, domain.PermScenariosRead))
}

func (r *Router) registerScenarios() {
	h := &ScenarioHandler{ScenarioService: r.ScenarioService}

	r.Mux.Handle(route("POST", "/scenarios"), r.secured(h.HandleCreate, r.limits.Moderate, domain.PermScenariosWrite))
	r.Mux.Handle(route("GET", "/scenarios/{id}"), r.secured(h.HandleGet, r.limits.Lenient, domain.PermScenariosRead))
	r.Mux.Handle(route("GET", "/scenarios/patient/{id}"), r.secured(h.HandleListByPatient, r.limits.Lenient, domain.PermScenariosRead))
	r.Mux.Handle(route("PUT", "/scenarios/{id}"), r.secured(h.HandleUpdate, r.limits.Moderate, domain.PermScenariosWrite))
}

func (r *Router) registerScales() {
	h := &ScaleHandler{ScaleService: r.ScaleService}

	r.Mux.Handle(route("GET", "/assessment-scales"), r.secured(h.HandleList, r.limits.Lenient, domain.PermScalesRead))
	r.Mux.Handle(route("GET", "/assessment-scales/categories"), r.secured(h.HandleCategories, r.limits.Lenient, domain.PermScalesRead))
	r.Mux.Handle(route("GET", "/assessment-scales/category/{category}"), r.secured(h.HandleListByCategory, r.limits.Lenient, domain.PermScalesRead))
	r.Mux.Handle(route("GET", "/assessment-scales/abbreviation/{abbr}"), r.secured(h.HandleGetByAbbreviation, r.limits.Lenient, domain.PermScalesRead))
	r.Mux.Handle(route("GET", "/assessment-scales/{id}"), r.secured(h.HandleGet, r.limits.Lenient, domain.PermScalesRead))
}

func (r *Router) registerInterventions() {
	h := &InterventionHandler{InterventionService: r.InterventionService}

	r.Mux.Handle(route("POST", "/interventions/quick-log"), r.secured(h.HandleQuickLog, r.limits.Moderate, domain.PermInterventionsWrite))
	r.Mux.Handle(route("GET", "/interventions/recent"), r.secured(h.HandleRecent, r.limits.Lenient, domain.PermInterventionsRead))
}

func (r *Router) registerEvidence() {
	h := &EvidenceHandler{EvidenceService: r.EvidenceService}

	r.Mux.Handle(route("GET", "/evidence/{type}"), r.secured(h.HandleGet, r.limits.Moderate, domain.PermEvidenceRead))
	r.Mux.Handle(route("DELETE", "/evidence/{type}"), r.secured(h.HandleInvalidate, r.limits.Moderate, domain.PermEvidenceWrite))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.store),
			httpx.RateLimitByIP(r.limits.Public),
		),
	)
}
