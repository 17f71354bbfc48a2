// Package api implements the HTTP layer for Career Compass. Handlers
// are methods on *Server. Each handler file is responsible for one
// resource group and only imports the dependencies it actually uses.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/compasslabs/career-compass-backend/internal/assessment"
	"github.com/compasslabs/career-compass-backend/internal/db"
	"github.com/compasslabs/career-compass-backend/internal/email"
	"github.com/compasslabs/career-compass-backend/internal/metrics"
	"github.com/compasslabs/career-compass-backend/internal/store"
	stripeinternal "github.com/compasslabs/career-compass-backend/internal/stripe"
	"github.com/compasslabs/career-compass-backend/internal/worker"
)

// Config holds values read from environment variables at startup.
type Config struct {
	// BaseURL is used to construct the report access link in emails.
	// e.g. "https://app.careercompass.co.za"
	BaseURL string

	// AllowedOrigins is the CORS allow-list for browser clients.
	AllowedOrigins []string

	// StripeWebhookSecret is the signing secret from the Stripe dashboard.
	StripeWebhookSecret string

	// ReportPriceCents is the price of a full career report.
	ReportPriceCents int64

	// Env is "production", "staging", or "development".
	Env string
}

// Server holds all shared dependencies. Each handler file attaches methods to
// this type and uses only the fields it needs.
type Server struct {
	// q handles all single-query reads. Injected directly — no repo wrapper.
	q db.Querier

	// store handles multi-step atomic writes.
	store *store.Store

	// catalog holds the validated assessment definitions.
	catalog *assessment.Catalog

	// stripe creates PaymentIntents and verifies webhook signatures.
	stripe stripeinternal.Client

	// worker enqueues report jobs after payment confirmation.
	worker worker.Enqueuer

	// mailer sends transactional emails (receipt + report delivery).
	mailer email.Sender

	metrics *metrics.Metrics
	cfg     Config
	logger  *slog.Logger
}

// NewServer constructs the Server and wires the chi router. The returned
// http.Handler is ready to pass to http.ListenAndServe.
func NewServer(
	q db.Querier,
	st *store.Store,
	catalog *assessment.Catalog,
	stripeClient stripeinternal.Client,
	enqueuer worker.Enqueuer,
	mailer email.Sender,
	m *metrics.Metrics,
	cfg Config,
	logger *slog.Logger,
) http.Handler {
	s := &Server{
		q:       q,
		store:   st,
		catalog: catalog,
		stripe:  stripeClient,
		worker:  enqueuer,
		mailer:  mailer,
		metrics: m,
		cfg:     cfg,
		logger:  logger,
	}

	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggerMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Anon-Token", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))
	r.Use(middleware.Timeout(30 * time.Second))

	// ── Health & metrics ──────────────────────────────────────────────────────
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// ── API v1 ────────────────────────────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {

		// Assessment catalog — public, static.
		r.Get("/assessments", s.handleListAssessments)
		r.Get("/assessments/{assessmentType}", s.handleGetAssessment)
		r.Get("/pilot/questions", s.handlePilotQuestions)

		// Sessions — no auth required (anonymous creation).
		r.Post("/session", s.handleCreateSession)

		// Session-scoped routes — require valid anon_token header.
		r.Route("/session/{sessionID}", func(r chi.Router) {
			r.Use(s.requireAnonToken)
			r.Patch("/profile", s.handleUpdateProfile)
			r.Put("/answers", s.handleUpsertAnswers)
			r.Get("/results", s.handleGetResults)
			r.Post("/checkout", s.handleCreateCheckout)
		})

		// Stripe webhook — no auth (signature verification inside handler).
		r.Post("/webhooks/stripe", s.handleStripeWebhook)

		// Report access — no auth (opaque access token in URL).
		r.Get("/report/{accessToken}", s.handleGetReport)
	})

	return r
}
