// Package router assembles the HTTP surface of the scheduler.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Francescodib/armonia-scheduler/internal/appointments"
	"github.com/Francescodib/armonia-scheduler/internal/center"
	httpmiddleware "github.com/Francescodib/armonia-scheduler/internal/http/middleware"
	"github.com/Francescodib/armonia-scheduler/internal/treatments"
	"github.com/Francescodib/armonia-scheduler/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *appointments.Handler
	TreatmentsHandler   *treatments.Handler
	SettingsHandler     *center.Handler
	MetricsHandler      http.Handler
	AdminAuthSecret     string
	CORSAllowedOrigins  []string
	// MutationRatePerSec caps writes per client IP. Zero disables the
	// limiter.
	MutationRatePerSec float64
	MutationBurst      int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public read-only endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.TreatmentsHandler != nil {
			public.Get("/treatments", cfg.TreatmentsHandler.List)
		}
		if cfg.AppointmentsHandler != nil {
			public.Get("/availability", cfg.AppointmentsHandler.Availability)
			public.Get("/slots", cfg.AppointmentsHandler.Grid)
			public.Get("/appointments", cfg.AppointmentsHandler.List)
			public.Get("/appointments/{id}", cfg.AppointmentsHandler.Get)
			public.Get("/stats", cfg.AppointmentsHandler.Stats)
		}
		if cfg.SettingsHandler != nil {
			public.Get("/settings", cfg.SettingsHandler.Get)
		}
	})

	// Mutations, JWT-protected when a secret is configured
	r.Group(func(protected chi.Router) {
		if cfg.AdminAuthSecret != "" {
			protected.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
		}
		if cfg.MutationRatePerSec > 0 {
			protected.Use(httpmiddleware.RateLimit(cfg.MutationRatePerSec, cfg.MutationBurst))
		}
		if cfg.AppointmentsHandler != nil {
			protected.Post("/appointments", cfg.AppointmentsHandler.Create)
			protected.Put("/appointments/{id}", cfg.AppointmentsHandler.Update)
			protected.Delete("/appointments/{id}", cfg.AppointmentsHandler.Delete)
			protected.Post("/appointments/{id}/cancel", cfg.AppointmentsHandler.Cancel)
		}
		if cfg.SettingsHandler != nil {
			protected.Put("/settings", cfg.SettingsHandler.Update)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
