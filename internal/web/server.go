// Package web provides the HTTP server and handlers for catalog imports.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/JonMunkholm/menuboard/internal/config"
	"github.com/JonMunkholm/menuboard/internal/core"
	"github.com/JonMunkholm/menuboard/internal/metrics"
	mw "github.com/JonMunkholm/menuboard/internal/web/middleware"
)

// rateLimitPruneInterval is how often idle rate limiter entries are dropped.
const rateLimitPruneInterval = 5 * time.Minute

// Server is the HTTP server for the catalog import service.
type Server struct {
	service *core.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server

	stopPruners context.CancelFunc
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service:     service,
		cfg:         cfg,
		router:      chi.NewRouter(),
		stopPruners: func() {},
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if len(s.cfg.Security.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Security.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "HX-Request", "X-Request-Id"},
			ExposedHeaders:   []string{"Retry-After"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	general, uploads := s.rateLimiters()

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Use(general)

		r.Get("/status", s.handleStatus)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/template", s.handleDownloadTemplate)
			r.Get("/imports", s.handleListImports)

			r.With(uploads).Post("/import", s.handleImport)
			r.With(uploads).Post("/preview", s.handlePreview)
		})
	})
}

// rateLimiters returns the general API limiter and the stricter upload
// limiter. Both are no-ops when rate limiting is disabled.
func (s *Server) rateLimiters() (general, uploads func(http.Handler) http.Handler) {
	passthrough := func(next http.Handler) http.Handler { return next }
	if !s.cfg.Rate.Enabled {
		return passthrough, passthrough
	}

	generalRL := mw.NewRateLimiter(s.cfg.Rate.RequestsPerMinute)
	uploadRL := mw.NewRateLimiter(s.cfg.Rate.UploadLimit)

	ctx, cancel := context.WithCancel(context.Background())
	s.stopPruners = cancel
	go generalRL.RunPruner(ctx, rateLimitPruneInterval)
	go uploadRL.RunPruner(ctx, rateLimitPruneInterval)

	return generalRL.Handler(s.rateLimited), uploadRL.Handler(s.rateLimited)
}

func (s *Server) rateLimited(w http.ResponseWriter, r *http.Request) {
	respondErrorJSON(w, core.MapError(errRateLimited), http.StatusTooManyRequests)
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	addr := s.cfg.Server.Addr()
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopPruners()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

const contentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'"

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				h.Set("Content-Security-Policy", contentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
