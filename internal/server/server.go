// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/csrf"

	"trendcloud/internal/adapter/storage"
	"trendcloud/internal/cloud"
	"trendcloud/internal/config"
	"trendcloud/internal/server/handlers"
	"trendcloud/web"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	source handlers.TrendSource,
	fetcher cloud.TweetFetcher,
	store *storage.CloudStore,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(httprate.LimitByIP(cfg.RateLimit.GlobalPerMinute, time.Minute))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// CSRF protection for the form and JSON POSTs. The token travels in the
	// rendered page and comes back as a form field or X-CSRF-Token header.
	router.Use(csrf.Protect(
		[]byte(cfg.Server.CSRFSecret),
		csrf.Secure(cfg.Environment != "development"),
		csrf.Path("/"),
	))

	// Create handler dependencies
	cloudHandler := handlers.NewCloudHandler(source, fetcher, store, cfg.Cloud)
	tweetsHandler := handlers.NewTweetsHandler(fetcher, store, cfg.Cloud.PopupTimeout)

	// Routes
	router.Get("/", cloudHandler.ShowDefault)
	router.Post("/", cloudHandler.Submit)
	router.Get("/cloud/{id}/svg", cloudHandler.CloudSVG)

	router.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.RateLimit.TweetsPerMinute, time.Minute))
		r.Post("/fetch_tweets", tweetsHandler.FetchTweets)
	})

	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	staticFS, err := web.Static()
	if err == nil {
		router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
