// Package server serves stored previews over HTTP: a JSON API for the
// catalogue, interactive pages, and the websocket each page's session runs
// on.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/previewkit/internal/db"
	"github.com/ziadkadry99/previewkit/internal/session"
	"github.com/ziadkadry99/previewkit/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port        int
	AllowAll    bool   // allow all CORS origins (dev mode)
	Theme       string // initial page theme
	DiffMode    string
	ExpandFirst int
	Verbose     bool // log session lifecycle
}

// Server hosts previews.
type Server struct {
	cfg        Config
	db         *db.DB
	store      *store.Store
	sessions   *session.Manager
	router     chi.Router
	httpServer *http.Server
}

// New creates a server backed by database.
func New(cfg Config, database *db.DB) *Server {
	s := &Server{
		cfg:   cfg,
		db:    database,
		store: store.NewStore(database),
		sessions: session.NewManager(session.Options{
			DiffMode:    cfg.DiffMode,
			ExpandFirst: cfg.ExpandFirst,
			Verbose:     cfg.Verbose,
		}),
	}

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Sockets live as long as their page, so they sit outside the timeout.
	r.Get("/ws/previews/{id}", s.handleSocket)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// Health check
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		r.Get("/", s.handleIndex)
		r.Get("/p/{id}", s.handlePage)

		r.Route("/api/previews", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Get("/{id}", s.handleGet)
			r.Delete("/{id}", s.handleDelete)
			r.Get("/{id}/sessions", s.handleSessions)
		})
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Store returns the preview catalogue.
func (s *Server) Store() *store.Store { return s.store }

// Sessions returns the live session manager.
func (s *Server) Sessions() *session.Manager { return s.sessions }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	log.Printf("previewkit server listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops live sessions and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sessions.CloseAll()
	return s.httpServer.Shutdown(ctx)
}
