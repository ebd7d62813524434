// Package api provides the REST API server for todotrack.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rmathes/todotrack/internal/db"
	trackerrors "github.com/rmathes/todotrack/internal/errors"
	"github.com/rmathes/todotrack/internal/events"
)

// Server is the todotrack API server.
type Server struct {
	addr         string
	store        *db.DB
	summariesDir string
	mux          *http.ServeMux
	logger       *slog.Logger

	// Event publisher for live updates over the websocket.
	publisher events.Publisher
	wsHandler *WSHandler
}

// Config holds server configuration.
type Config struct {
	Addr         string
	Store        *db.DB
	SummariesDir string
	Logger       *slog.Logger
}

// New creates a new API server.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		addr:         cfg.Addr,
		store:        cfg.Store,
		summariesDir: cfg.SummariesDir,
		mux:          http.NewServeMux(),
		logger:       logger,
		publisher:    events.NewMemoryPublisher(),
	}
	s.wsHandler = NewWSHandler(s.publisher, logger)

	s.registerRoutes()
	return s
}

// registerRoutes sets up all API routes.
func (s *Server) registerRoutes() {
	// CORS middleware wrapper
	cors := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			h(w, r)
		}
	}

	// Health check and presets
	s.mux.HandleFunc("GET /api/health", cors(s.handleHealth))
	s.mux.HandleFunc("GET /api/presets/categories", cors(s.handleCategoryPresets))

	// Tasks
	s.mux.HandleFunc("GET /api/tasks", cors(s.handleListTasks))
	s.mux.HandleFunc("POST /api/tasks", cors(s.handleCreateTask))
	s.mux.HandleFunc("PATCH /api/tasks/{id}", cors(s.handleUpdateTask))
	s.mux.HandleFunc("DELETE /api/tasks/{id}", cors(s.handleDeleteTask))

	// Completions
	s.mux.HandleFunc("POST /api/tasks/{id}/complete", cors(s.handleCompleteTask))
	s.mux.HandleFunc("POST /api/tasks/{id}/uncomplete", cors(s.handleUncompleteTask))
	s.mux.HandleFunc("POST /api/quick-complete", cors(s.handleQuickComplete))

	// Streak and summary
	s.mux.HandleFunc("GET /api/streak", cors(s.handleStreak))
	s.mux.HandleFunc("POST /api/summary/export", cors(s.handleExportSummary))

	// Live updates
	s.mux.HandleFunc("GET /api/events", s.wsHandler.ServeHTTP)
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start runs the server until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("api server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.wsHandler.CloseAll()
		s.publisher.Close()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// jsonError writes a JSON error response.
func (s *Server) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// storeError maps a store failure to the right status code: coded errors
// carry their own mapping, anything else is a 500.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	if te := trackerrors.AsTrackError(err); te != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(te.HTTPStatus())
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": te.What,
			"code":  string(te.Code),
		})
		return
	}
	s.logger.Error("store operation failed", "error", err)
	s.jsonError(w, "internal error", http.StatusInternalServerError)
}
