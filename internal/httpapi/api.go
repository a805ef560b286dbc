// Package httpapi serves everything that is not a Connect call: CSV upload
// and download, metrics, health and the static front end. Connect services
// are mounted on the same router.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/auth"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/event"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/metrics"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/service"
)

// DefaultMaxUploadBytes caps CSV uploads.
const DefaultMaxUploadBytes = 5 << 20

type Config struct {
	// StaticPath is the directory of the front end. Empty disables it.
	StaticPath     string
	CORSOrigins    []string
	MaxUploadBytes int64
}

type API struct {
	router     *mux.Router
	manager    *event.Manager
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
	cfg        Config
}

// New builds the router. rpc holds the Connect services to mount.
func New(manager *event.Manager, jwtManager *auth.JWTManager, m *metrics.Metrics, rpc []service.Route, cfg Config) *API {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	api := &API{
		router:     mux.NewRouter(),
		manager:    manager,
		jwtManager: jwtManager,
		metrics:    m,
		cfg:        cfg,
	}
	api.setupRoutes(rpc)
	return api
}

func (a *API) setupRoutes(rpc []service.Route) {
	a.router.HandleFunc("/healthz", a.handleHealth).Methods("GET")
	a.router.Handle("/metrics", a.metrics.Handler()).Methods("GET")

	for _, route := range rpc {
		a.router.PathPrefix(route.Path).Handler(route.Handler)
	}

	// Session files; the token must belong to {id}
	files := a.router.PathPrefix("/api/sessions/{id}").Subrouter()
	files.Use(a.sessionAuth)
	files.HandleFunc("/participants/csv", a.handleUploadCSV).Methods("POST")
	files.HandleFunc("/groups.csv", a.handleExportCSV).Methods("GET")

	if a.cfg.StaticPath != "" {
		a.router.PathPrefix("/").HandlerFunc(a.handleStatic).Methods("GET")
	}
}

// Handler returns the router wrapped with CORS and request logging.
func (a *API) Handler() http.Handler {
	corsOptions := cors.Options{
		AllowedOrigins: a.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Content-Disposition", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
	}
	return loggingMiddleware(cors.New(corsOptions).Handler(a.router))
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatic serves the front end, falling back to index.html for
// unknown paths.
func (a *API) handleStatic(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	filePath := filepath.Join(a.cfg.StaticPath, filepath.Clean(urlPath))
	if info, err := os.Stat(filePath); err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(a.cfg.StaticPath, "index.html"))
		return
	}
	http.ServeFile(w, r, filePath)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(rec, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
