package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/inspectra/internal/app"
	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
	_ "github.com/raysh454/inspectra/internal/server/docs" // swagger spec
)

// Server is the HTTP + WebSocket API surface for the dashboard.
type Server struct {
	cfg       Config
	dashboard *app.Dashboard
	owned     bool
	router    chi.Router
	upgrader  websocket.Upgrader
	logger    logging.Logger
}

// NewServer creates a Server around cfg.Dashboard, opening one from
// cfg.AppConfig when it is nil.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = cfg.AppConfig.Server.ListenAddr
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("Server")
	}

	dash := cfg.Dashboard
	owned := false
	if dash == nil {
		var err error
		dash, err = app.Open(context.Background(), cfg.AppConfig, logger)
		if err != nil {
			return nil, err
		}
		owned = true
	}

	s := &Server{
		cfg:       cfg,
		dashboard: dash,
		owned:     owned,
		router:    chi.NewRouter(),
		logger:    logger.With(logging.Field{Key: "component", Value: "server"}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict to the dashboard origin once it is configurable.
				return true
			},
		},
	}
	s.routes()
	return s, nil
}

// Dashboard returns the underlying dashboard for advanced use (tests, etc.).
func (s *Server) Dashboard() *app.Dashboard {
	return s.dashboard
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	// CORS preflight
	r.Options("/session", s.optionsHandler("GET"))
	r.Options("/session/start", s.optionsHandler("POST"))
	r.Options("/session/reset", s.optionsHandler("POST"))
	r.Options("/session/new-project", s.optionsHandler("POST"))
	r.Options("/history", s.optionsHandler("GET"))
	r.Options("/history/{id}", s.optionsHandler("GET"))
	r.Options("/history/{id}/load", s.optionsHandler("POST"))
	r.Options("/history/{id}/compare", s.optionsHandler("GET"))

	r.Get("/healthz", s.handleHealth)

	// Session
	r.Get("/session", s.handleGetSession)
	r.Post("/session/start", s.handleStartSession)
	r.Post("/session/reset", s.handleResetSession)
	r.Post("/session/new-project", s.handleNewProject)

	// History
	r.Get("/history", s.handleListHistory)
	r.Get("/history/{id}", s.handleGetHistory)
	r.Post("/history/{id}/load", s.handleLoadHistory)
	r.Get("/history/{id}/compare", s.handleCompareHistory)

	// Live session events
	r.Get("/ws/session", s.handleSessionWS)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	// Uploads are not echoed into the log.
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if r.Body != nil && r.Method == http.MethodPost && ct == "application/json" {
		if bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, 64<<10)); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close releases the dashboard when the server opened it.
func (s *Server) Close() error {
	if s.owned && s.dashboard != nil {
		return s.dashboard.Close()
	}
	return nil
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// writeAPIError maps domain errors to HTTP statuses.
func (s *Server) writeAPIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "empty_input", err.Error())
	case errors.Is(err, model.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, "invalid_url", err.Error())
	case errors.Is(err, model.ErrSessionBusy):
		writeError(w, http.StatusConflict, "busy", err.Error())
	case errors.Is(err, model.ErrHistoryNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		s.logger.Error("request failed", logging.Field{Key: "error", Value: err})
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}
