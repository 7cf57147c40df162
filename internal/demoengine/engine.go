// Package demoengine is a canned-response stand-in for the analysis
// engine. It speaks the same POST /analyze wire shape so the remote
// backend can be exercised without a browser.
package demoengine

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/raysh454/inspectra/internal/analyzer"
	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
)

// Engine serves canned analyses.
//
// Hosts containing "fail" get a navigation error in a 200 body, hosts
// containing "down" get a 503. Everything else gets a report derived
// deterministically from the URL.
type Engine struct {
	cfg    Config
	logger logging.Logger
	router chi.Router
}

func New(cfg Config, logger logging.Logger) *Engine {
	e := &Engine{
		cfg:    cfg,
		logger: logger.With(logging.Field{Key: "component", Value: "demoengine"}),
		router: chi.NewRouter(),
	}
	e.router.Use(corsMiddleware)
	e.router.Options("/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", "POST")
		w.WriteHeader(http.StatusNoContent)
	})
	e.router.Post("/analyze", e.handleAnalyze)
	return e
}

// ServeHTTP implements http.Handler.
func (e *Engine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.router.ServeHTTP(w, r)
}

// Start listens on cfg.Port until the server fails.
func (e *Engine) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", e.cfg.Port)
	e.logger.Info("demo engine listening", logging.Field{Key: "addr", Value: "http://" + addr + "/analyze"})
	srv := &http.Server{Addr: addr, Handler: e, ReadTimeout: 15 * time.Second}
	return srv.ListenAndServe()
}

type analyzeRequest struct {
	URL   string `json:"url"`
	Image string `json:"image"`
}

type issue struct {
	Type string `json:"type"`
	Desc string `json:"desc"`
	Sev  string `json:"sev"`
}

type report struct {
	URL    string   `json:"url"`
	Score  int      `json:"score"`
	Issues []issue  `json:"issues"`
	Logs   []string `json:"logs"`
	Title  string   `json:"title"`
}

func (e *Engine) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid JSON body"})
		return
	}
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" && req.Image == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "URL is required"})
		return
	}

	if e.cfg.Latency > 0 {
		select {
		case <-time.After(e.cfg.Latency):
		case <-r.Context().Done():
			return
		}
	}

	if req.URL == "" {
		e.logger.Info("analyzing screenshot", logging.Field{Key: "image", Value: req.Image})
		writeJSON(w, http.StatusOK, screenshotReport(req.Image))
		return
	}

	host := ""
	if u, err := url.Parse(req.URL); err == nil {
		host = strings.ToLower(u.Hostname())
	}
	switch {
	case strings.Contains(host, "down"):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "engine overloaded"})
		return
	case strings.Contains(host, "fail"):
		msg := fmt.Sprintf("net::ERR_NAME_NOT_RESOLVED at %s", req.URL)
		writeJSON(w, http.StatusOK, map[string]any{"error": msg, "logs": []string{"Error: " + msg}})
		return
	}

	e.logger.Info("analyzing url", logging.Field{Key: "url", Value: req.URL})
	writeJSON(w, http.StatusOK, urlReport(req.URL))
}

func urlReport(target string) report {
	h := fnv.New32a()
	h.Write([]byte(target))
	seed := h.Sum32()

	rep := report{
		URL:   target,
		Logs:  []string{"Successfully connected to " + target, "Parsing DOM tree..."},
		Title: "Demo page",
	}
	if missing := int(seed % 5); missing > 0 {
		rep.Issues = append(rep.Issues, issue{
			Type: "Accessibility",
			Desc: fmt.Sprintf("Found %d images missing 'alt' attributes.", missing),
			Sev:  "Minor",
		})
		rep.Logs = append(rep.Logs, fmt.Sprintf("Visual Audit: %d accessibility violations.", missing))
	}
	if seed&0x10 != 0 {
		rep.Title = ""
		rep.Issues = append(rep.Issues, issue{Type: "UX/SEO", Desc: "Page title is missing or empty.", Sev: "Major"})
	}
	if !strings.HasPrefix(strings.ToLower(target), "https://") {
		rep.Issues = append(rep.Issues, issue{
			Type: "Security",
			Desc: "Site is not using HTTPS. Information Security risk.",
			Sev:  "Critical",
		})
	}
	rep.Score = score(rep.Issues)
	if rep.Issues == nil {
		rep.Issues = []issue{}
	}
	return rep
}

func screenshotReport(name string) report {
	rep := report{
		Logs: []string{"Decoded screenshot " + name, "Running visual layout inspection..."},
		Issues: []issue{
			{Type: "Visual", Desc: "Primary call-to-action has low contrast against its background.", Sev: "Major"},
			{Type: "Visual", Desc: "Body text is below 14px on the captured viewport.", Sev: "Minor"},
		},
	}
	rep.Score = score(rep.Issues)
	return rep
}

func score(issues []issue) int {
	converted := make([]model.Issue, 0, len(issues))
	for _, is := range issues {
		converted = append(converted, model.Issue{Category: is.Type, Description: is.Desc, Severity: is.Sev})
	}
	return analyzer.HygieneScore(converted)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
