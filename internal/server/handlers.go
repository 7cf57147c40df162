package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
)

// handleHealth godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Backend: s.dashboard.Backend()})
}

// handleGetSession godoc
// @Summary Current session
// @Tags session
// @Produce json
// @Success 200 {object} model.Session
// @Router /session [get]
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Session())
}

// handleStartSession godoc
// @Summary Start an analysis
// @Description Accepts JSON {"url"} or multipart with url and an image file. An image wins over the URL.
// @Tags session
// @Accept json,mpfd
// @Produce json
// @Param request body StartSessionRequest false "Target"
// @Success 202 {object} model.Session
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /session/start [post]
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	target, err := s.readTarget(w, r)
	if err != nil {
		s.logger.Warn("decoding start request", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	snap, err := s.dashboard.Analyze(target)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}
	s.logger.Info("started analysis",
		logging.Field{Key: "run_id", Value: snap.RunID},
		logging.Field{Key: "target", Value: target.DisplayName()})
	writeJSON(w, http.StatusAccepted, snap)
}

func (s *Server) readTarget(w http.ResponseWriter, r *http.Request) (model.Target, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "multipart/form-data" {
		limit := s.cfg.AppConfig.Server.MaxUploadBytes
		r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
		if err := r.ParseMultipartForm(limit); err != nil {
			return model.Target{}, fmt.Errorf("parse upload: %w", err)
		}
		img, err := readImage(r)
		if err != nil {
			return model.Target{}, err
		}
		return model.NewTarget(r.FormValue("url"), img), nil
	}

	var body StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return model.Target{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if body.Image != nil && body.Image.Name == "" {
		body.Image.Name = model.ImageName
	}
	return model.NewTarget(body.URL, body.Image), nil
}

// readImage digests the optional "image" form file.
func readImage(r *http.Request) (*model.ImageRef, error) {
	file, hdr, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	defer file.Close()

	img, err := model.NewImageRef(hdr.Filename, hdr.Header.Get("Content-Type"), file)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return img, nil
}

// handleResetSession godoc
// @Summary Reset the session to Ready
// @Tags session
// @Produce json
// @Success 200 {object} model.Session
// @Router /session/reset [post]
func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.Reset())
}

// handleNewProject godoc
// @Summary Archive a completed session and reset
// @Tags session
// @Produce json
// @Success 200 {object} NewProjectResponse
// @Failure 500 {object} ErrorResponse
// @Router /session/new-project [post]
func (s *Server) handleNewProject(w http.ResponseWriter, r *http.Request) {
	archived, snap, err := s.dashboard.NewProject(r.Context())
	if err != nil {
		s.writeAPIError(w, err)
		return
	}
	if archived != nil {
		s.logger.Info("archived session", logging.Field{Key: "history_id", Value: archived.ID})
	}
	writeJSON(w, http.StatusOK, NewProjectResponse{Archived: archived, Session: snap})
}

// handleListHistory godoc
// @Summary List past scans, newest first
// @Tags history
// @Produce json
// @Success 200 {array} model.HistoryEntry
// @Router /history [get]
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dashboard.History())
}

// handleGetHistory godoc
// @Summary Get one past scan
// @Tags history
// @Produce json
// @Param id path int true "History id"
// @Success 200 {object} model.HistoryEntry
// @Failure 404 {object} ErrorResponse
// @Router /history/{id} [get]
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := historyID(w, r)
	if !ok {
		return
	}
	e, err := s.dashboard.HistoryEntry(id)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// handleLoadHistory godoc
// @Summary Show a past scan as the current session
// @Tags history
// @Produce json
// @Param id path int true "History id"
// @Success 200 {object} model.Session
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /history/{id}/load [post]
func (s *Server) handleLoadHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := historyID(w, r)
	if !ok {
		return
	}
	snap, err := s.dashboard.LoadHistory(id)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleCompareHistory godoc
// @Summary Compare a scan with another or with the previous scan of its target
// @Tags history
// @Produce json
// @Param id path int true "History id"
// @Param against query int false "Base history id"
// @Success 200 {object} history.Comparison
// @Failure 404 {object} ErrorResponse
// @Router /history/{id}/compare [get]
func (s *Server) handleCompareHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := historyID(w, r)
	if !ok {
		return
	}
	var against int64
	if a := r.URL.Query().Get("against"); a != "" {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil || v <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_id", "against must be a history id")
			return
		}
		against = v
	}
	c, err := s.dashboard.Compare(id, against)
	if err != nil {
		s.writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func historyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_id", "history id must be a positive integer")
		return 0, false
	}
	return id, true
}
