package server

import "github.com/raysh454/inspectra/internal/model"

// StartSessionRequest is the JSON form of POST /session/start. Uploads use
// multipart with the same url field plus an image file.
type StartSessionRequest struct {
	URL   string          `json:"url" example:"https://example.com"`
	Image *model.ImageRef `json:"image,omitempty"`
}

// NewProjectResponse reports the archived entry, if any, and the fresh session.
type NewProjectResponse struct {
	Archived *model.HistoryEntry `json:"archived"`
	Session  model.Session       `json:"session"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Backend string `json:"backend" example:"simulated"`
}

// SnapshotMessage is the first websocket frame of /ws/session.
type SnapshotMessage struct {
	Type    string        `json:"type" example:"snapshot"`
	Session model.Session `json:"session"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"invalid target URL"`
	Code  string `json:"code" example:"invalid_url"`
}
