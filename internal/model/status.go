package model

// Status is the lifecycle state of a scan session.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// StatusStyle is the badge palette shown next to a status label.
type StatusStyle struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// Label is the human-facing badge text for s.
func (s Status) Label() string {
	switch s {
	case StatusRunning:
		return "Inspecting..."
	case StatusCompleted:
		return "Completed"
	case StatusError:
		return "Error"
	default:
		return "Ready"
	}
}

// Style is the badge palette for s.
func (s Status) Style() StatusStyle {
	switch s {
	case StatusRunning:
		return StatusStyle{Background: "#f5824a22", Foreground: "#f5824a"}
	case StatusCompleted:
		return StatusStyle{Background: "#10b98122", Foreground: "#10b981"}
	case StatusError:
		return StatusStyle{Background: "#ef444422", Foreground: "#ef4444"}
	default:
		return StatusStyle{Background: "#27272a", Foreground: "#a1a1aa"}
	}
}

// Terminal reports whether s ends a run.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}
