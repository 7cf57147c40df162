package model

import "time"

// Issue is one finding reported by an analysis.
type Issue struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
}

// LogEntry is one timestamped line of the session activity log.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// String renders the entry the way the dashboard log shows it.
func (e LogEntry) String() string {
	return "[" + e.Time.Format("15:04:05") + "] " + e.Message
}

// Result is the terminal payload of a successful analysis.
type Result struct {
	Score       int      `json:"score"`
	Issues      []Issue  `json:"issues"`
	Logs        []string `json:"logs,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Session is a point-in-time view of the current scan.
//
// Score and Issues are non-nil iff Status is StatusCompleted. Logs are
// newest first.
type Session struct {
	RunID       string      `json:"run_id,omitempty"`
	Target      Target      `json:"target"`
	Status      Status      `json:"status"`
	StatusLabel string      `json:"status_label"`
	StatusStyle StatusStyle `json:"status_style"`
	Score       *int        `json:"score"`
	Issues      []Issue     `json:"issues"`
	Logs        []LogEntry  `json:"logs"`
	Suggestions []string    `json:"suggestions"`

	// RestoredFrom is the history id the session was loaded from, if any.
	RestoredFrom int64 `json:"restored_from,omitempty"`
}

// ToHistoryEntry snapshots a completed session. It returns false when no
// analysis reached completion, or when the session is itself a restored
// history entry.
func (s Session) ToHistoryEntry() (HistoryEntry, bool) {
	if s.Status != StatusCompleted || s.Score == nil || s.RestoredFrom != 0 {
		return HistoryEntry{}, false
	}
	return HistoryEntry{
		Name:        s.Target.DisplayName(),
		Target:      s.Target.Clone(),
		Score:       *s.Score,
		Logs:        CloneLogs(s.Logs),
		Issues:      CloneIssues(s.Issues),
		Suggestions: CloneStrings(s.Suggestions),
		StatusLabel: s.StatusLabel,
		StatusStyle: s.StatusStyle,
	}, true
}

// ClampScore bounds a score to [0,100].
func ClampScore(n int) int {
	switch {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}
