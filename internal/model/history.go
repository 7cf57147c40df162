package model

import "time"

// HistoryEntry is an immutable snapshot of a completed session.
type HistoryEntry struct {
	// ID is the creation time in unix milliseconds, strictly increasing.
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Target      Target      `json:"target"`
	Score       int         `json:"score"`
	Logs        []LogEntry  `json:"logs"`
	Issues      []Issue     `json:"issues"`
	Suggestions []string    `json:"suggestions"`
	StatusLabel string      `json:"status_label"`
	StatusStyle StatusStyle `json:"status_style"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Clone returns a deep copy of e.
func (e HistoryEntry) Clone() HistoryEntry {
	out := e
	out.Target = e.Target.Clone()
	out.Logs = CloneLogs(e.Logs)
	out.Issues = CloneIssues(e.Issues)
	out.Suggestions = CloneStrings(e.Suggestions)
	return out
}

func CloneIssues(in []Issue) []Issue {
	if in == nil {
		return nil
	}
	return append(make([]Issue, 0, len(in)), in...)
}

func CloneLogs(in []LogEntry) []LogEntry {
	if in == nil {
		return nil
	}
	return append(make([]LogEntry, 0, len(in)), in...)
}

func CloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}
