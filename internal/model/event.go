package model

// AnalysisEventKind tags the events an analysis collaborator emits.
type AnalysisEventKind string

const (
	EventLog     AnalysisEventKind = "log"
	EventResult  AnalysisEventKind = "result"
	EventFailure AnalysisEventKind = "failure"
)

// AnalysisEvent is one element of an analysis stream. A stream is zero or
// more EventLog events followed by exactly one EventResult or EventFailure.
type AnalysisEvent struct {
	Kind    AnalysisEventKind
	Message string
	Result  *Result
	Err     error
}

// Terminal reports whether ev ends its stream.
func (ev AnalysisEvent) Terminal() bool {
	return ev.Kind == EventResult || ev.Kind == EventFailure
}

func LogEvent(msg string) AnalysisEvent {
	return AnalysisEvent{Kind: EventLog, Message: msg}
}

func ResultEvent(r Result) AnalysisEvent {
	return AnalysisEvent{Kind: EventResult, Result: &r}
}

// FailureEvent wraps err; Message carries the reason shown to the user.
func FailureEvent(reason string, err error) AnalysisEvent {
	return AnalysisEvent{Kind: EventFailure, Message: reason, Err: err}
}

// DashboardEventType tags events published to dashboard subscribers.
type DashboardEventType string

const (
	DashboardEventTargetAcquired DashboardEventType = "target_acquired"
	DashboardEventLog            DashboardEventType = "log"
	DashboardEventStatus         DashboardEventType = "status"
	DashboardEventArchived       DashboardEventType = "archived"
)

// DashboardEvent is pushed to live subscribers such as the websocket stream.
type DashboardEvent struct {
	Type   DashboardEventType `json:"type"`
	RunID  string             `json:"run_id,omitempty"`
	Status Status             `json:"status,omitempty"`
	Target *Target            `json:"target,omitempty"`
	Log    *LogEntry          `json:"log,omitempty"`
	Score  *int               `json:"score,omitempty"`
	Error  string             `json:"error,omitempty"`

	HistoryID int64 `json:"history_id,omitempty"`
}
