// Package session owns the state of the scan currently shown on the
// dashboard and drives its Idle → Running → Completed/Error lifecycle.
package session

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
	"github.com/raysh454/inspectra/internal/utils"
)

const (
	emptyInputNotice   = "Please enter a destination URL or attach a screenshot."
	invalidInputNotice = "Invalid Format: Use an absolute URL (http:// or https://)"
	completedLog       = "Analysis complete."
)

// Observer receives every dashboard event. It is invoked with the
// controller lock held and must not call back into the controller.
type Observer func(model.DashboardEvent)

type Option func(*Controller)

// WithClock overrides time.Now for log timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides the run id source.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

func WithObserver(obs Observer) Option {
	return func(c *Controller) { c.observer = obs }
}

// Controller is the single writer of the current session. All methods are
// safe for concurrent use.
type Controller struct {
	logger   logging.Logger
	now      func() time.Time
	newID    func() string
	observer Observer

	mu           sync.Mutex
	runID        string
	target       model.Target
	status       model.Status
	label        string
	style        model.StatusStyle
	score        *int
	issues       []model.Issue
	logs         []model.LogEntry // chronological
	suggestions  []string
	restoredFrom int64
}

func New(logger logging.Logger, opts ...Option) *Controller {
	c := &Controller{
		logger: logger.With(logging.Field{Key: "component", Value: "session"}),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		status: model.StatusIdle,
		label:  model.StatusIdle.Label(),
		style:  model.StatusIdle.Style(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a run for target and returns its run id.
//
// It fails with model.ErrSessionBusy while a run is in flight, with
// model.ErrEmptyInput for an empty target and with a *model.ValidationError
// for a malformed URL. Busy rejections leave no trace in the log; the
// other two append one notice.
func (c *Controller) Start(target model.Target) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == model.StatusRunning {
		return "", model.ErrSessionBusy
	}
	if target.IsEmpty() {
		c.appendLocked(emptyInputNotice)
		return "", model.ErrEmptyInput
	}
	if !target.IsImage() && !utils.IsAbsoluteWebURL(target.URL) {
		c.appendLocked(invalidInputNotice)
		return "", &model.ValidationError{Input: target.URL}
	}

	c.clearPayloadLocked()
	c.runID = c.newID()
	c.target = target.Clone()
	c.setStatusLocked(model.StatusRunning)

	c.emitLocked(model.DashboardEvent{Type: model.DashboardEventStatus, Status: model.StatusRunning})
	if target.IsImage() {
		c.appendLocked(fmt.Sprintf("Loading screenshot %s...", target.Image.Name))
	} else {
		t := c.target.Clone()
		c.emitLocked(model.DashboardEvent{Type: model.DashboardEventTargetAcquired, Target: &t})
		c.appendLocked(fmt.Sprintf("Synchronizing viewport with %s...", target.URL))
	}

	c.logger.Info("session started",
		logging.Field{Key: "run_id", Value: c.runID},
		logging.Field{Key: "target", Value: c.target.DisplayName()})
	return c.runID, nil
}

// AppendLog adds an in-flight log line. It reports false when runID is not
// the current running run.
func (c *Controller) AppendLog(runID, msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked(runID) {
		return false
	}
	c.appendLocked(msg)
	return true
}

// Complete applies res and moves the run to Completed.
func (c *Controller) Complete(runID string, res model.Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked(runID) {
		c.logger.Debug("discarding stale completion", logging.Field{Key: "run_id", Value: runID})
		return false
	}

	for _, l := range res.Logs {
		c.appendLocked(l)
	}
	score := model.ClampScore(res.Score)
	c.score = &score
	c.issues = model.CloneIssues(res.Issues)
	if c.issues == nil {
		c.issues = []model.Issue{}
	}
	c.suggestions = model.CloneStrings(res.Suggestions)
	c.appendLocked(completedLog)
	c.setStatusLocked(model.StatusCompleted)

	s := score
	c.emitLocked(model.DashboardEvent{Type: model.DashboardEventStatus, Status: model.StatusCompleted, Score: &s})
	c.logger.Info("session completed",
		logging.Field{Key: "run_id", Value: runID},
		logging.Field{Key: "score", Value: score},
		logging.Field{Key: "issues", Value: len(c.issues)})
	return true
}

// Fail records msg and moves the run to Error.
func (c *Controller) Fail(runID, msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.activeLocked(runID) {
		c.logger.Debug("discarding stale failure", logging.Field{Key: "run_id", Value: runID})
		return false
	}
	c.appendLocked(msg)
	c.setStatusLocked(model.StatusError)
	c.emitLocked(model.DashboardEvent{Type: model.DashboardEventStatus, Status: model.StatusError, Error: msg})
	c.logger.Warn("session failed",
		logging.Field{Key: "run_id", Value: runID},
		logging.Field{Key: "reason", Value: msg})
	return true
}

// Reset returns to Idle and clears everything, orphaning any in-flight run.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

// Detach hands the current session to archive and resets only if archive
// succeeds. Both happen under one lock, so no run can start in between.
func (c *Controller) Detach(archive func(model.Session) error) (model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.snapshotLocked()
	if archive != nil {
		if err := archive(snap); err != nil {
			return snap, err
		}
	}
	c.resetLocked()
	return snap, nil
}

// Restore shows a history entry as the current session.
func (c *Controller) Restore(entry model.HistoryEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == model.StatusRunning {
		return model.ErrSessionBusy
	}

	c.clearPayloadLocked()
	c.runID = ""
	c.target = entry.Target.Clone()
	score := model.ClampScore(entry.Score)
	c.score = &score
	c.issues = model.CloneIssues(entry.Issues)
	if c.issues == nil {
		c.issues = []model.Issue{}
	}
	c.suggestions = model.CloneStrings(entry.Suggestions)
	c.logs = model.CloneLogs(entry.Logs)
	slices.Reverse(c.logs)
	c.restoredFrom = entry.ID

	c.status = model.StatusCompleted
	c.label = entry.StatusLabel
	c.style = entry.StatusStyle
	if c.label == "" {
		c.label = model.StatusCompleted.Label()
		c.style = model.StatusCompleted.Style()
	}

	s := score
	c.emitLocked(model.DashboardEvent{Type: model.DashboardEventStatus, Status: model.StatusCompleted, Score: &s, HistoryID: entry.ID})
	c.logger.Info("session restored from history", logging.Field{Key: "history_id", Value: entry.ID})
	return nil
}

// Snapshot returns a deep copy of the session, logs newest first.
func (c *Controller) Snapshot() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) Status() model.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) activeLocked(runID string) bool {
	return runID != "" && runID == c.runID && c.status == model.StatusRunning
}

func (c *Controller) appendLocked(msg string) {
	entry := model.LogEntry{Time: c.now(), Message: msg}
	c.logs = append(c.logs, entry)
	c.emitLocked(model.DashboardEvent{Type: model.DashboardEventLog, Log: &entry})
}

func (c *Controller) setStatusLocked(s model.Status) {
	c.status = s
	c.label = s.Label()
	c.style = s.Style()
}

func (c *Controller) clearPayloadLocked() {
	c.score = nil
	c.issues = nil
	c.logs = nil
	c.suggestions = nil
	c.restoredFrom = 0
}

func (c *Controller) resetLocked() {
	prev := c.status
	orphaned := c.runID
	c.clearPayloadLocked()
	c.runID = ""
	c.target = model.Target{}
	c.setStatusLocked(model.StatusIdle)
	c.emitLocked(model.DashboardEvent{Type: model.DashboardEventStatus, Status: model.StatusIdle})
	c.logger.Info("session reset",
		logging.Field{Key: "from", Value: string(prev)},
		logging.Field{Key: "orphaned_run", Value: orphaned})
}

func (c *Controller) emitLocked(ev model.DashboardEvent) {
	if c.observer == nil {
		return
	}
	if ev.RunID == "" {
		ev.RunID = c.runID
	}
	c.observer(ev)
}

func (c *Controller) snapshotLocked() model.Session {
	logs := model.CloneLogs(c.logs)
	slices.Reverse(logs)
	if logs == nil {
		logs = []model.LogEntry{}
	}
	s := model.Session{
		RunID:        c.runID,
		Target:       c.target.Clone(),
		Status:       c.status,
		StatusLabel:  c.label,
		StatusStyle:  c.style,
		Issues:       model.CloneIssues(c.issues),
		Logs:         logs,
		Suggestions:  model.CloneStrings(c.suggestions),
		RestoredFrom: c.restoredFrom,
	}
	if c.score != nil {
		score := *c.score
		s.Score = &score
	}
	return s
}
