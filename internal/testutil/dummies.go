// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O.
package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
	"github.com/raysh454/inspectra/internal/webclient"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// InfoMessages returns a copy of the recorded info messages.
func (l *DummyLogger) InfoMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.Infos...)
}

// WarnMessages returns a copy of the recorded warnings.
func (l *DummyLogger) WarnMessages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.Warns...)
}

// ─── WebClient ─────────────────────────────────────────────────────────

// DummyWebClient implements webclient.WebClient.
// It answers every request with Status/Body, or Err when set.
type DummyWebClient struct {
	Status int
	Body   []byte
	Err    error

	mu       sync.Mutex
	Requests []*webclient.Request
}

func (d *DummyWebClient) Do(ctx context.Context, req *webclient.Request) (*webclient.Response, error) {
	d.mu.Lock()
	d.Requests = append(d.Requests, req)
	d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Err != nil {
		return nil, d.Err
	}
	status := d.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &webclient.Response{
		Request:    req,
		Body:       d.Body,
		Headers:    http.Header{},
		StatusCode: status,
		FetchedAt:  time.Now(),
	}, nil
}

func (d *DummyWebClient) Close() error { return nil }

// LastRequest returns the most recent request, or nil.
func (d *DummyWebClient) LastRequest() *webclient.Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.Requests) == 0 {
		return nil
	}
	return d.Requests[len(d.Requests)-1]
}

// ─── Analyzer ──────────────────────────────────────────────────────────

// ErrDummyFailure is the error carried by DummyAnalyzer failures.
var ErrDummyFailure = errors.New("dummy analyzer failure")

// DummyAnalyzer implements interfaces.Analyzer with a scripted stream.
//
// Logs are emitted first, then Result, or a failure when Fail is set.
// When Gate is non-nil the terminal event waits for Gate to be closed or
// for ctx to end.
type DummyAnalyzer struct {
	Logs   []string
	Result model.Result
	Fail   string
	Gate   chan struct{}

	mu      sync.Mutex
	targets []model.Target
}

func (d *DummyAnalyzer) Run(ctx context.Context, target model.Target) <-chan model.AnalysisEvent {
	d.mu.Lock()
	d.targets = append(d.targets, target)
	d.mu.Unlock()

	out := make(chan model.AnalysisEvent)
	go func() {
		defer close(out)
		for _, l := range d.Logs {
			select {
			case out <- model.LogEvent(l):
			case <-ctx.Done():
				out <- model.FailureEvent(ctx.Err().Error(), ctx.Err())
				return
			}
		}
		if d.Gate != nil {
			select {
			case <-d.Gate:
			case <-ctx.Done():
				out <- model.FailureEvent(ctx.Err().Error(), ctx.Err())
				return
			}
		}
		if d.Fail != "" {
			out <- model.FailureEvent(d.Fail, ErrDummyFailure)
			return
		}
		out <- model.ResultEvent(d.Result)
	}()
	return out
}

func (d *DummyAnalyzer) Name() string { return "dummy" }

func (d *DummyAnalyzer) Close() error { return nil }

// Targets returns the targets Run was called with.
func (d *DummyAnalyzer) Targets() []model.Target {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]model.Target(nil), d.targets...)
}

// WaitFor polls cond every few milliseconds until it holds or timeout passes.
func WaitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
