package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/raysh454/inspectra/internal/analyzer"
	"github.com/raysh454/inspectra/internal/history"
	"github.com/raysh454/inspectra/internal/model"
	"github.com/raysh454/inspectra/internal/testutil"
)

func newTestDashboard(t *testing.T, az *testutil.DummyAnalyzer) *Dashboard {
	t.Helper()
	logger := &testutil.DummyLogger{}
	d := NewDashboard(DefaultConfig(), history.NewStore(logger), az, logger)
	t.Cleanup(func() { d.Close() })
	return d
}

func waitStatus(t *testing.T, d *Dashboard, want model.Status) model.Session {
	t.Helper()
	if !testutil.WaitFor(2*time.Second, func() bool { return d.Session().Status == want }) {
		t.Fatalf("status = %s, want %s", d.Session().Status, want)
	}
	return d.Session()
}

func TestDashboard_AnalyzeCompletes(t *testing.T) {
	t.Parallel()
	az := &testutil.DummyAnalyzer{
		Logs:   []string{"step one", "step two"},
		Result: model.Result{Score: 77, Issues: []model.Issue{{Category: "UX", Description: "tiny font"}}},
	}
	d := newTestDashboard(t, az)

	snap, err := d.Analyze(model.NewTarget("https://example.com", nil))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if snap.Status != model.StatusRunning {
		t.Errorf("immediate status = %s, want running", snap.Status)
	}

	s := waitStatus(t, d, model.StatusCompleted)
	if *s.Score != 77 || len(s.Issues) != 1 {
		t.Errorf("completed session = %+v", s)
	}
	var msgs []string
	for _, l := range s.Logs {
		msgs = append(msgs, l.Message)
	}
	joined := strings.Join(msgs, "|")
	if !strings.Contains(joined, "step two|step one") {
		t.Errorf("logs = %q, want analyzer logs newest first", msgs)
	}
}

func TestDashboard_AnalyzeFailure(t *testing.T) {
	t.Parallel()
	d := newTestDashboard(t, &testutil.DummyAnalyzer{Fail: "Engine unreachable"})

	if _, err := d.Analyze(model.NewTarget("https://example.com", nil)); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	s := waitStatus(t, d, model.StatusError)
	if s.Logs[0].Message != "Critical Error: Engine unreachable" {
		t.Errorf("newest log = %q", s.Logs[0].Message)
	}
	if s.Score != nil {
		t.Errorf("failed run has score %d", *s.Score)
	}
}

func TestDashboard_AnalyzeRejections(t *testing.T) {
	t.Parallel()
	gate := make(chan struct{})
	az := &testutil.DummyAnalyzer{Gate: gate}
	d := newTestDashboard(t, az)

	if _, err := d.Analyze(model.NewTarget("notaurl", nil)); !errors.Is(err, model.ErrInvalidURL) {
		t.Errorf("invalid url err = %v", err)
	}
	if _, err := d.Analyze(model.NewTarget("", nil)); !errors.Is(err, model.ErrEmptyInput) {
		t.Errorf("empty err = %v", err)
	}
	if len(az.Targets()) != 0 {
		t.Errorf("rejected input reached the analyzer: %v", az.Targets())
	}

	if _, err := d.Analyze(model.NewTarget("https://example.com", nil)); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, err := d.Analyze(model.NewTarget("https://example.com", nil)); !errors.Is(err, model.ErrSessionBusy) {
		t.Errorf("second Analyze err = %v, want busy", err)
	}
	close(gate)
	waitStatus(t, d, model.StatusCompleted)
}

func TestDashboard_ResetOrphansRun(t *testing.T) {
	t.Parallel()
	gate := make(chan struct{})
	d := newTestDashboard(t, &testutil.DummyAnalyzer{Gate: gate, Result: model.Result{Score: 90}})

	d.Analyze(model.NewTarget("https://example.com", nil))
	d.Reset()
	close(gate)
	d.Wait()

	if s := d.Session(); s.Status != model.StatusIdle || s.Score != nil {
		t.Errorf("late completion applied after reset: %+v", s)
	}
}

func TestDashboard_NewProjectArchivesCompleted(t *testing.T) {
	t.Parallel()
	d := newTestDashboard(t, &testutil.DummyAnalyzer{
		Result: model.Result{Score: 64, Suggestions: []string{"compress images"}},
	})
	events, cancel := d.Subscribe(256)
	defer cancel()

	d.Analyze(model.NewTarget("https://example.com", nil))
	completed := waitStatus(t, d, model.StatusCompleted)

	archived, s, err := d.NewProject(context.Background())
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	if archived == nil {
		t.Fatal("completed session was not archived")
	}
	if s.Status != model.StatusIdle {
		t.Errorf("status after new project = %s", s.Status)
	}
	if archived.Score != 64 || archived.Name != "https://example.com" || len(archived.Suggestions) != 1 {
		t.Errorf("archived = %+v", archived)
	}
	if len(archived.Logs) != len(completed.Logs) {
		t.Errorf("archived %d logs, session had %d", len(archived.Logs), len(completed.Logs))
	}
	if got := d.History(); len(got) != 1 || got[0].ID != archived.ID {
		t.Errorf("history = %+v", got)
	}

	sawArchived := testutil.WaitFor(time.Second, func() bool {
		for {
			select {
			case ev := <-events:
				if ev.Type == model.DashboardEventArchived && ev.HistoryID == archived.ID {
					return true
				}
			default:
				return false
			}
		}
	})
	if !sawArchived {
		t.Error("no archived event published")
	}
}

func TestDashboard_NewProjectSkipsIncomplete(t *testing.T) {
	t.Parallel()
	d := newTestDashboard(t, &testutil.DummyAnalyzer{Fail: "boom"})

	if archived, _, err := d.NewProject(context.Background()); err != nil || archived != nil {
		t.Errorf("idle NewProject = %v, %v", archived, err)
	}
	d.Analyze(model.NewTarget("https://example.com", nil))
	waitStatus(t, d, model.StatusError)
	if archived, _, _ := d.NewProject(context.Background()); archived != nil {
		t.Error("failed session was archived")
	}
	if len(d.History()) != 0 {
		t.Errorf("history = %v, want empty", d.History())
	}
}

func TestDashboard_LoadHistoryAndCompare(t *testing.T) {
	t.Parallel()
	az := &testutil.DummyAnalyzer{Result: model.Result{
		Score:  60,
		Issues: []model.Issue{{Category: "Security", Description: "No CSP"}},
	}}
	d := newTestDashboard(t, az)

	d.Analyze(model.NewTarget("https://example.com", nil))
	waitStatus(t, d, model.StatusCompleted)
	first, _, _ := d.NewProject(context.Background())

	az.Result = model.Result{Score: 85, Issues: []model.Issue{{Category: "UX", Description: "Small tap targets"}}}
	d.Analyze(model.NewTarget("https://example.com/", nil))
	waitStatus(t, d, model.StatusCompleted)
	second, _, _ := d.NewProject(context.Background())

	c, err := d.Compare(second.ID, 0)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if c.Base.ID != first.ID || c.ScoreDelta != 25 || len(c.Added) != 1 || len(c.Resolved) != 1 {
		t.Errorf("comparison = %+v", c)
	}
	if _, err := d.Compare(first.ID, 0); !errors.Is(err, model.ErrHistoryNotFound) {
		t.Errorf("Compare without previous err = %v", err)
	}

	s, err := d.LoadHistory(first.ID)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if s.Status != model.StatusCompleted || *s.Score != 60 || s.Issues[0].Description != "No CSP" {
		t.Errorf("restored session = %+v", s)
	}
	if archived, _, _ := d.NewProject(context.Background()); archived != nil {
		t.Error("restored session was archived a second time")
	}
	if _, err := d.LoadHistory(404); !errors.Is(err, model.ErrHistoryNotFound) {
		t.Errorf("LoadHistory(404) err = %v", err)
	}
}

func TestOpen_SimulatedBackend(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Analyzer.StepDelay = 0
	cfg.Analyzer.Seed = 3
	d, err := Open(context.Background(), cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if d.Backend() != analyzer.BackendSimulated {
		t.Errorf("backend = %s", d.Backend())
	}
	d.Analyze(model.NewTarget("https://example.com", nil))
	s := waitStatus(t, d, model.StatusCompleted)
	if len(s.Issues) != 4 || *s.Score < 68 || *s.Score > 92 {
		t.Errorf("simulated session = score %d, %d issues", *s.Score, len(s.Issues))
	}
}
