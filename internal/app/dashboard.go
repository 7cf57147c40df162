// Package app wires the session, history and analysis backend into the
// dashboard application shared by the HTTP server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/raysh454/inspectra/internal/analyzer"
	"github.com/raysh454/inspectra/internal/history"
	"github.com/raysh454/inspectra/internal/interfaces"
	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
	"github.com/raysh454/inspectra/internal/session"
)

const (
	criticalPrefix  = "Critical Error: "
	streamEndedNote = "analysis stream ended without a result"
)

// Dashboard is the application context: one session, one history and one
// analysis backend.
type Dashboard struct {
	cfg      *Config
	logger   logging.Logger
	session  *session.Controller
	history  interfaces.HistoryStore
	analyzer interfaces.Analyzer
	hub      *Hub

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDashboard ties together already-constructed parts.
func NewDashboard(cfg *Config, store interfaces.HistoryStore, az interfaces.Analyzer, logger logging.Logger) *Dashboard {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	hub := NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	return &Dashboard{
		cfg:      cfg,
		logger:   logger.With(logging.Field{Key: "component", Value: "dashboard"}),
		session:  session.New(logger, session.WithObserver(hub.Publish)),
		history:  store,
		analyzer: az,
		hub:      hub,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Open builds the history store and analyzer described by cfg.
func Open(ctx context.Context, cfg *Config, logger logging.Logger) (*Dashboard, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	store, err := history.Open(ctx, cfg.History, logger)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	az, err := analyzer.New(cfg.Analyzer, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.Info("dashboard ready",
		logging.Field{Key: "backend", Value: az.Name()},
		logging.Field{Key: "history_persist", Value: cfg.History.Persist})
	return NewDashboard(cfg, store, az, logger), nil
}

func (d *Dashboard) Config() *Config { return d.cfg }

func (d *Dashboard) Backend() string { return d.analyzer.Name() }

// Analyze starts a run for target and returns immediately. The run
// finishes in the background; watch it through Subscribe or Session.
func (d *Dashboard) Analyze(target model.Target) (model.Session, error) {
	runID, err := d.session.Start(target)
	if err != nil {
		return d.session.Snapshot(), err
	}
	d.wg.Add(1)
	go d.run(runID, target)
	return d.session.Snapshot(), nil
}

func (d *Dashboard) run(runID string, target model.Target) {
	defer d.wg.Done()

	terminal := false
	for ev := range d.analyzer.Run(d.ctx, target) {
		switch ev.Kind {
		case model.EventLog:
			d.session.AppendLog(runID, ev.Message)
		case model.EventResult:
			terminal = true
			if ev.Result != nil {
				d.session.Complete(runID, *ev.Result)
			} else {
				d.session.Fail(runID, criticalPrefix+streamEndedNote)
			}
		case model.EventFailure:
			terminal = true
			d.logger.Warn("analysis failed",
				logging.Field{Key: "run_id", Value: runID},
				logging.Field{Key: "error", Value: ev.Err})
			d.session.Fail(runID, criticalPrefix+ev.Message)
		}
	}
	if !terminal {
		d.session.Fail(runID, criticalPrefix+streamEndedNote)
	}
}

func (d *Dashboard) Session() model.Session { return d.session.Snapshot() }

func (d *Dashboard) Reset() model.Session {
	d.session.Reset()
	return d.session.Snapshot()
}

// NewProject archives the session if it completed, then resets it. The
// returned entry is nil when nothing was archived.
func (d *Dashboard) NewProject(ctx context.Context) (*model.HistoryEntry, model.Session, error) {
	var archived *model.HistoryEntry
	_, err := d.session.Detach(func(s model.Session) error {
		entry, ok := s.ToHistoryEntry()
		if !ok {
			return nil
		}
		stored, err := d.history.Append(ctx, entry)
		if err != nil {
			return err
		}
		archived = &stored
		d.hub.Publish(model.DashboardEvent{Type: model.DashboardEventArchived, HistoryID: stored.ID})
		return nil
	})
	if err != nil {
		return nil, d.session.Snapshot(), fmt.Errorf("new project: %w", err)
	}
	return archived, d.session.Snapshot(), nil
}

func (d *Dashboard) History() []model.HistoryEntry { return d.history.List() }

func (d *Dashboard) HistoryEntry(id int64) (model.HistoryEntry, error) {
	e, ok := d.history.Get(id)
	if !ok {
		return model.HistoryEntry{}, fmt.Errorf("%w: %d", model.ErrHistoryNotFound, id)
	}
	return e, nil
}

// LoadHistory shows entry id as the current session.
func (d *Dashboard) LoadHistory(id int64) (model.Session, error) {
	e, err := d.HistoryEntry(id)
	if err != nil {
		return d.session.Snapshot(), err
	}
	if err := d.session.Restore(e); err != nil {
		return d.session.Snapshot(), err
	}
	return d.session.Snapshot(), nil
}

// Compare diffs entry headID against baseID, or against the previous scan
// of the same target when baseID is zero.
func (d *Dashboard) Compare(headID, baseID int64) (history.Comparison, error) {
	head, err := d.HistoryEntry(headID)
	if err != nil {
		return history.Comparison{}, err
	}
	var base model.HistoryEntry
	if baseID == 0 {
		var ok bool
		if base, ok = d.history.Previous(head); !ok {
			return history.Comparison{}, fmt.Errorf("%w: no earlier scan of %s", model.ErrHistoryNotFound, head.Name)
		}
	} else if base, err = d.HistoryEntry(baseID); err != nil {
		return history.Comparison{}, err
	}
	return history.Compare(base, head), nil
}

// Subscribe streams dashboard events until cancel is called or the
// dashboard closes.
func (d *Dashboard) Subscribe(buffer int) (<-chan model.DashboardEvent, func()) {
	return d.hub.Subscribe(buffer)
}

// Wait blocks until every started run has finished.
func (d *Dashboard) Wait() { d.wg.Wait() }

// Close stops in-flight runs and releases the backend and history.
func (d *Dashboard) Close() error {
	d.cancel()
	d.wg.Wait()
	d.hub.Close()
	return errors.Join(d.analyzer.Close(), d.history.Close())
}
