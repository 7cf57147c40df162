// Package history keeps the append-only archive of completed scans.
package history

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/raysh454/inspectra/internal/interfaces"
	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
	"github.com/raysh454/inspectra/internal/utils"
)

var _ interfaces.HistoryStore = (*Store)(nil)

// Archive persists entries beneath a Store.
type Archive interface {
	Save(ctx context.Context, entry model.HistoryEntry) error
	LoadAll(ctx context.Context) ([]model.HistoryEntry, error)
	Close() error
}

// Store is an in-memory, append-only list of history entries, optionally
// written through to an Archive.
type Store struct {
	logger  logging.Logger
	now     func() time.Time
	archive Archive

	mu      sync.RWMutex
	entries []model.HistoryEntry // oldest first
	byID    map[int64]int
	lastID  int64
}

// NewStore returns an empty in-memory store.
func NewStore(logger logging.Logger) *Store {
	return &Store{
		logger: logger.With(logging.Field{Key: "component", Value: "history"}),
		now:    time.Now,
		byID:   make(map[int64]int),
	}
}

// Open builds a store from cfg. With persistence enabled it opens the
// SQLite archive and loads every saved entry.
func Open(ctx context.Context, cfg Config, logger logging.Logger) (*Store, error) {
	s := NewStore(logger)
	if !cfg.Persist {
		return s, nil
	}
	archive, err := OpenSQLiteArchive(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := s.attach(ctx, archive); err != nil {
		archive.Close()
		return nil, err
	}
	return s, nil
}

// NewStoreWithArchive returns a store backed by archive, preloaded with
// its entries.
func NewStoreWithArchive(ctx context.Context, archive Archive, logger logging.Logger) (*Store, error) {
	s := NewStore(logger)
	if err := s.attach(ctx, archive); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) attach(ctx context.Context, archive Archive) error {
	saved, err := archive.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load history archive: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archive = archive
	for _, e := range saved {
		s.insertLocked(e)
	}
	s.logger.Info("history archive loaded", logging.Field{Key: "entries", Value: len(saved)})
	return nil
}

// Append stores a copy of entry under a fresh id. Ids are the creation
// time in unix milliseconds, bumped past the last id on collision.
func (s *Store) Append(ctx context.Context, entry model.HistoryEntry) (model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}

	stored := entry.Clone()
	stored.ID = id
	stored.CreatedAt = now.UTC()
	if stored.Name == "" {
		stored.Name = stored.Target.DisplayName()
	}

	if s.archive != nil {
		if err := s.archive.Save(ctx, stored); err != nil {
			return model.HistoryEntry{}, fmt.Errorf("archive history entry: %w", err)
		}
	}
	s.insertLocked(stored)

	s.logger.Info("history entry appended",
		logging.Field{Key: "id", Value: id},
		logging.Field{Key: "name", Value: stored.Name},
		logging.Field{Key: "score", Value: stored.Score})
	return stored.Clone(), nil
}

func (s *Store) insertLocked(e model.HistoryEntry) {
	s.byID[e.ID] = len(s.entries)
	s.entries = append(s.entries, e)
	if e.ID > s.lastID {
		s.lastID = e.ID
	}
}

func (s *Store) Get(id int64) (model.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return model.HistoryEntry{}, false
	}
	return s.entries[i].Clone(), true
}

// All yields entries newest first. Entries appended while iterating are
// not visited.
func (s *Store) All() iter.Seq[model.HistoryEntry] {
	return func(yield func(model.HistoryEntry) bool) {
		s.mu.RLock()
		n := len(s.entries)
		s.mu.RUnlock()

		for i := n - 1; i >= 0; i-- {
			s.mu.RLock()
			e := s.entries[i].Clone()
			s.mu.RUnlock()
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Store) List() []model.HistoryEntry {
	out := make([]model.HistoryEntry, 0, s.Len())
	for e := range s.All() {
		out = append(out, e)
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Previous finds the newest entry older than entry for the same target.
func (s *Store) Previous(entry model.HistoryEntry) (model.HistoryEntry, bool) {
	for e := range s.All() {
		if e.ID >= entry.ID {
			continue
		}
		if sameTarget(e.Target, entry.Target) {
			return e, true
		}
	}
	return model.HistoryEntry{}, false
}

func sameTarget(a, b model.Target) bool {
	switch {
	case a.IsImage() && b.IsImage():
		return a.Image.Digest != "" && a.Image.Digest == b.Image.Digest
	case a.IsImage() || b.IsImage():
		return false
	default:
		return utils.SameTarget(a.URL, b.URL)
	}
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.archive == nil {
		return nil
	}
	err := s.archive.Close()
	s.archive = nil
	return err
}
