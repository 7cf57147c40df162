package interfaces

import (
	"context"
	"iter"

	"github.com/raysh454/inspectra/internal/model"
)

// HistoryStore is the append-only archive of completed sessions.
type HistoryStore interface {
	// Append stores a copy of entry, assigns its id and returns the stored entry.
	Append(ctx context.Context, entry model.HistoryEntry) (model.HistoryEntry, error)

	// Get looks an entry up by id. The bool is false for unknown ids.
	Get(id int64) (model.HistoryEntry, bool)

	// All yields entries most recent first. Each call starts over.
	All() iter.Seq[model.HistoryEntry]

	// List materializes All.
	List() []model.HistoryEntry

	// Previous returns the most recent entry older than entry for the same target.
	Previous(entry model.HistoryEntry) (model.HistoryEntry, bool)

	Close() error
}
