package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/raysh454/inspectra/internal/model"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLiteArchive stores history entries in a single SQLite table. Slices
// are kept as JSON columns.
type SQLiteArchive struct {
	db *sql.DB
}

// OpenSQLiteArchive opens (creating if needed) the database at path.
// ":memory:" gives a private in-memory database.
func OpenSQLiteArchive(path string) (*SQLiteArchive, error) {
	if path == "" {
		return nil, fmt.Errorf("history db path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("ensure history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	a, err := NewSQLiteArchive(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// NewSQLiteArchive runs the embedded schema against db.
func NewSQLiteArchive(db *sql.DB) (*SQLiteArchive, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}
	return &SQLiteArchive{db: db}, nil
}

func (a *SQLiteArchive) Save(ctx context.Context, e model.HistoryEntry) error {
	target, err := json.Marshal(e.Target)
	if err != nil {
		return fmt.Errorf("marshal target: %w", err)
	}
	logs, err := json.Marshal(nonNil(e.Logs))
	if err != nil {
		return fmt.Errorf("marshal logs: %w", err)
	}
	issues, err := json.Marshal(nonNil(e.Issues))
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	suggestions, err := json.Marshal(nonNil(e.Suggestions))
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO history_entries
			(id, name, target_json, score, logs_json, issues_json, suggestions_json,
			 status_label, status_bg, status_fg, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, string(target), e.Score, string(logs), string(issues), string(suggestions),
		e.StatusLabel, e.StatusStyle.Background, e.StatusStyle.Foreground, e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert history entry %d: %w", e.ID, err)
	}
	return nil
}

// LoadAll returns every saved entry, oldest first.
func (a *SQLiteArchive) LoadAll(ctx context.Context) ([]model.HistoryEntry, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, target_json, score, logs_json, issues_json, suggestions_json,
		       status_label, status_bg, status_fg, created_at
		FROM history_entries ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query history entries: %w", err)
	}
	defer rows.Close()

	var out []model.HistoryEntry
	for rows.Next() {
		var (
			e                                  model.HistoryEntry
			target, logs, issues, suggestions string
			created                            int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &target, &e.Score, &logs, &issues, &suggestions,
			&e.StatusLabel, &e.StatusStyle.Background, &e.StatusStyle.Foreground, &created); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if err := decodeColumns(&e, target, logs, issues, suggestions); err != nil {
			return nil, fmt.Errorf("decode history entry %d: %w", e.ID, err)
		}
		e.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func decodeColumns(e *model.HistoryEntry, target, logs, issues, suggestions string) error {
	if err := json.Unmarshal([]byte(target), &e.Target); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(logs), &e.Logs); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(issues), &e.Issues); err != nil {
		return err
	}
	return json.Unmarshal([]byte(suggestions), &e.Suggestions)
}

func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
