package history

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/raysh454/inspectra/internal/model"
	"github.com/raysh454/inspectra/internal/testutil"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func entryFor(url string, score int, issues ...model.Issue) model.HistoryEntry {
	return model.HistoryEntry{
		Name:        url,
		Target:      model.NewTarget(url, nil),
		Score:       score,
		Issues:      issues,
		Logs:        []model.LogEntry{{Time: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), Message: "Analysis complete."}},
		Suggestions: []string{"fix it"},
		StatusLabel: model.StatusCompleted.Label(),
		StatusStyle: model.StatusCompleted.Style(),
	}
}

func TestStore_AppendAssignsIncreasingIDs(t *testing.T) {
	t.Parallel()
	s := NewStore(&testutil.DummyLogger{})
	now := time.UnixMilli(1_700_000_000_000)
	s.now = fixedClock(now)

	var ids []int64
	for i := 0; i < 3; i++ {
		e, err := s.Append(context.Background(), entryFor("https://example.com", 80))
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
		ids = append(ids, e.ID)
	}
	want := []int64{1_700_000_000_000, 1_700_000_000_001, 1_700_000_000_002}
	if !slices.Equal(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestStore_ListNewestFirstAndRestartable(t *testing.T) {
	t.Parallel()
	s := NewStore(&testutil.DummyLogger{})
	for _, u := range []string{"https://a.example", "https://b.example", "https://c.example"} {
		if _, err := s.Append(context.Background(), entryFor(u, 70)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	names := func() []string {
		var out []string
		for e := range s.All() {
			out = append(out, e.Name)
		}
		return out
	}
	want := []string{"https://c.example", "https://b.example", "https://a.example"}
	if got := names(); !slices.Equal(got, want) {
		t.Errorf("first pass = %v, want %v", got, want)
	}
	if got := names(); !slices.Equal(got, want) {
		t.Errorf("second pass = %v, want %v", got, want)
	}
	if got := s.List(); len(got) != 3 || got[0].Name != want[0] {
		t.Errorf("List = %v", got)
	}
}

func TestStore_EntriesAreCopies(t *testing.T) {
	t.Parallel()
	s := NewStore(&testutil.DummyLogger{})
	in := entryFor("https://example.com", 90, model.Issue{Category: "UX", Description: "a"})
	stored, _ := s.Append(context.Background(), in)

	in.Issues[0].Description = "mutated"
	stored.Suggestions[0] = "mutated"

	got, ok := s.Get(stored.ID)
	if !ok {
		t.Fatal("Get: not found")
	}
	if got.Issues[0].Description != "a" || got.Suggestions[0] != "fix it" {
		t.Errorf("stored entry was mutated through a caller copy: %+v", got)
	}
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()
	s := NewStore(&testutil.DummyLogger{})
	if _, ok := s.Get(12345); ok {
		t.Error("Get on empty store returned ok")
	}
}

func TestStore_Previous(t *testing.T) {
	t.Parallel()
	s := NewStore(&testutil.DummyLogger{})
	first, _ := s.Append(context.Background(), entryFor("https://Example.com/", 60))
	s.Append(context.Background(), entryFor("https://other.example", 70))
	latest, _ := s.Append(context.Background(), entryFor("https://example.com", 80))

	prev, ok := s.Previous(latest)
	if !ok || prev.ID != first.ID {
		t.Errorf("Previous = %v, %v; want id %d", prev.ID, ok, first.ID)
	}
	if _, ok := s.Previous(first); ok {
		t.Error("Previous of the oldest entry returned ok")
	}
}

type failingArchive struct{}

func (failingArchive) Save(context.Context, model.HistoryEntry) error         { return errors.New("disk full") }
func (failingArchive) LoadAll(context.Context) ([]model.HistoryEntry, error) { return nil, nil }
func (failingArchive) Close() error                                          { return nil }

func TestStore_ArchiveFailureKeepsEntryOut(t *testing.T) {
	t.Parallel()
	s, err := NewStoreWithArchive(context.Background(), failingArchive{}, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewStoreWithArchive: %v", err)
	}
	if _, err := s.Append(context.Background(), entryFor("https://example.com", 80)); err == nil {
		t.Fatal("Append succeeded despite archive failure")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestStore_SQLitePersistence(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := Config{Persist: true, DBPath: filepath.Join(t.TempDir(), "nested", "history.db")}

	s, err := Open(ctx, cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	img := model.NewTarget("", &model.ImageRef{Name: "shot.png", Digest: "abc"})
	e1, _ := s.Append(ctx, entryFor("https://example.com", 81, model.Issue{Category: "SEO", Description: "no title", Severity: "Minor"}))
	imgEntry := entryFor("", 66)
	imgEntry.Target = img
	imgEntry.Name = ""
	e2, err := s.Append(ctx, imgEntry)
	if err != nil {
		t.Fatalf("Append image: %v", err)
	}
	if e2.Name != model.ImageName {
		t.Errorf("image entry name = %q", e2.Name)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(ctx, cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get(e1.ID)
	if !ok {
		t.Fatal("entry lost across reopen")
	}
	if got.Score != 81 || len(got.Issues) != 1 || got.Issues[0] != e1.Issues[0] || got.StatusStyle != e1.StatusStyle {
		t.Errorf("reloaded = %+v, want %+v", got, e1)
	}
	if len(got.Logs) != 1 || !got.Logs[0].Time.Equal(e1.Logs[0].Time) || got.Logs[0].Message != e1.Logs[0].Message {
		t.Errorf("logs = %+v", got.Logs)
	}
	gotImg, _ := reopened.Get(e2.ID)
	if !gotImg.Target.IsImage() || gotImg.Target.Image.Digest != "abc" {
		t.Errorf("image target = %+v", gotImg.Target)
	}

	e3, err := reopened.Append(ctx, entryFor("https://example.com", 90))
	if err != nil {
		t.Fatalf("Append after reopen: %v", err)
	}
	if e3.ID <= e2.ID {
		t.Errorf("id %d not greater than reloaded %d", e3.ID, e2.ID)
	}
}
