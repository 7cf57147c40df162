package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/raysh454/inspectra/internal/model"
)

func TestNewTarget_ImageWins(t *testing.T) {
	img := &model.ImageRef{Name: "shot.png"}
	tgt := model.NewTarget("https://example.com", img)

	if !tgt.IsImage() {
		t.Fatal("expected image target")
	}
	if tgt.URL != "" {
		t.Errorf("expected URL to be dropped, got %q", tgt.URL)
	}
	if tgt.DisplayName() != model.ImageName {
		t.Errorf("unexpected display name %q", tgt.DisplayName())
	}

	img.Name = "changed.png"
	if tgt.Image.Name != "shot.png" {
		t.Error("target must not alias the caller's ImageRef")
	}
}

func TestNewTarget_TrimsURL(t *testing.T) {
	tgt := model.NewTarget("  https://example.com  ", nil)
	if tgt.URL != "https://example.com" {
		t.Errorf("got %q", tgt.URL)
	}
	if model.NewTarget("   ", nil).IsEmpty() != true {
		t.Error("whitespace-only input should be empty")
	}
}

func TestStatus_LabelsAndStyles(t *testing.T) {
	cases := []struct {
		s     model.Status
		label string
		fg    string
	}{
		{model.StatusIdle, "Ready", "#a1a1aa"},
		{model.StatusRunning, "Inspecting...", "#f5824a"},
		{model.StatusCompleted, "Completed", "#10b981"},
		{model.StatusError, "Error", "#ef4444"},
	}
	for _, c := range cases {
		if c.s.Label() != c.label {
			t.Errorf("%s label = %q, want %q", c.s, c.s.Label(), c.label)
		}
		if c.s.Style().Foreground != c.fg {
			t.Errorf("%s fg = %q, want %q", c.s, c.s.Style().Foreground, c.fg)
		}
	}
	if model.StatusRunning.Terminal() || !model.StatusError.Terminal() {
		t.Error("unexpected Terminal() result")
	}
}

func TestSession_ToHistoryEntry(t *testing.T) {
	score := 80
	s := model.Session{
		Target:      model.Target{URL: "https://example.com"},
		Status:      model.StatusCompleted,
		StatusLabel: "Completed",
		Score:       &score,
		Issues:      []model.Issue{{Category: "SEO", Description: "missing title"}},
		Suggestions: []string{"add a title"},
	}

	e, ok := s.ToHistoryEntry()
	if !ok {
		t.Fatal("expected completed session to archive")
	}
	if e.Name != "https://example.com" || e.Score != 80 || len(e.Issues) != 1 || len(e.Suggestions) != 1 {
		t.Errorf("unexpected entry: %+v", e)
	}

	s.Issues[0].Description = "mutated"
	if e.Issues[0].Description != "missing title" {
		t.Error("entry must not alias session issues")
	}

	s.RestoredFrom = 42
	if _, ok := s.ToHistoryEntry(); ok {
		t.Error("restored sessions must not be archived again")
	}

	if _, ok := (model.Session{Status: model.StatusError}).ToHistoryEntry(); ok {
		t.Error("failed sessions must not be archived")
	}
}

func TestValidationError_IsInvalidURL(t *testing.T) {
	var err error = &model.ValidationError{Input: "notaurl"}
	if !errors.Is(err, model.ErrInvalidURL) {
		t.Error("ValidationError should match ErrInvalidURL")
	}
}

func TestNewImageRef(t *testing.T) {
	img, err := model.NewImageRef("", "image/png", strings.NewReader("abc"))
	if err != nil {
		t.Fatalf("NewImageRef: %v", err)
	}
	// sha256("abc")
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if img.Digest != want || img.Size != 3 || img.Name != model.ImageName {
		t.Errorf("image = %+v", img)
	}

	empty, err := model.NewImageRef("x.png", "", strings.NewReader(""))
	if err != nil || empty != nil {
		t.Errorf("empty stream = %+v, %v; want nil", empty, err)
	}
}
