package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raysh454/inspectra/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, dbPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inspectra.yaml")
	data := fmt.Sprintf("history:\n  persist: true\n  db_path: %s\n", dbPath)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	t.Parallel()
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, Version) || !strings.Contains(out, "simulated") {
		t.Errorf("output = %q", out)
	}
}

func TestScan_Simulated(t *testing.T) {
	t.Parallel()
	out, err := run(t, "scan", "https://example.com", "--seed", "9", "--step-delay", "0s")
	if err != nil {
		t.Fatalf("scan: %v\n%s", err, out)
	}
	for _, want := range []string{"Synchronizing viewport with https://example.com...", "Completed", "/100", "Suggestions"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScan_JSON(t *testing.T) {
	t.Parallel()
	out, err := run(t, "scan", "https://example.com", "--step-delay", "0s", "--json")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var s model.Session
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if s.Status != model.StatusCompleted || s.Score == nil || len(s.Issues) != 4 {
		t.Errorf("session = %+v", s)
	}
}

func TestScan_Image(t *testing.T) {
	t.Parallel()
	img := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(img, []byte("not really a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "scan", "--image", img, "--step-delay", "0s")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !strings.Contains(out, "Decoding screenshot shot.png...") || !strings.Contains(out, model.ImageName) {
		t.Errorf("output = %s", out)
	}
}

func TestScan_Rejections(t *testing.T) {
	t.Parallel()
	if _, err := run(t, "scan", "notaurl"); !errors.Is(err, model.ErrInvalidURL) {
		t.Errorf("invalid url err = %v", err)
	}
	if _, err := run(t, "scan"); !errors.Is(err, model.ErrEmptyInput) {
		t.Errorf("empty err = %v", err)
	}
	if _, err := run(t, "scan", "https://example.com", "--backend", "nope"); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestScanSaveThenHistory(t *testing.T) {
	t.Parallel()
	cfgPath := writeConfig(t, filepath.Join(t.TempDir(), "history.db"))

	if _, err := run(t, "--config", cfgPath, "scan", "https://example.com", "--step-delay", "0s", "--save"); err != nil {
		t.Fatalf("scan --save: %v", err)
	}
	out, err := run(t, "--config", cfgPath, "history", "--json")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var entries []model.HistoryEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(entries) != 1 || entries[0].Name != "https://example.com" || len(entries[0].Suggestions) != 4 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestHistory_InMemoryHint(t *testing.T) {
	t.Parallel()
	out, err := run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "in-memory") {
		t.Errorf("output = %q", out)
	}
}
