package history

import (
	"fmt"
	"strings"

	"github.com/raysh454/inspectra/internal/model"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type DiffOp string

const (
	DiffAdded   DiffOp = "added"
	DiffRemoved DiffOp = "removed"
	DiffEqual   DiffOp = "equal"
)

// DiffLine is one line of the rendered issue listing diff.
type DiffLine struct {
	Op   DiffOp `json:"op"`
	Text string `json:"text"`
}

// Comparison summarizes how head differs from base.
type Comparison struct {
	Base       model.HistoryEntry `json:"base"`
	Head       model.HistoryEntry `json:"head"`
	ScoreDelta int                `json:"score_delta"`
	Added      []model.Issue      `json:"added"`
	Resolved   []model.Issue      `json:"resolved"`
	Unchanged  []model.Issue      `json:"unchanged"`
	Diff       []DiffLine         `json:"diff"`
}

// Compare diffs two entries. Issues match on category and description.
func Compare(base, head model.HistoryEntry) Comparison {
	c := Comparison{
		Base:       base.Clone(),
		Head:       head.Clone(),
		ScoreDelta: head.Score - base.Score,
		Added:      []model.Issue{},
		Resolved:   []model.Issue{},
		Unchanged:  []model.Issue{},
	}

	inBase := make(map[string]bool, len(base.Issues))
	for _, is := range base.Issues {
		inBase[issueKey(is)] = true
	}
	inHead := make(map[string]bool, len(head.Issues))
	for _, is := range head.Issues {
		k := issueKey(is)
		inHead[k] = true
		if inBase[k] {
			c.Unchanged = append(c.Unchanged, is)
		} else {
			c.Added = append(c.Added, is)
		}
	}
	for _, is := range base.Issues {
		if !inHead[issueKey(is)] {
			c.Resolved = append(c.Resolved, is)
		}
	}

	c.Diff = diffListings(renderIssues(base.Issues), renderIssues(head.Issues))
	return c
}

func issueKey(is model.Issue) string {
	return strings.ToLower(is.Category) + "\x00" + strings.ToLower(is.Description)
}

func renderIssues(issues []model.Issue) string {
	var b strings.Builder
	for _, is := range issues {
		if is.Severity != "" {
			fmt.Fprintf(&b, "[%s] %s: %s\n", is.Severity, is.Category, is.Description)
		} else {
			fmt.Fprintf(&b, "%s: %s\n", is.Category, is.Description)
		}
	}
	return b.String()
}

// diffListings is a line-mode diff of two rendered listings.
func diffListings(base, head string) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(base, head)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	out := []DiffLine{}
	for _, d := range diffs {
		var op DiffOp
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffAdded
		case diffmatchpatch.DiffDelete:
			op = DiffRemoved
		default:
			op = DiffEqual
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line = strings.TrimSuffix(line, "\n"); line != "" {
				out = append(out, DiffLine{Op: op, Text: line})
			}
		}
	}
	return out
}
