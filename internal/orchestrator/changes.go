package orchestrator

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/codelovable/codelovable/internal/model"
)

// ChangeKind classifies what a generation did to one path.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
)

// FileChange summarizes the delta one generation produced for a single path.
type FileChange struct {
	Path         string     `json:"path"`
	Kind         ChangeKind `json:"kind"`
	LinesAdded   int        `json:"lines_added"`
	LinesRemoved int        `json:"lines_removed"`
}

// SummarizeChanges compares the working set before and after a generation
// and reports per-path deltas in the order the new files appear, followed by
// removed paths in their previous order. Unchanged files are omitted.
func SummarizeChanges(before, after []model.GeneratedFile) []FileChange {
	previous := make(map[string]string, len(before))
	for _, f := range before {
		previous[f.Path] = f.Content
	}

	var changes []FileChange
	seen := make(map[string]bool, len(after))
	for _, f := range after {
		seen[f.Path] = true
		old, existed := previous[f.Path]
		if !existed {
			added, _ := countLineChanges("", f.Content)
			changes = append(changes, FileChange{Path: f.Path, Kind: ChangeAdded, LinesAdded: added})
			continue
		}
		if old == f.Content {
			continue
		}
		added, removed := countLineChanges(old, f.Content)
		changes = append(changes, FileChange{Path: f.Path, Kind: ChangeModified, LinesAdded: added, LinesRemoved: removed})
	}

	for _, f := range before {
		if !seen[f.Path] {
			_, removed := countLineChanges(f.Content, "")
			changes = append(changes, FileChange{Path: f.Path, Kind: ChangeRemoved, LinesRemoved: removed})
		}
	}

	return changes
}

// countLineChanges runs a line-level diff and counts inserted and deleted
// lines.
func countLineChanges(before, after string) (added, removed int) {
	dmp := diffmatchpatch.New()
	beforeRunes, afterRunes, lines := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffMainRunes(beforeRunes, afterRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	for _, d := range diffs {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}
	return added, removed
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, r := range text {
		if r == '\n' {
			n++
		}
	}
	// A trailing chunk without a newline still counts as a line.
	if text[len(text)-1] != '\n' {
		n++
	}
	return n
}
