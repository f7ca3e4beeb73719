package orchestrator

import (
	"testing"

	"github.com/codelovable/codelovable/internal/model"
)

func TestSummarizeChangesAddedModifiedRemoved(t *testing.T) {
	before := []model.GeneratedFile{
		{Path: "app/page.tsx", Content: "line one\nline two\n"},
		{Path: "app/old.tsx", Content: "gone\n"},
		{Path: "app/same.tsx", Content: "stable\n"},
	}
	after := []model.GeneratedFile{
		{Path: "app/page.tsx", Content: "line one\nline two changed\nline three\n"},
		{Path: "app/same.tsx", Content: "stable\n"},
		{Path: "app/new.tsx", Content: "fresh\n"},
	}

	changes := SummarizeChanges(before, after)

	byPath := map[string]FileChange{}
	for _, c := range changes {
		byPath[c.Path] = c
	}

	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d: %+v", len(changes), changes)
	}
	if _, ok := byPath["app/same.tsx"]; ok {
		t.Error("unchanged file reported")
	}

	added, ok := byPath["app/new.tsx"]
	if !ok || added.Kind != ChangeAdded {
		t.Errorf("expected app/new.tsx added, got %+v", added)
	}
	if added.LinesAdded != 1 || added.LinesRemoved != 0 {
		t.Errorf("unexpected line counts for added file: %+v", added)
	}

	removed, ok := byPath["app/old.tsx"]
	if !ok || removed.Kind != ChangeRemoved {
		t.Errorf("expected app/old.tsx removed, got %+v", removed)
	}
	if removed.LinesAdded != 0 || removed.LinesRemoved != 1 {
		t.Errorf("unexpected line counts for removed file: %+v", removed)
	}

	modified, ok := byPath["app/page.tsx"]
	if !ok || modified.Kind != ChangeModified {
		t.Errorf("expected app/page.tsx modified, got %+v", modified)
	}
	if modified.LinesAdded == 0 && modified.LinesRemoved == 0 {
		t.Errorf("modified file reported no line changes: %+v", modified)
	}
}

func TestSummarizeChangesOrder(t *testing.T) {
	before := []model.GeneratedFile{
		{Path: "a.ts", Content: "x\n"},
		{Path: "b.ts", Content: "x\n"},
	}
	after := []model.GeneratedFile{
		{Path: "c.ts", Content: "x\n"},
		{Path: "a.ts", Content: "y\n"},
		{Path: "d.ts", Content: "x\n"},
	}

	changes := SummarizeChanges(before, after)
	var order []string
	for _, c := range changes {
		order = append(order, c.Path)
	}

	// New-set order first, then removals in previous order.
	want := []string{"c.ts", "a.ts", "d.ts", "b.ts"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestSummarizeChangesEmpty(t *testing.T) {
	if changes := SummarizeChanges(nil, nil); len(changes) != 0 {
		t.Errorf("expected no changes, got %+v", changes)
	}

	same := []model.GeneratedFile{{Path: "a.ts", Content: "x\n"}}
	if changes := SummarizeChanges(same, same); len(changes) != 0 {
		t.Errorf("expected no changes for identical sets, got %+v", changes)
	}
}
