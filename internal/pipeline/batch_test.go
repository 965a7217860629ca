package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeSpec(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessAll_KeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 6 {
		body := fmt.Sprintf("%d Section\nIt shall work.\n%d.1 Child\n", i+1, i+1)
		paths = append(paths, writeSpec(t, dir, fmt.Sprintf("doc%d.txt", i), body))
	}

	results, err := NewEngine(DefaultOptions(), testLogger()).ProcessAll(context.Background(), paths, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d: expected path %s, got %s", i, paths[i], r.Path)
		}
		want := fmt.Sprintf("%d", i+1)
		if got := r.Result.Document.Sections[0].Hierarchy; got != want {
			t.Errorf("result %d: expected first section %s, got %s", i, want, got)
		}
		// Each document resolves its child against its own title map.
		if p := r.Result.Document.Sections[1].HierarchyTree.Parent; p == nil || *p != want+" Section" {
			t.Errorf("result %d: expected parent %q, got %v", i, want+" Section", p)
		}
	}
}

func TestProcessAll_FailureStopsBatch(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeSpec(t, dir, "ok.txt", "1 Scope\n"),
		filepath.Join(dir, "missing.txt"),
	}
	_, err := NewEngine(DefaultOptions(), testLogger()).ProcessAll(context.Background(), paths, 0)
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("expected ErrInputNotFound, got %v", err)
	}
}

func TestProcessAll_Empty(t *testing.T) {
	results, err := NewEngine(DefaultOptions(), testLogger()).ProcessAll(context.Background(), nil, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
