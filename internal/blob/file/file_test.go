package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, ok, err := s.Get(ctx, "mercadoplanner_shopping_lists"); ok || err != nil {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "mercadoplanner_shopping_lists", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := s.Get(ctx, "mercadoplanner_shopping_lists")
	if err != nil || !ok || string(got) != `[]` {
		t.Fatalf("Get = %q ok=%v err=%v", got, ok, err)
	}

	if err := s.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	if err := s.Delete(ctx, "a", "never-written"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatalf("a still present after delete")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("temp files left behind: %v", names)
	}
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Set(context.Background(), "../escape", []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "__escape.json")); err != nil {
		t.Fatalf("expected sanitized file inside base dir: %v", err)
	}
}

func TestFileStoreCanceledContext(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.SetMany(ctx, map[string][]byte{"a": []byte("1")}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestFileStoreSetManyStagesBeforeRename(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SetMany(ctx, map[string][]byte{"lists": []byte(`["old"]`), "items": []byte(`["old"]`)}); err != nil {
		t.Fatalf("SetMany: %v", err)
	}

	calls := 0
	s.createTemp = func(dir, pattern string) (*os.File, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("disk full")
		}
		return os.CreateTemp(dir, pattern)
	}
	err = s.SetMany(ctx, map[string][]byte{"lists": []byte(`[]`), "items": []byte(`[]`)})
	if err == nil {
		t.Fatalf("expected staging error")
	}

	for _, k := range []string{"lists", "items"} {
		got, _, err := s.Get(ctx, k)
		if err != nil || string(got) != `["old"]` {
			t.Fatalf("%s = %q err=%v, want untouched", k, got, err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected only the two data files, got %d entries", len(entries))
	}
}
