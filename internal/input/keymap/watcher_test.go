package keymap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "layout.json")
	if err := os.WriteFile(tmpFile, []byte(testDescription), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	w, err := NewWatcher(func(path string) { changed <- path })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Add(tmpFile); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := os.WriteFile(tmpFile, []byte(testDescription), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changed:
		want, _ := filepath.Abs(tmpFile)
		if path != want {
			t.Errorf("onChange path = %q, want %q", path, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification within 2s")
	}
}

func TestWatcherDetectsRenameReplace(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "layout.json")
	if err := os.WriteFile(tmpFile, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	w, err := NewWatcher(func(path string) { changed <- path })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Add(tmpFile); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Editors save by writing a sibling and renaming it into place.
	staging := filepath.Join(tmpDir, ".layout.json.tmp")
	if err := os.WriteFile(staging, []byte(testDescription), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(staging, tmpFile); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification for rename-and-replace within 2s")
	}
}

func TestWatcherIgnoresSiblings(t *testing.T) {
	tmpDir := t.TempDir()
	watchedFile := filepath.Join(tmpDir, "layout.json")
	otherFile := filepath.Join(tmpDir, "other.json")
	for _, p := range []string{watchedFile, otherFile} {
		if err := os.WriteFile(p, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	changed := make(chan string, 4)
	w, err := NewWatcher(func(path string) { changed <- path })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Add(watchedFile); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := os.WriteFile(otherFile, []byte("{ }"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-changed:
		t.Errorf("got notification for unwatched sibling %q", path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "layout.json")
	if err := os.WriteFile(tmpFile, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 16)
	w, err := NewWatcher(func(path string) { changed <- path })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Add(tmpFile); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// A burst of writes inside the debounce window collapses to one
	// notification.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(tmpFile, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification within 2s")
	}
	select {
	case <-changed:
		t.Error("burst produced more than one notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "layout.json")
	if err := os.WriteFile(tmpFile, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	w, err := NewWatcher(func(path string) { changed <- path })
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Add(tmpFile); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	// Close is idempotent.
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Add(tmpFile); err == nil {
		t.Error("Add() after Close() error = nil, want error")
	}

	if err := os.WriteFile(tmpFile, []byte("{ }"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
		t.Error("got notification after Close()")
	case <-time.After(300 * time.Millisecond):
	}
}
