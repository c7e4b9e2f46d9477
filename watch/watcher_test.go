package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, root string, opts Options) *Watcher {
	t.Helper()
	if opts.Debounce == 0 {
		opts.Debounce = 50 * time.Millisecond
	}
	w, err := New(root, opts, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	t.Cleanup(func() { _ = w.Stop() })

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case event := <-w.Events():
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for watch event")
	}
	return Event{}
}

func expectNoEvent(t *testing.T, w *Watcher, wait time.Duration) {
	t.Helper()
	select {
	case event := <-w.Events():
		t.Errorf("unexpected event: %+v", event)
	case <-time.After(wait):
	}
}

func TestNew_Defaults(t *testing.T) {
	w, err := New(t.TempDir(), Options{}, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Stop()

	if w.debounce != DefaultDebounce {
		t.Errorf("expected default debounce, got %v", w.debounce)
	}
	if !w.extensions[".cx"] || !w.extensions[".json"] {
		t.Errorf("expected .cx and .json by default, got %v", w.extensions)
	}
	if !w.excludes[".git"] {
		t.Error("expected .git to be excluded")
	}

	w2, err := New(t.TempDir(), Options{Extensions: []string{"CX"}}, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w2.Stop()
	if !w2.extensions[".cx"] || w2.extensions[".json"] {
		t.Errorf("expected only .cx, got %v", w2.extensions)
	}
}

func TestWatcher_FileCreation(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root, Options{})

	if err := os.WriteFile(filepath.Join(root, "net.cx"), []byte(`[{"nodes": []}]`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	event := waitEvent(t, w)
	if event.Op != OpCreate {
		t.Errorf("expected create operation, got %s", event.Op)
	}
	if event.Path != "net.cx" {
		t.Errorf("expected path net.cx, got %s", event.Path)
	}
}

func TestWatcher_FileModification(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "net.cx")
	if err := os.WriteFile(path, []byte(`[]`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	w := startWatcher(t, root, Options{})
	w.Seed("net.cx", []byte(`[]`))

	// rewriting identical content is not a change
	if err := os.WriteFile(path, []byte(`[]`), 0644); err != nil {
		t.Fatalf("failed to rewrite test file: %v", err)
	}
	expectNoEvent(t, w, 300*time.Millisecond)

	if err := os.WriteFile(path, []byte(`[{"nodes": [{"@id": 1}]}]`), 0644); err != nil {
		t.Fatalf("failed to modify test file: %v", err)
	}
	event := waitEvent(t, w)
	if event.Op != OpModify {
		t.Errorf("expected modify operation, got %s", event.Op)
	}
}

func TestWatcher_FileDeletion(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "net.json")
	if err := os.WriteFile(path, []byte(`[]`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	w := startWatcher(t, root, Options{})
	w.Seed("net.json", []byte(`[]`))

	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove test file: %v", err)
	}
	event := waitEvent(t, w)
	if event.Op != OpDelete {
		t.Errorf("expected delete operation, got %s", event.Op)
	}
	if _, ok := w.hash("net.json"); ok {
		t.Error("hash should be forgotten after delete")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	w := startWatcher(t, root, Options{})

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ".git", "HEAD.json"), []byte("{}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	expectNoEvent(t, w, 300*time.Millisecond)
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	root := t.TempDir()
	w := startWatcher(t, root, Options{})

	sub := filepath.Join(root, "batch")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(sub, "net.cx"), []byte(`[]`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	event := waitEvent(t, w)
	if event.Path != filepath.Join("batch", "net.cx") {
		t.Errorf("expected batch/net.cx, got %s", event.Path)
	}
}

func TestContentHash(t *testing.T) {
	if contentHash([]byte("a")) == contentHash([]byte("b")) {
		t.Error("different content should hash differently")
	}
	if len(contentHash(nil)) != 64 {
		t.Error("expected hex sha256")
	}
}
