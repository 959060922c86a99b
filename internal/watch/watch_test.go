package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRunCallsFuncOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.go")
	if err := os.WriteFile(path, []byte("package manifest\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	w, err := New(path, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls <- struct{}{}
			return nil
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for called := false; !called; {
		select {
		case <-calls:
			called = true
		case <-tick.C:
			// The watcher may not be registered yet; keep touching the file.
			if err := os.WriteFile(path, []byte("package manifest\n\n// edited\n"), 0o644); err != nil {
				t.Fatalf("rewrite: %v", err)
			}
		case <-deadline:
			t.Fatal("callback was not invoked")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancellation")
	}
}

func TestRelevantFiltersOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.go")
	w, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	cases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write to source", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"rename onto source", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"generated output", fsnotify.Event{Name: filepath.Join(dir, "manifest_builder.go"), Op: fsnotify.Write}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.relevant(tc.ev); got != tc.want {
				t.Fatalf("relevant(%v) = %v, want %v", tc.ev, got, tc.want)
			}
		})
	}
}

func TestNewRequiresPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestRunRequiresFunc(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "x.go"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := w.Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil callback")
	}
}
