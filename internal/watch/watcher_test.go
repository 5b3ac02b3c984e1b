package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{0, "NONE"},
		{OpWrite, "WRITE"},
		{OpCreate | OpWrite, "CREATE|WRITE"},
		{OpRemove | OpRename | OpChmod, "REMOVE|RENAME|CHMOD"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	got := convertOp(fsnotify.Create | fsnotify.Write)
	if !got.Has(OpCreate) || !got.Has(OpWrite) || got.Has(OpRemove) {
		t.Errorf("convertOp() = %v", got)
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	var mu sync.Mutex
	var got []Event
	d := newDebouncer(20*time.Millisecond, func(e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
	})

	now := time.Now()
	d.add(Event{Path: "/a", Op: OpCreate, Time: now})
	d.add(Event{Path: "/a", Op: OpWrite, Time: now})
	d.add(Event{Path: "/b", Op: OpWrite, Time: now})
	if d.len() != 2 {
		t.Errorf("pending = %d, want 2", d.len())
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n == 2 || time.Now().After(deadline) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Fatalf("emitted %d events, want 2", len(got))
	}
	for _, e := range got {
		if e.Path == "/a" && e.Op != OpCreate|OpWrite {
			t.Errorf("coalesced op = %v", e.Op)
		}
	}
}

func TestDebouncerStop(t *testing.T) {
	fired := make(chan Event, 1)
	d := newDebouncer(10*time.Millisecond, func(e Event) { fired <- e })
	d.add(Event{Path: "/a", Op: OpWrite})
	d.stop()
	d.add(Event{Path: "/b", Op: OpWrite})

	select {
	case e := <-fired:
		t.Errorf("stopped debouncer emitted %v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDelay(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := w.Add(path); !errors.Is(err, ErrAlreadyWatching) {
		t.Errorf("second Add() = %v, want ErrAlreadyWatching", err)
	}

	// A sibling file must not be reported.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-w.Events():
		abs, _ := filepath.Abs(path)
		if e.Path != abs {
			t.Errorf("event path = %q, want %q", e.Path, abs)
		}
		if !e.Op.Has(OpWrite) && !e.Op.Has(OpCreate) {
			t.Errorf("event op = %v", e.Op)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no event within timeout")
	}
}

func TestWatcherRemoveAndClose(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := w.Add(b); err != nil {
		t.Fatal(err)
	}
	if got := w.Files(); len(got) != 2 {
		t.Errorf("Files() = %v", got)
	}

	if !w.Remove(a) {
		t.Error("Remove(a) = false")
	}
	if w.Remove(a) {
		t.Error("second Remove(a) = true")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if err := w.Add(a); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Add after Close = %v", err)
	}
	if err := w.Run(context.Background(), func(Event) {}); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Run after Close = %v", err)
	}
}

func TestWatcherRunStopsOnContext(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx, func(Event) {}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}
