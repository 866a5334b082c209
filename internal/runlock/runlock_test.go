package runlock_test

import (
	"errors"
	"path/filepath"
	"testing"

	"plexsubs/internal/runlock"
)

func TestAcquireIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "plexsubs.lock")

	first, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if first.Path() != path {
		t.Fatalf("unexpected lock path %q", first.Path())
	}

	if _, err := runlock.Acquire(path); !errors.Is(err, runlock.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	second, err := runlock.Acquire(path)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	_ = second.Release()
}

func TestReleaseNil(t *testing.T) {
	var l *runlock.Lock
	if err := l.Release(); err != nil {
		t.Fatalf("Release on nil lock: %v", err)
	}
}
