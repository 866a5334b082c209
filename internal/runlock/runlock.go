// Package runlock keeps two extraction runs from sharing a state directory.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned when another process holds the lock.
var ErrAlreadyRunning = errors.New("another plexsubs run is already in progress")

// Lock is a held advisory file lock.
type Lock struct {
	lock *flock.Flock
}

// Acquire takes the lock at path without blocking.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, path)
	}
	return &Lock{lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	if l == nil || l.lock == nil {
		return ""
	}
	return l.lock.Path()
}

// Release drops the lock. Safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
