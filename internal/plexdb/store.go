package plexdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrDatabaseOpen marks a database that is missing, unreadable, not SQLite, or
// lacks the tables extraction relies on.
var ErrDatabaseOpen = errors.New("open plex database")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// uriEscaper escapes the characters SQLite treats specially in a file: URI path.
var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// readOnlyDSN builds a mode=ro URI. A read-only connection never checkpoints
// a WAL into the main file or removes the -wal file on close.
func readOnlyDSN(path string) string {
	return "file:" + uriEscaper.Replace(filepath.ToSlash(path)) + "?mode=ro"
}

// openReadOnly opens path read-only with a single connection in query-only
// mode and verifies that every table in required exists.
func openReadOnly(ctx context.Context, path string, required ...string) (*sql.DB, error) {
	ctx = ensureContext(ctx)
	if err := checkDatabaseFile(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatabaseOpen, path, err)
	}
	// Pragmas are per connection; pin the pool to one so they stick.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA query_only = ON",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %s: apply pragma %q: %w", ErrDatabaseOpen, path, pragma, execErr)
		}
	}

	for _, table := range required {
		var count int
		err := retryOnBusy(ctx, func() error {
			return db.QueryRowContext(ctx,
				"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=?", table,
			).Scan(&count)
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %s: %w", ErrDatabaseOpen, path, err)
		}
		if count == 0 {
			_ = db.Close()
			return nil, fmt.Errorf("%w: %s: missing table %q", ErrDatabaseOpen, path, table)
		}
	}

	return db, nil
}
