package testsupport

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

const (
	blobsFileName   = "com.plexapp.plugins.library.blobs.db"
	libraryFileName = "com.plexapp.plugins.library.db"
)

// BlobRow is one row of the Plex blobs table.
type BlobRow struct {
	BlobType int
	LinkedID int64
	Blob     []byte
}

// StreamRow is one subtitle stream joined to its media part.
type StreamRow struct {
	StreamID int64
	PartID   int64
	File     string
	Codec    string
	Language string
	Forced   int
}

// Gzip compresses data for use as a blob payload.
func Gzip(t testing.TB, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

// SubtitleBlob is a BlobRow with the subtitle blob type.
func SubtitleBlob(linkedID int64, blob []byte) BlobRow {
	return BlobRow{BlobType: 3, LinkedID: linkedID, Blob: blob}
}

// WriteBlobsDB creates a blobs database at path with the given rows in order.
func WriteBlobsDB(t testing.TB, path string, rows ...BlobRow) {
	t.Helper()

	db := openFixture(t, path)
	defer db.Close()

	mustExec(t, db, `CREATE TABLE blobs (id INTEGER PRIMARY KEY AUTOINCREMENT, blob_type INTEGER, linked_id INTEGER, blob BLOB)`)
	for _, row := range rows {
		mustExec(t, db, `INSERT INTO blobs (blob_type, linked_id, blob) VALUES (?, ?, ?)`, row.BlobType, row.LinkedID, row.Blob)
	}
}

// WriteLibraryDB creates a library database at path containing the given
// streams. Parts are inserted once per distinct PartID.
func WriteLibraryDB(t testing.TB, path string, streams ...StreamRow) {
	t.Helper()

	db := openFixture(t, path)
	defer db.Close()

	mustExec(t, db, `CREATE TABLE media_parts (id INTEGER PRIMARY KEY, file TEXT)`)
	mustExec(t, db, `CREATE TABLE media_streams (id INTEGER PRIMARY KEY, media_part_id INTEGER, codec TEXT, language TEXT, forced INTEGER)`)
	seen := map[int64]struct{}{}
	for _, s := range streams {
		if _, ok := seen[s.PartID]; !ok {
			seen[s.PartID] = struct{}{}
			mustExec(t, db, `INSERT INTO media_parts (id, file) VALUES (?, ?)`, s.PartID, s.File)
		}
		mustExec(t, db, `INSERT INTO media_streams (id, media_part_id, codec, language, forced) VALUES (?, ?, ?, ?, ?)`,
			s.StreamID, s.PartID, s.Codec, s.Language, s.Forced)
	}
}

// WritePlexDatabases creates a Databases folder holding both fixtures and
// returns its path.
func WritePlexDatabases(t testing.TB, blobs []BlobRow, streams []StreamRow) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "Databases")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir databases: %v", err)
	}
	WriteBlobsDB(t, filepath.Join(dir, blobsFileName), blobs...)
	WriteLibraryDB(t, filepath.Join(dir, libraryFileName), streams...)
	return dir
}

func openFixture(t testing.TB, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture %s: %v", path, err)
	}
	return db
}

func mustExec(t testing.TB, db *sql.DB, query string, args ...any) {
	t.Helper()

	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
