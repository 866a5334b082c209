package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicCreatesAndReplaces(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "Foo.eng.srt")

	if err := WriteFileAtomic(dst, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := WriteFileAtomic(dst, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected replaced content, got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicDoesNotCreateDirectories(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "Foo.eng.srt")
	if err := WriteFileAtomic(dst, []byte("data"), 0o644); err == nil {
		t.Fatal("expected error when parent directory is missing")
	}
	if IsDir(filepath.Dir(dst)) {
		t.Fatal("parent directory must not be created")
	}
}

func TestExistsAndKinds(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.db")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if ok, err := Exists(file); err != nil || !ok {
		t.Fatalf("Exists(file) = %v, %v", ok, err)
	}
	if ok, err := Exists(filepath.Join(dir, "nope")); err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v", ok, err)
	}
	if !IsFile(file) || IsFile(dir) {
		t.Fatal("IsFile misreported")
	}
	if !IsDir(dir) || IsDir(file) {
		t.Fatal("IsDir misreported")
	}
}
