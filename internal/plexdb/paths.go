package plexdb

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// BlobsFileName is the Plex blobs database file.
	BlobsFileName = "com.plexapp.plugins.library.blobs.db"
	// LibraryFileName is the Plex library metadata database file.
	LibraryFileName = "com.plexapp.plugins.library.db"
)

var databasesSuffix = []string{"Plex Media Server", "Plug-in Support", "Databases"}

// Locations holds the resolved paths of both databases.
type Locations struct {
	Dir     string
	Blobs   string
	Library string
}

// Locate verifies that dir contains both Plex databases and that they are
// readable files. Failures wrap ErrDatabaseOpen.
func Locate(dir string) (Locations, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Locations{}, fmt.Errorf("%w: no database directory given", ErrDatabaseOpen)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return Locations{}, fmt.Errorf("%w: %s: %w", ErrDatabaseOpen, dir, err)
	}
	if !info.IsDir() {
		return Locations{}, fmt.Errorf("%w: %s is not a directory", ErrDatabaseOpen, dir)
	}

	loc := Locations{
		Dir:     dir,
		Blobs:   filepath.Join(dir, BlobsFileName),
		Library: filepath.Join(dir, LibraryFileName),
	}
	for _, path := range []string{loc.Blobs, loc.Library} {
		if err := checkDatabaseFile(path); err != nil {
			return Locations{}, err
		}
	}
	return loc, nil
}

func checkDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDatabaseOpen, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrDatabaseOpen, path)
	}
	if err := checkReadable(path); err != nil {
		return fmt.Errorf("%w: %s is not readable: %w", ErrDatabaseOpen, path, err)
	}
	return nil
}

// DefaultDir returns the conventional Plex database folder for this platform,
// or "" when none applies.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return defaultDirFor(runtime.GOOS, os.Getenv, home, dirExists)
}

func defaultDirFor(goos string, getenv func(string) string, home string, exists func(string) bool) string {
	switch goos {
	case "windows":
		if base := getenv("LOCALAPPDATA"); base != "" {
			return filepath.Join(append([]string{base}, databasesSuffix...)...)
		}
	case "darwin":
		if home != "" {
			return filepath.Join(append([]string{home, "Library", "Application Support"}, databasesSuffix...)...)
		}
	case "linux":
		if base := getenv("PLEX_HOME"); base != "" {
			return filepath.Join(append([]string{base}, databasesSuffix...)...)
		}
		packaged := filepath.Join(append([]string{"/var/lib/plexmediaserver/Library/Application Support"}, databasesSuffix...)...)
		if exists(packaged) {
			return packaged
		}
	}
	return ""
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
