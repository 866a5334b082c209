// Package plexdb reads the two Plex Media Server SQLite databases that hold
// embedded subtitles.
//
// The blobs database stores gzip-compressed subtitle payloads keyed by media
// stream id; the library database maps each stream to its codec, language,
// forced flag, and owning media file. Both are opened read-only with the pure
// Go modernc.org/sqlite driver, one database at a time, and closed before the
// next phase starts. Plex usually holds these files open while running, so
// reads tolerate SQLITE_BUSY with a short backoff.
package plexdb
