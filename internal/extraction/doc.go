// Package extraction sequences a full subtitle extraction run.
//
// A Runner validates configuration before touching any database, takes the
// run lock, resolves the Plex database folder (explicit, autodetected, or
// asked for until valid), resolves the save location (flat directory or
// inline), then reads blobs, correlates them with library metadata, and
// materializes each record in stream id order. Fatal problems return an
// error; per-record problems only show up in the returned Stats.
package extraction
