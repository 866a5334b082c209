// Package subtitle turns Plex subtitle blobs into standalone subtitle files.
//
// A Record starts life as a gzip payload read from the blobs database, is
// enriched once with the owning media file, codec, language, and forced flag,
// and is then handed to a Materializer. The Materializer derives the output
// name, decompresses the payload, normalizes text codecs to UTF-8 with LF line
// endings, applies the overwrite policy, and writes the file. Every per-record
// failure is logged and counted in Stats; nothing here aborts a run.
package subtitle
