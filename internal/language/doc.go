// Package language normalizes the language codes Plex stores on media streams
// for use in subtitle filenames and human-readable summaries.
package language
