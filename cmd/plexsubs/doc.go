// Package main hosts the plexsubs CLI.
//
// The root command runs one extraction: it loads configuration, applies flag
// overrides, sets up logging, and hands off to the extraction runner. The
// locate and config subcommands help operators find their Plex databases and
// scaffold a configuration file without extracting anything.
package main
