package subtitle

import "errors"

var (
	// ErrCorrelationMiss marks a blob whose stream id has no metadata row.
	ErrCorrelationMiss = errors.New("no media file associated with stream")
	// ErrDecompress marks a payload that is not a valid gzip stream.
	ErrDecompress = errors.New("decompress subtitle payload")
	// ErrWrite marks an encoding or I/O failure while writing a subtitle.
	ErrWrite = errors.New("write subtitle")
)
