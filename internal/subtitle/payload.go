package subtitle

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const snippetLength = 100

// Decompress inflates a gzip payload. Failures wrap ErrDecompress.
func Decompress(payload []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	return data, nil
}

// TextCodecs is the set of codecs written as normalized UTF-8 text.
type TextCodecs map[string]struct{}

// NewTextCodecs builds a case-insensitive codec set.
func NewTextCodecs(codecs []string) TextCodecs {
	set := make(TextCodecs, len(codecs))
	for _, codec := range codecs {
		if codec = strings.ToLower(strings.TrimSpace(codec)); codec != "" {
			set[codec] = struct{}{}
		}
	}
	return set
}

// Contains reports whether codec is written in text mode.
func (t TextCodecs) Contains(codec string) bool {
	_, ok := t[strings.ToLower(strings.TrimSpace(codec))]
	return ok
}

// PrepareContent returns the bytes to write for codec. Text codecs must decode
// as UTF-8 and have every CRLF collapsed to LF; anything else is returned
// unchanged.
func PrepareContent(codec string, data []byte, text TextCodecs) ([]byte, error) {
	if !text.Contains(codec) {
		return data, nil
	}
	validated, _, err := transform.Bytes(encoding.UTF8Validator, data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s as utf-8: %w", ErrWrite, codec, err)
	}
	return bytes.ReplaceAll(validated, []byte("\r\n"), []byte("\n")), nil
}

// Snippet returns up to the first 100 bytes of data for diagnostics.
func Snippet(data []byte) []byte {
	if len(data) > snippetLength {
		return data[:snippetLength]
	}
	return data
}
