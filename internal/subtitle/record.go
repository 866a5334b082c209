package subtitle

// Metadata describes the media stream a subtitle blob belongs to.
type Metadata struct {
	SourcePath string
	Codec      string
	Language   string
	Forced     bool
}

// Record is one subtitle blob keyed by its Plex media stream id.
type Record struct {
	StreamID int64
	// Payload is the gzip-compressed subtitle exactly as stored by Plex.
	Payload []byte
	// Meta is nil until correlation finds the owning stream.
	Meta *Metadata
}

// Correlated reports whether metadata has been attached.
func (r *Record) Correlated() bool {
	return r != nil && r.Meta != nil
}

// SetMetadata attaches correlation results. Forced follows the Plex column
// semantics: any nonzero value marks a forced track.
func (r *Record) SetMetadata(sourcePath, codec, language string, forced int64) {
	r.Meta = &Metadata{
		SourcePath: sourcePath,
		Codec:      codec,
		Language:   language,
		Forced:     forced != 0,
	}
}
