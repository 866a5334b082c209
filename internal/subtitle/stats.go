package subtitle

import "fmt"

// Stats aggregates the outcome of one extraction run.
//
// Saved counts every file written, including overwrites; Overwritten is the
// subset that replaced an existing file. Unmatched is the subset of Failed
// that never correlated to a media stream.
type Stats struct {
	Total       int
	Saved       int
	Skipped     int
	Overwritten int
	Failed      int
	Unmatched   int
}

// Summary renders the one-line completion message.
func (s Stats) Summary() string {
	return fmt.Sprintf("Processed %d subtitles - saved %d (overwriting %d existing file(s)), ignored %d, and failed to save %d",
		s.Total, s.Saved, s.Overwritten, s.Skipped, s.Failed)
}
