package subtitle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"plexsubs/internal/config"
	"plexsubs/internal/fileutil"
	"plexsubs/internal/language"
	"plexsubs/internal/logging"
)

// Confirmer answers yes/no questions, typically by asking the operator.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Outcome classifies what happened to a single record.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeOverwritten
	OutcomeSkipped
	OutcomeFailed
	OutcomeUnmatched
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeOverwritten:
		return "overwritten"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomeUnmatched:
		return "unmatched"
	default:
		return "unknown"
	}
}

// MaterializerOptions configures a Materializer.
type MaterializerOptions struct {
	// OutputDir is the flat output directory; empty means inline output.
	OutputDir  string
	Policy     config.OverwritePolicy
	TextCodecs []string
	Confirmer  Confirmer
	Logger     *slog.Logger
}

// Materializer writes correlated records to disk.
type Materializer struct {
	outputDir string
	policy    config.OverwritePolicy
	text      TextCodecs
	confirmer Confirmer
	logger    *slog.Logger
	writeFile func(path string, data []byte, mode os.FileMode) error
}

// NewMaterializer constructs a Materializer. A nil logger discards output.
func NewMaterializer(opts MaterializerOptions) *Materializer {
	codecs := opts.TextCodecs
	if len(codecs) == 0 {
		codecs = config.DefaultTextCodecs
	}
	policy := opts.Policy
	if policy == "" {
		policy = config.OverwriteSkip
	}
	return &Materializer{
		outputDir: opts.OutputDir,
		policy:    policy,
		text:      NewTextCodecs(codecs),
		confirmer: opts.Confirmer,
		logger:    logging.NewComponentLogger(opts.Logger, "materialize"),
		writeFile: fileutil.WriteFileAtomic,
	}
}

// Materialize processes one record and updates stats. It never returns an
// error: every failure is logged, counted, and isolated to the record.
func (m *Materializer) Materialize(ctx context.Context, rec *Record, stats *Stats) Outcome {
	stats.Total++
	logger := m.logger.With(logging.Int64(logging.FieldStreamID, rec.StreamID))

	if !rec.Correlated() {
		stats.Failed++
		stats.Unmatched++
		logging.WarnWithContext(logger, "subtitle skipped", "correlation_miss",
			logging.Error(fmt.Errorf("%w %d", ErrCorrelationMiss, rec.StreamID)),
			logging.String(logging.FieldErrorHint, "the stream may belong to media removed from the library"),
		)
		return OutcomeUnmatched
	}

	meta := *rec.Meta
	target := TargetPath(meta, m.outputDir)
	name := filepath.Base(target)
	logger = logger.With(logging.String(logging.FieldPath, target))

	data, err := Decompress(rec.Payload)
	if err != nil {
		stats.Failed++
		logging.ErrorWithContext(logger, "subtitle payload is not valid gzip", "decompress_failed",
			logging.Error(err),
			logging.String("snippet", fmt.Sprintf("%q", Snippet(rec.Payload))),
		)
		return OutcomeFailed
	}

	content, err := PrepareContent(meta.Codec, data, m.text)
	if err != nil {
		return m.fail(logger, stats, err, data)
	}

	exists, err := fileutil.Exists(target)
	if err != nil {
		return m.fail(logger, stats, fmt.Errorf("%w: inspect target: %w", ErrWrite, err), data)
	}

	overwrite := false
	if exists {
		if !m.shouldOverwrite(ctx, logger, name) {
			stats.Skipped++
			return OutcomeSkipped
		}
		overwrite = true
	}

	logger.Info("writing subtitle",
		logging.String("codec", meta.Codec),
		logging.String("language", language.ForFilename(meta.Language)),
		logging.String("language_name", language.DisplayName(meta.Language)),
		logging.Bool("forced", meta.Forced),
	)
	if err := m.writeFile(target, content, 0o644); err != nil {
		return m.fail(logger, stats, fmt.Errorf("%w: %w", ErrWrite, err), data)
	}

	stats.Saved++
	if overwrite {
		stats.Overwritten++
		return OutcomeOverwritten
	}
	return OutcomeSaved
}

func (m *Materializer) shouldOverwrite(ctx context.Context, logger *slog.Logger, name string) bool {
	switch m.policy {
	case config.OverwriteForce:
		logger.Debug(name + " exists, but overwriting due to --force")
		return true
	case config.OverwriteConfirm:
		if m.confirmer == nil {
			logging.WarnWithContext(logger, "cannot confirm overwrite without a prompt; ignoring", "overwrite_declined")
			return false
		}
		ok, err := m.confirmer.Confirm(ctx, fmt.Sprintf("%q already exists, overwrite", name))
		if err != nil {
			logging.WarnWithContext(logger, "overwrite confirmation failed; ignoring", "overwrite_declined", logging.Error(err))
			return false
		}
		if ok {
			logger.Debug(name + " exists, but overwriting due to user choice")
			return true
		}
		logger.Debug(name + " exists, ignoring")
		return false
	default:
		logger.Debug(name + " exists, ignoring")
		return false
	}
}

func (m *Materializer) fail(logger *slog.Logger, stats *Stats, err error, data []byte) Outcome {
	stats.Failed++
	logging.ErrorWithContext(logger, "could not write subtitle data", "write_failed",
		logging.Error(err),
		logging.String("snippet", fmt.Sprintf("%q", Snippet(data))),
	)
	return OutcomeFailed
}
