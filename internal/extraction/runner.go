package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"plexsubs/internal/config"
	"plexsubs/internal/fileutil"
	"plexsubs/internal/logging"
	"plexsubs/internal/plexdb"
	"plexsubs/internal/prompt"
	"plexsubs/internal/runlock"
	"plexsubs/internal/subtitle"
)

// Runner owns one extraction run. Construct with New.
type Runner struct {
	cfg        *config.Config
	prompter   prompt.Prompter
	logger     *slog.Logger
	defaultDir func() string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithPrompter injects the source of interactive answers.
func WithPrompter(p prompt.Prompter) Option {
	return func(r *Runner) { r.prompter = p }
}

// WithDiscoverer replaces platform database folder autodetection.
func WithDiscoverer(fn func() string) Option {
	return func(r *Runner) { r.defaultDir = fn }
}

// New builds a Runner for cfg. Without WithPrompter every question fails with
// prompt.ErrNotInteractive.
func New(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		cfg:        cfg,
		defaultDir: plexdb.DefaultDir,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	if r.prompter == nil {
		r.prompter = noPrompter{}
	}
	return r
}

// Run executes the pipeline and returns the aggregated statistics.
func (r *Runner) Run(ctx context.Context) (subtitle.Stats, error) {
	if r.cfg == nil {
		return subtitle.Stats{}, fmt.Errorf("%w: no configuration", config.ErrConfiguration)
	}
	if err := r.cfg.ValidateExtraction(); err != nil {
		return subtitle.Stats{}, err
	}

	ctx, runID := logging.WithRunID(ctx)
	logger := logging.NewComponentLogger(logging.WithContext(ctx, r.logger), "extract")
	logger.Debug("extraction run started", logging.String(logging.FieldRunID, runID))

	lock, err := runlock.Acquire(r.cfg.LockPath())
	if err != nil {
		return subtitle.Stats{}, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	loc, err := r.resolveDatabases(ctx, logger)
	if err != nil {
		return subtitle.Stats{}, err
	}
	saveDir, err := r.resolveSaveDir(ctx, logger)
	if err != nil {
		return subtitle.Stats{}, err
	}

	records, err := plexdb.ReadSubtitleBlobs(ctx, loc.Blobs, logger)
	if err != nil {
		return subtitle.Stats{}, err
	}
	correlation, err := plexdb.Correlate(ctx, loc.Library, records, logger)
	if err != nil {
		return subtitle.Stats{}, err
	}
	logger.Info("correlated subtitles with library media",
		logging.Int("subtitles", len(records)),
		logging.Int("matched", correlation.Matched),
		logging.Int("missed", correlation.Missed),
	)

	materializer := subtitle.NewMaterializer(subtitle.MaterializerOptions{
		OutputDir:  saveDir,
		Policy:     r.cfg.OverwritePolicy(),
		TextCodecs: r.cfg.Extract.TextCodecs,
		Confirmer:  r.prompter,
		Logger:     logger,
	})

	var stats subtitle.Stats
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		outcome := materializer.Materialize(ctx, rec, &stats)
		logger.Debug("subtitle processed",
			logging.Int64(logging.FieldStreamID, rec.StreamID),
			logging.String("outcome", outcome.String()),
		)
	}

	logger.Info("Done! " + stats.Summary())
	return stats, nil
}

func (r *Runner) resolveDatabases(ctx context.Context, logger *slog.Logger) (plexdb.Locations, error) {
	dir := strings.TrimSpace(r.cfg.Paths.DatabaseDir)
	if dir != "" {
		logger.Debug("using configured database folder", logging.String(logging.FieldPath, dir))
	} else {
		logger.Debug("attempting to find Plex data directory")
		dir = config.TrimQuotes(r.defaultDir())
	}

	if dir != "" {
		loc, err := plexdb.Locate(dir)
		if err == nil {
			return loc, nil
		}
		logger.Debug("could not find databases in specified location, asking user", logging.Error(err))
	}

	question := `Could not find database directory. Please enter the full path to the "Databases" folder:`
	for {
		answer, err := r.prompter.Ask(ctx, question)
		if err != nil {
			return plexdb.Locations{}, fmt.Errorf("%w: no usable database directory: %w", plexdb.ErrDatabaseOpen, err)
		}
		candidate, err := config.ExpandPath(answer)
		if err == nil && candidate != "" {
			if loc, err := plexdb.Locate(candidate); err == nil {
				logger.Debug("got database location", logging.String(logging.FieldPath, candidate))
				return loc, nil
			}
		}
		question = "That directory does not exist (or does not contain the Plex databases). Please enter the full path:"
	}
}

// resolveSaveDir returns "" for inline output.
func (r *Runner) resolveSaveDir(ctx context.Context, logger *slog.Logger) (string, error) {
	if r.cfg.Extract.SaveInline {
		logger.Debug("inline output requested, saving beside each video")
		return "", nil
	}

	const question = "Where do you want to save your extracted subtitles (full path)?"
	dir := r.cfg.Paths.OutputDir
	for {
		if strings.TrimSpace(dir) == "" {
			answer, err := r.prompter.Ask(ctx, question)
			if err != nil {
				return "", fmt.Errorf("%w: no output directory: %w", config.ErrConfiguration, err)
			}
			dir = answer
		}
		expanded, err := config.ExpandPath(dir)
		if err != nil || expanded == "" {
			dir = ""
			continue
		}
		if fileutil.IsDir(expanded) {
			logger.Debug("got save dir", logging.String(logging.FieldPath, expanded))
			return expanded, nil
		}

		create, err := r.prompter.Confirm(ctx, "Provided output path does not exist. Would you like to create it")
		if err != nil {
			return "", fmt.Errorf("%w: output directory %s does not exist: %w", config.ErrConfiguration, expanded, err)
		}
		if create {
			err := os.MkdirAll(expanded, 0o755)
			if err == nil {
				logger.Debug("created save dir", logging.String(logging.FieldPath, expanded))
				return expanded, nil
			}
			logger.Error("failed to create the save directory", logging.Error(err))
		}
		dir = ""
	}
}

type noPrompter struct{}

func (noPrompter) Ask(context.Context, string) (string, error) {
	return "", prompt.ErrNotInteractive
}

func (noPrompter) Confirm(context.Context, string) (bool, error) {
	return false, prompt.ErrNotInteractive
}
