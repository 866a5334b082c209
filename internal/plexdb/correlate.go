package plexdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"plexsubs/internal/logging"
	"plexsubs/internal/subtitle"
)

const selectStreamInfo = `SELECT parts.file, stream.codec, stream.language, stream.forced
FROM media_streams AS stream
INNER JOIN media_parts AS parts ON parts.id = stream.media_part_id
WHERE stream.id = ?`

// Correlation summarizes a Correlate pass.
type Correlation struct {
	Matched int
	Missed  int
}

// Correlate attaches source file, codec, language, and forced flag to each
// record by looking up its stream id in the library database. Only the first
// row returned is used. A stream with no row, or with no file path, is logged
// and left without metadata. Open failures wrap ErrDatabaseOpen; query
// failures other than a missing row abort the pass.
func Correlate(ctx context.Context, path string, records []*subtitle.Record, logger *slog.Logger) (Correlation, error) {
	ctx = ensureContext(ctx)
	logger = logging.NewComponentLogger(logger, "correlate")
	logger.Debug("correlating subtitles to file names", logging.String(logging.FieldPath, path))

	db, err := openReadOnly(ctx, path, "media_streams", "media_parts")
	if err != nil {
		return Correlation{}, err
	}
	defer db.Close()

	stmt, err := db.PrepareContext(ctx, selectStreamInfo)
	if err != nil {
		return Correlation{}, fmt.Errorf("prepare stream lookup: %w", err)
	}
	defer stmt.Close()

	var result Correlation
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		var (
			file, codec, lang sql.NullString
			forced            sql.NullInt64
		)
		err := retryOnBusy(ctx, func() error {
			return stmt.QueryRowContext(ctx, rec.StreamID).Scan(&file, &codec, &lang, &forced)
		})
		switch {
		case errors.Is(err, sql.ErrNoRows):
			result.Missed++
			logging.WarnWithContext(logger, "could not find media file associated with stream", "correlation_miss",
				logging.Int64(logging.FieldStreamID, rec.StreamID))
			continue
		case err != nil:
			return result, fmt.Errorf("look up stream %d: %w", rec.StreamID, err)
		}
		if !file.Valid || file.String == "" {
			result.Missed++
			logging.WarnWithContext(logger, "stream has no media file path", "correlation_miss",
				logging.Int64(logging.FieldStreamID, rec.StreamID))
			continue
		}
		rec.SetMetadata(file.String, codec.String, lang.String, forced.Int64)
		result.Matched++
	}

	logger.Debug("correlated subtitles to file names",
		logging.Int("matched", result.Matched),
		logging.Int("missed", result.Missed),
	)
	return result, nil
}
