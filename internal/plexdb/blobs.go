package plexdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"

	"plexsubs/internal/logging"
	"plexsubs/internal/subtitle"
)

// SubtitleBlobType is the blobs.blob_type discriminator for subtitle payloads.
const SubtitleBlobType = 3

const selectSubtitleBlobs = `SELECT linked_id, blob FROM blobs WHERE blob_type = ? ORDER BY rowid`

// ReadSubtitleBlobs returns one record per linked_id, ordered by stream id.
// When a linked_id appears more than once the last row read wins. Open
// failures wrap ErrDatabaseOpen.
func ReadSubtitleBlobs(ctx context.Context, path string, logger *slog.Logger) ([]*subtitle.Record, error) {
	ctx = ensureContext(ctx)
	logger = logging.NewComponentLogger(logger, "blobs")
	logger.Debug("retrieving all subtitles from the blobs database", logging.String(logging.FieldPath, path))

	db, err := openReadOnly(ctx, path, "blobs")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	byID := make(map[int64]*subtitle.Record)
	err = retryOnBusy(ctx, func() error {
		clear(byID)
		rows, err := db.QueryContext(ctx, selectSubtitleBlobs, SubtitleBlobType)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				id   sql.NullInt64
				blob []byte
			)
			if err := rows.Scan(&id, &blob); err != nil {
				return err
			}
			if !id.Valid {
				continue
			}
			byID[id.Int64] = &subtitle.Record{StreamID: id.Int64, Payload: blob}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("read subtitle blobs from %s: %w", path, err)
	}

	records := make([]*subtitle.Record, 0, len(byID))
	for _, rec := range byID {
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b *subtitle.Record) int {
		switch {
		case a.StreamID < b.StreamID:
			return -1
		case a.StreamID > b.StreamID:
			return 1
		default:
			return 0
		}
	})

	logger.Debug("found subtitles in the blobs database", logging.Int("count", len(records)))
	return records, nil
}
