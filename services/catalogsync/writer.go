package catalogsync

import (
	"context"
	"database/sql"
	"log/slog"

	"gamereviews-backend/lib/retryutil"
	"gamereviews-backend/services/catalogsync/db"
)

// WriteResult classifies every attempted record: Written +
// SkippedDuplicate + Failed always equals the input size.
type WriteResult struct {
	Written          int64
	SkippedDuplicate int64
	Failed           int64
}

// RecordWriter persists transformed records.
type RecordWriter interface {
	Write(ctx context.Context, records []db.CreateGameParams) WriteResult
}

// BatchWriter commits records in bounded sub-batches, each in its
// own transaction so one failing sub-batch cannot roll back or block
// its siblings. a record rejected by the igdb_id unique constraint
// counts as SkippedDuplicate, that conflict-skip is what makes
// re-running a unit safe.
type BatchWriter struct {
	db        *sql.DB
	qry       *db.Queries
	batchSize int
	retry     retryutil.Policy
}

func NewBatchWriter(database *sql.DB, batchSize int, retry retryutil.Policy) *BatchWriter {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &BatchWriter{
		db:        database,
		qry:       db.New(database),
		batchSize: batchSize,
		retry:     retry,
	}
}

func (w *BatchWriter) Write(ctx context.Context, records []db.CreateGameParams) WriteResult {
	var out WriteResult
	for start := 0; start < len(records); start += w.batchSize {
		end := start + w.batchSize
		if end > len(records) {
			end = len(records)
		}
		sub := records[start:end]

		written, skipped, err := w.writeSubBatch(ctx, sub)
		if err != nil {
			slog.WarnContext(ctx, "sub-batch failed", "records", len(sub), "err", err)
			out.Failed += int64(len(sub))
			continue
		}
		out.Written += written
		out.SkippedDuplicate += skipped
	}
	return out
}

func (w *BatchWriter) writeSubBatch(ctx context.Context, sub []db.CreateGameParams) (written, skipped int64, err error) {
	err = w.retry.Do(ctx, func() error {
		written, skipped = 0, 0

		tx, err := w.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()
		txqry := w.qry.WithTx(tx)

		for _, record := range sub {
			res, err := txqry.CreateGame(ctx, record)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				skipped++
			} else {
				written++
			}
		}
		return tx.Commit()
	})
	return written, skipped, err
}
