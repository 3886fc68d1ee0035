package catalogsync

import (
	"context"
	"log/slog"

	"gamereviews-backend/services/catalogsync/db"
)

// Deduplicator reports which external ids are not yet in the store.
// implementations must be safe to skip: reporting an id as new when
// it already exists only costs a conflict-skip in the writer.
type Deduplicator interface {
	FilterNew(ctx context.Context, ids []int64) []int64
}

// StoreDeduplicator asks the games table in bounded chunks, the
// store rejects overly large IN (...) predicates. a failed chunk
// query fails open and reports its ids as new, blocking the run on
// a read error would be worse than a few redundant writes.
type StoreDeduplicator struct {
	qry       *db.Queries
	chunkSize int
}

func NewStoreDeduplicator(qry *db.Queries, chunkSize int) StoreDeduplicator {
	if chunkSize <= 0 {
		chunkSize = 200
	}
	return StoreDeduplicator{qry: qry, chunkSize: chunkSize}
}

func (d StoreDeduplicator) FilterNew(ctx context.Context, ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for start := 0; start < len(ids); start += d.chunkSize {
		end := start + d.chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		existing, err := d.qry.GetGameIgdbIds(ctx, chunk)
		if err != nil {
			slog.WarnContext(ctx, "existence query failed, treating chunk as new", "err", err, "chunk_size", len(chunk))
			out = append(out, chunk...)
			continue
		}

		known := make(map[int64]bool, len(existing))
		for _, id := range existing {
			known[id] = true
		}
		for _, id := range chunk {
			if !known[id] {
				out = append(out, id)
			}
		}
	}
	return out
}

// NopDeduplicator reports every id as new, leaving idempotence
// entirely to the writer's conflict handling. behaviorally
// equivalent to StoreDeduplicator, just heavier on the writer.
type NopDeduplicator struct{}

func (NopDeduplicator) FilterNew(ctx context.Context, ids []int64) []int64 {
	return ids
}
