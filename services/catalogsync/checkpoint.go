package catalogsync

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gamereviews-backend/services/catalogsync/db"
)

// Checkpoint is the durable progress marker for one unit. its offset
// only ever reflects pages whose writes were fully committed, so a
// resume re-fetches at most one already-applied page.
type Checkpoint struct {
	Unit      string
	Offset    int64
	Stats     Stats
	UpdatedAt time.Time
}

// Checkpointer persists per-unit progress.
type Checkpointer interface {
	Load(ctx context.Context, unit string) (Checkpoint, bool, error)
	Save(ctx context.Context, cp Checkpoint) error
	Clear(ctx context.Context, unit string) error
}

// StoreCheckpoints keeps checkpoints in the sync_checkpoints table
// next to the data they describe.
type StoreCheckpoints struct {
	qry *db.Queries
}

func NewStoreCheckpoints(qry *db.Queries) StoreCheckpoints {
	return StoreCheckpoints{qry: qry}
}

func (s StoreCheckpoints) Load(ctx context.Context, unit string) (Checkpoint, bool, error) {
	row, err := s.qry.GetCheckpoint(ctx, unit)
	if errors.Is(err, sql.ErrNoRows) {
		return Checkpoint{}, false, nil
	}
	if err != nil {
		return Checkpoint{}, false, err
	}
	return checkpointFromRow(row), true, nil
}

func (s StoreCheckpoints) Save(ctx context.Context, cp Checkpoint) error {
	return s.qry.UpsertCheckpoint(ctx, db.UpsertCheckpointParams{
		Unit:         cp.Unit,
		PageOffset:   cp.Offset,
		Fetched:      cp.Stats.Fetched,
		NewRecords:   cp.Stats.New,
		Written:      cp.Stats.Written,
		Skipped:      cp.Stats.SkippedDuplicate,
		Failed:       cp.Stats.Failed,
		PagesSkipped: cp.Stats.PagesSkipped,
		UpdatedAt:    cp.UpdatedAt.Unix(),
	})
}

func (s StoreCheckpoints) Clear(ctx context.Context, unit string) error {
	return s.qry.DeleteCheckpoint(ctx, unit)
}

// List returns every outstanding checkpoint, useful for inspecting
// interrupted runs.
func (s StoreCheckpoints) List(ctx context.Context) ([]Checkpoint, error) {
	rows, err := s.qry.ListCheckpoints(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Checkpoint, len(rows))
	for i, row := range rows {
		out[i] = checkpointFromRow(row)
	}
	return out, nil
}

func checkpointFromRow(row db.SyncCheckpoint) Checkpoint {
	return Checkpoint{
		Unit:   row.Unit,
		Offset: row.PageOffset,
		Stats: Stats{
			Fetched:          row.Fetched,
			New:              row.NewRecords,
			Written:          row.Written,
			SkippedDuplicate: row.Skipped,
			Failed:           row.Failed,
			PagesSkipped:     row.PagesSkipped,
		},
		UpdatedAt: time.Unix(row.UpdatedAt, 0),
	}
}
