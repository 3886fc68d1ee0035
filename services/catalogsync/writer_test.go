package catalogsync

import (
	"context"
	"testing"
	"time"

	"gamereviews-backend/lib/retryutil"
	"gamereviews-backend/lib/testutil"
	"gamereviews-backend/services/catalogsync/db"

	"github.com/stretchr/testify/require"
)

func testRecords(t *testing.T, ids ...int64) []db.CreateGameParams {
	t.Helper()
	out := make([]db.CreateGameParams, 0, len(ids))
	for _, id := range ids {
		record, err := TransformGame(sourceGame(id), time.Now())
		require.NoError(t, err)
		out = append(out, record)
	}
	return out
}

func TestBatchWriterCommitsInSubBatches(t *testing.T) {
	ctx := context.Background()
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalogsync",
		DbSchema: db.Schema,
	})
	defer cleanup()

	writer := NewBatchWriter(result.DB, 2, retryutil.Policy{})
	res := writer.Write(ctx, testRecords(t, 1, 2, 3, 4, 5))

	require.Equal(t, WriteResult{Written: 5}, res)

	count, err := db.New(result.DB).CountGames(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 5, count)
}

func TestBatchWriterSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalogsync",
		DbSchema: db.Schema,
	})
	defer cleanup()

	writer := NewBatchWriter(result.DB, 10, retryutil.Policy{})
	res := writer.Write(ctx, testRecords(t, 1, 2, 3))
	require.Equal(t, WriteResult{Written: 3}, res)

	// a rerun of the same records only conflict-skips
	res = writer.Write(ctx, testRecords(t, 1, 2, 3, 4))
	require.Equal(t, WriteResult{Written: 1, SkippedDuplicate: 3}, res)
}

func TestBatchWriterIsolatesFailingSubBatch(t *testing.T) {
	ctx := context.Background()
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalogsync",
		DbSchema: db.Schema,
	})
	defer cleanup()

	records := testRecords(t, 1, 2, 3, 4, 5, 6)
	// violates the positive-id check, poisoning its sub-batch
	records[2].IgdbID = -1

	writer := NewBatchWriter(result.DB, 2, retryutil.Policy{})
	res := writer.Write(ctx, records)

	// the poisoned sub-batch (records 3 and 4) rolls back, its
	// siblings commit, and every record is accounted for
	require.Equal(t, WriteResult{Written: 4, Failed: 2}, res)
	require.EqualValues(t, 6, res.Written+res.SkippedDuplicate+res.Failed)

	qry := db.New(result.DB)
	count, err := qry.CountGames(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 4, count)

	_, err = qry.GetGameByIgdbId(ctx, 4)
	require.Error(t, err, "record sharing the poisoned sub-batch must roll back")
	_, err = qry.GetGameByIgdbId(ctx, 5)
	require.NoError(t, err)
}

func TestBatchWriterEmptyInput(t *testing.T) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalogsync",
		DbSchema: db.Schema,
	})
	defer cleanup()

	writer := NewBatchWriter(result.DB, 2, retryutil.Policy{})
	require.Equal(t, WriteResult{}, writer.Write(context.Background(), nil))
}
