package catalogsync

import (
	"context"
	"testing"
	"time"

	"gamereviews-backend/lib/testutil"
	"gamereviews-backend/services/catalogsync/db"

	"github.com/stretchr/testify/require"
)

func TestStoreDeduplicatorFiltersKnownIds(t *testing.T) {
	ctx := context.Background()
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalogsync",
		DbSchema: db.Schema,
	})
	defer cleanup()

	qry := db.New(result.DB)
	for _, id := range []int64{2, 4, 6} {
		record, err := TransformGame(sourceGame(id), time.Now())
		require.NoError(t, err)
		_, err = qry.CreateGame(ctx, record)
		require.NoError(t, err)
	}

	// chunk size 2 forces the query to run in multiple chunks
	dedup := NewStoreDeduplicator(qry, 2)
	out := dedup.FilterNew(ctx, []int64{1, 2, 3, 4, 5, 6, 7})
	require.Equal(t, []int64{1, 3, 5, 7}, out)
}

func TestStoreDeduplicatorEmptyStore(t *testing.T) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalogsync",
		DbSchema: db.Schema,
	})
	defer cleanup()

	dedup := NewStoreDeduplicator(db.New(result.DB), 200)
	out := dedup.FilterNew(context.Background(), []int64{1, 2, 3})
	require.Equal(t, []int64{1, 2, 3}, out)
}

func TestStoreDeduplicatorFailsOpen(t *testing.T) {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalogsync",
		DbSchema: db.Schema,
	})
	qry := db.New(result.DB)
	cleanup() // closed db makes every chunk query fail

	dedup := NewStoreDeduplicator(qry, 2)
	out := dedup.FilterNew(context.Background(), []int64{1, 2, 3})
	require.Equal(t, []int64{1, 2, 3}, out, "a read error must not drop records from the run")
}

func TestNopDeduplicator(t *testing.T) {
	ids := []int64{5, 6, 7}
	require.Equal(t, ids, NopDeduplicator{}.FilterNew(context.Background(), ids))
}
