package catalogsync

import (
	"context"
	"testing"
	"time"

	"gamereviews-backend/lib/testutil"
	"gamereviews-backend/services/catalogsync/db"

	"github.com/stretchr/testify/require"
)

func TestStoreCheckpointsLifecycle(t *testing.T) {
	ctx := context.Background()
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalogsync",
		DbSchema: db.Schema,
	})
	defer cleanup()

	store := NewStoreCheckpoints(db.New(result.DB))

	_, ok, err := store.Load(ctx, "pc")
	require.NoError(t, err)
	require.False(t, ok)

	cp := Checkpoint{
		Unit:      "pc",
		Offset:    500,
		Stats:     Stats{Fetched: 500, New: 480, Written: 470, SkippedDuplicate: 20, Failed: 10, PagesSkipped: 1},
		UpdatedAt: time.Unix(1700000000, 0),
	}
	require.NoError(t, store.Save(ctx, cp))

	loaded, ok, err := store.Load(ctx, "pc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, cp, loaded)

	// saving again overwrites in place
	cp.Offset = 1000
	cp.Stats.Fetched = 1000
	require.NoError(t, store.Save(ctx, cp))

	loaded, ok, err = store.Load(ctx, "pc")
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 1000, loaded.Offset)
	require.EqualValues(t, 1000, loaded.Stats.Fetched)

	require.NoError(t, store.Clear(ctx, "pc"))
	_, ok, err = store.Load(ctx, "pc")
	require.NoError(t, err)
	require.False(t, ok)

	// clearing an absent checkpoint is not an error
	require.NoError(t, store.Clear(ctx, "pc"))
}

func TestStoreCheckpointsList(t *testing.T) {
	ctx := context.Background()
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "catalogsync",
		DbSchema: db.Schema,
	})
	defer cleanup()

	store := NewStoreCheckpoints(db.New(result.DB))

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	now := time.Unix(1700000000, 0)
	require.NoError(t, store.Save(ctx, Checkpoint{Unit: "switch", Offset: 200, UpdatedAt: now}))
	require.NoError(t, store.Save(ctx, Checkpoint{Unit: "pc", Offset: 4500, UpdatedAt: now}))

	list, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "pc", list[0].Unit)
	require.Equal(t, "switch", list[1].Unit)
}
