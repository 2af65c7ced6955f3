package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogas/gogas-backend/internal/data/repos/testutil"
	types "github.com/gogas/gogas-backend/internal/domain"
)

func snapshotPrices(t *testing.T, fav *types.Favorite) []types.Price {
	t.Helper()
	var prices []types.Price
	require.NoError(t, json.Unmarshal(fav.StationPrices, &prices))
	return prices
}

func TestFavoriteSyncRefreshesSnapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, env.db, false)
	st := testutil.SeedStation(t, ctx, env.db, "Sync Station")
	testutil.SeedPrice(t, ctx, env.db, st.ID, owner.ID, 1.60)

	_, err := env.favorite.Add(ctxFor(owner), owner.ID, st.ID)
	require.NoError(t, err)

	// The price changes after the favorite was taken; the snapshot is now
	// stale.
	testutil.SeedPrice(t, ctx, env.db, st.ID, owner.ID, 1.65)

	favorites, err := env.favoriteRepo.ListByUser(ctx, nil, owner.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.Len(t, snapshotPrices(t, favorites[0]), 1)

	require.NoError(t, env.sync.RunCycle(ctx, owner.ID))

	favorites, err = env.favoriteRepo.ListByUser(ctx, nil, owner.ID)
	require.NoError(t, err)
	prices := snapshotPrices(t, favorites[0])
	require.Len(t, prices, 2)
	require.Equal(t, 1.65, prices[1].Value)
}

func TestFavoriteSyncLeavesSnapshotWhenStationGone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, env.db, false)
	admin := testutil.SeedUser(t, ctx, env.db, true)
	st := testutil.SeedStation(t, ctx, env.db, "Vanishing Station")
	testutil.SeedPrice(t, ctx, env.db, st.ID, owner.ID, 2.10)

	_, err := env.favorite.Add(ctxFor(owner), owner.ID, st.ID)
	require.NoError(t, err)

	_, err = env.station.Delete(ctxFor(admin), st.ID)
	require.NoError(t, err)

	// The cycle must not fail and must not wipe the stale snapshot.
	require.NoError(t, env.sync.RunCycle(ctx, owner.ID))

	favorites, err := env.favoriteRepo.ListByUser(ctx, nil, owner.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	require.Equal(t, "Vanishing Station", favorites[0].StationName)
	require.Len(t, snapshotPrices(t, favorites[0]), 1)
}

func TestFavoriteSyncSessionRefCounting(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	env.sync.Start(ctx)

	owner := testutil.SeedUser(t, context.Background(), env.db, false)
	impl := env.sync.(*favoriteSyncService)

	// The same user logged in on two devices shares one refresh task.
	env.sync.Track(owner.ID)
	env.sync.Track(owner.ID)
	impl.mu.Lock()
	session := impl.sessions[owner.ID]
	impl.mu.Unlock()
	require.NotNil(t, session)
	require.Equal(t, 2, session.refs)

	// Logging out one device must not stop syncing for the other.
	env.sync.Untrack(owner.ID)
	impl.mu.Lock()
	session, running := impl.sessions[owner.ID]
	impl.mu.Unlock()
	require.True(t, running)
	require.Equal(t, 1, session.refs)

	// The last logout tears the task down; a further untrack is a no-op.
	env.sync.Untrack(owner.ID)
	env.sync.Untrack(owner.ID)
	impl.mu.Lock()
	_, running = impl.sessions[owner.ID]
	impl.mu.Unlock()
	require.False(t, running)
}
