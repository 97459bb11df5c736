package storage

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/the-deep/pkg/dice"
	"github.com/jwebster45206/the-deep/pkg/state"
	"github.com/jwebster45206/the-deep/pkg/storage"
	"github.com/jwebster45206/the-deep/pkg/world"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// playedSnapshot returns a snapshot from a session that has moved, picked up an item
// and is mid-fight.
func playedSnapshot(t *testing.T) (*world.World, *state.Snapshot) {
	t.Helper()
	w, err := world.Default()
	require.NoError(t, err)

	gs := state.New(w, state.Options{PlayerName: "Mara", Difficulty: "hard", Dice: dice.New(7)})
	gs.ApplyCommand("take binoculars")
	gs.ApplyCommand("down")
	if !gs.InCombat() {
		_, err = gs.Spawn("mutated_angler")
		require.NoError(t, err)
	}
	return w, gs.Snapshot()
}

func assertRoundTrip(t *testing.T, w *world.World, want, got *state.Snapshot) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Player.Name, got.Player.Name)
	assert.Equal(t, want.Player.Location, got.Player.Location)
	assert.Equal(t, want.Player.Inventory, got.Player.Inventory)
	assert.Equal(t, want.TurnCounter, got.TurnCounter)
	require.NotNil(t, got.Encounter)
	assert.Equal(t, want.Encounter.Enemy.Health, got.Encounter.Enemy.Health)

	gs, err := state.Restore(w, got, state.Options{Dice: dice.New(1)})
	require.NoError(t, err)
	assert.True(t, gs.InCombat())
	assert.Equal(t, "hard", gs.Difficulty)
}

func TestRedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	rs, err := NewRedisStorage(mr.Addr(), time.Hour, quietLogger())
	require.NoError(t, err)
	defer rs.Close()

	require.NoError(t, rs.WaitForConnection(ctx, 3, time.Millisecond))

	w, snap := playedSnapshot(t)

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, rs.SaveGame(ctx, snap))
		assert.True(t, mr.Exists("gamestate:"+snap.ID.String()))

		loaded, err := rs.LoadGame(ctx, snap.ID)
		require.NoError(t, err)
		assertRoundTrip(t, w, snap, loaded)
	})

	t.Run("ttl is applied", func(t *testing.T) {
		assert.Equal(t, time.Hour, mr.TTL("gamestate:"+snap.ID.String()))
	})

	t.Run("missing save", func(t *testing.T) {
		loaded, err := rs.LoadGame(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("list skips foreign keys", func(t *testing.T) {
		require.NoError(t, mr.Set("gamestate:not-a-uuid", "{}"))
		require.NoError(t, mr.Set("unrelated", "x"))

		saves, err := rs.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, saves, 1)
		assert.Equal(t, snap.ID, saves[0].ID)
		assert.Equal(t, "Mara", saves[0].Player)
	})

	t.Run("expired save is gone", func(t *testing.T) {
		mr.FastForward(2 * time.Hour)
		loaded, err := rs.LoadGame(ctx, snap.ID)
		assert.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, rs.SaveGame(ctx, snap))
		require.NoError(t, rs.DeleteGame(ctx, snap.ID))
		assert.False(t, mr.Exists("gamestate:"+snap.ID.String()))
	})
}

func TestRedisStorage_URL(t *testing.T) {
	mr := miniredis.RunT(t)
	rs, err := NewRedisStorage("redis://"+mr.Addr()+"/0", 0, quietLogger())
	require.NoError(t, err)
	defer rs.Close()
	assert.NoError(t, rs.Ping(context.Background()))

	_, err = NewRedisStorage("redis://%zz", 0, quietLogger())
	assert.Error(t, err)
}

func TestRedisStorage_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rs, err := NewRedisStorage(mr.Addr(), 0, quietLogger())
	require.NoError(t, err)
	defer rs.Close()
	mr.Close()


	assert.Error(t, rs.Ping(context.Background()))
	assert.Error(t, rs.WaitForConnection(context.Background(), 2, time.Millisecond))
}

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFileStorage(t.TempDir(), quietLogger())
	require.NoError(t, err)
	require.NoError(t, fs.Ping(ctx))

	w, snap := playedSnapshot(t)

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, fs.SaveGame(ctx, snap))
		loaded, err := fs.LoadGame(ctx, snap.ID)
		require.NoError(t, err)
		assertRoundTrip(t, w, snap, loaded)
	})

	t.Run("overwrite keeps one file", func(t *testing.T) {
		snap.TurnCounter++
		require.NoError(t, fs.SaveGame(ctx, snap))
		saves, err := fs.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, saves, 1)
		assert.Equal(t, snap.TurnCounter, saves[0].Turn)
	})

	t.Run("missing save", func(t *testing.T) {
		loaded, err := fs.LoadGame(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, fs.DeleteGame(ctx, snap.ID))
		require.NoError(t, fs.DeleteGame(ctx, snap.ID))
		saves, err := fs.ListGames(ctx)
		require.NoError(t, err)
		assert.Empty(t, saves)
	})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name      string
		cfg       configFields
		expectErr bool
	}{
		{name: "memory", cfg: configFields{storage: "memory"}},
		{name: "file", cfg: configFields{storage: "file", saveDir: t.TempDir()}},
		{name: "redis", cfg: configFields{storage: "redis", redisURL: mr.Addr()}},
		{name: "unknown", cfg: configFields{storage: "tape"}, expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg.build(), quietLogger())
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.NoError(t, s.Ping(ctx))
			var _ storage.Storage = s
		})
	}
}
