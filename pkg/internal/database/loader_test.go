package database_test

import (
	"context"
	"os"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/threads/pkg/internal/database"
	"git.solsynth.dev/hypernet/threads/pkg/internal/seed"
	"git.solsynth.dev/hypernet/threads/pkg/internal/util"
	"github.com/stretchr/testify/require"
)

func newTestLoader(ctx context.Context, t *testing.T) *database.Loader {
	dsn := os.Getenv("THREADS_TEST_DSN")
	if dsn == "" {
		t.Skip("THREADS_TEST_DSN is not set")
	}

	db, err := database.Connect(dsn, "test_")
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))
	for _, model := range database.AutoMaintainRange {
		require.NoError(t, db.WithContext(ctx).Where("1 = 1").Delete(model).Error)
	}
	return database.NewLoader(db)
}

func TestLoaderImportAndLoad(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loader := newTestLoader(ctx, t)

	clock := util.NewStubClock()
	snapshot, err := seed.FakeLoader{Users: 4, Posts: 10, Seed: 3, Clock: clock}.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, loader.Import(ctx, snapshot))
	loaded, err := loader.Load(ctx)
	require.NoError(t, err)

	require.Equal(t, snapshot.Users, loaded.Users)
	require.ElementsMatch(t, snapshot.Edges, loaded.Edges)
	require.Len(t, loaded.Posts, len(snapshot.Posts))
	for idx := range snapshot.Posts {
		require.Equal(t, snapshot.Posts[idx].ID, loaded.Posts[idx].ID)
		require.Equal(t, snapshot.Posts[idx].Content, loaded.Posts[idx].Content)
		require.Equal(t, snapshot.Posts[idx].CommentCount, loaded.Posts[idx].CommentCount)
	}
}
