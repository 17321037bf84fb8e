package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/seed"
	"git.solsynth.dev/hypernet/threads/pkg/internal/util"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func newStubClock() *util.StubClock {
	clock := util.NewStubClock()
	clock.SetNow(time.Date(2024, 11, 2, 4, 48, 32, 0, time.UTC))
	return clock
}

func TestFakeLoaderIsDeterministic(t *testing.T) {
	ctx := context.Background()
	loader := seed.FakeLoader{Users: 8, Posts: 20, Seed: 42, Clock: newStubClock()}

	first, err := loader.Load(ctx)
	require.NoError(t, err)
	second, err := loader.Load(ctx)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestFakeLoaderShape(t *testing.T) {
	snapshot, err := seed.FakeLoader{Users: 6, Posts: 15, Seed: 7, Clock: newStubClock()}.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Users, 6)
	require.Len(t, snapshot.Posts, 15)

	usernames := make(map[string]bool)
	for _, user := range snapshot.Users {
		require.False(t, usernames[user.Username])
		usernames[user.Username] = true
	}

	// Newest first.
	for idx := 1; idx < len(snapshot.Posts); idx++ {
		require.Greater(t, snapshot.Posts[idx-1].ID, snapshot.Posts[idx].ID)
	}

	for _, post := range snapshot.Posts {
		require.NotNil(t, post.Author)
		require.NotEmpty(t, post.Content)
		total := 0
		for idx := range post.Comments {
			post.Comments[idx].Walk(func(item *models.Comment) bool {
				total++
				require.Equal(t, post.ID, item.PostID)
				return true
			})
		}
		require.Equal(t, total, post.CommentCount)
	}

	for _, edge := range snapshot.Edges {
		require.NotEqual(t, edge.FollowerID, edge.FolloweeID)
	}
}

func TestFakeLoaderNeedsUsers(t *testing.T) {
	_, err := seed.FakeLoader{Posts: 3}.Load(context.Background())
	require.Error(t, err)
}

func TestFileLoader(t *testing.T) {
	source := seed.Snapshot{
		Users: []models.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}},
		Posts: []models.Post{{ID: 1, Author: &models.User{ID: 2, Username: "bob"}, Content: "hi"}},
		Edges: []models.FollowEdge{{FollowerID: 1, FolloweeID: 2}},
	}
	raw, err := jsoniter.Marshal(source)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	snapshot, err := seed.FileLoader{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, source.Users, snapshot.Users)
	require.Equal(t, source.Edges, snapshot.Edges)
	require.Equal(t, "hi", snapshot.Posts[0].Content)
	require.Equal(t, "bob", snapshot.Posts[0].Author.Username)
}

func TestFileLoaderMissingFile(t *testing.T) {
	_, err := seed.FileLoader{Path: filepath.Join(t.TempDir(), "nope.json")}.Load(context.Background())
	require.Error(t, err)
}

func TestStaticLoader(t *testing.T) {
	snapshot := seed.Snapshot{
		Users: []models.User{{ID: 1, Username: "alice"}},
		Edges: []models.FollowEdge{{FollowerID: 1, FolloweeID: 2}},
	}
	out, err := seed.StaticLoader{Snapshot: snapshot}.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, snapshot, out)

	var loader seed.Loader = seed.StaticLoader{}
	out, err = loader.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, out.Users)
	require.Empty(t, out.Posts)
}
