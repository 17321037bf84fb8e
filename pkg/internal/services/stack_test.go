package services_test

import (
	"context"
	"testing"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/seed"
	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"github.com/stretchr/testify/require"
)

func TestHydrateFromFakeSeed(t *testing.T) {
	env := newTestEnv(t, services.LookupRecursive)
	snapshot, err := seed.FakeLoader{Users: 5, Posts: 12, Seed: 1, Clock: env.clock}.Load(context.Background())
	require.NoError(t, err)

	env.stack.Hydrate(snapshot)

	require.Equal(t, 5, env.stack.Users.Count())
	require.Len(t, env.stack.Feed.Posts(), 12)
	require.ElementsMatch(t, snapshot.Edges, env.stack.Graph.Edges())
	require.Empty(t, env.stack.Notifications.All())
	require.Zero(t, env.stack.Delivery.Pending())

	for _, user := range snapshot.Users {
		for _, post := range env.stack.Timeline(user.ID) {
			authorID, ok := post.AuthorID()
			require.True(t, ok)
			require.True(t, authorID == user.ID || env.stack.Graph.IsFollowing(user.ID, authorID))
		}
	}

	post, err := env.stack.Feed.AddPost(1, "after hydrate", nil)
	require.NoError(t, err)
	require.Equal(t, uint(13), post.ID)
}

func TestStackWithoutDeliverer(t *testing.T) {
	stack := services.NewStack(services.StackConfig{})
	require.Nil(t, stack.Delivery)

	stack.Graph.Follow(1, 2)
	require.Len(t, stack.Notifications.All(), 1)
}

func TestSnapshotRoundTrip(t *testing.T) {
	env := newTestEnv(t, services.LookupRecursive)
	user := env.register(t)
	env.post(t, user.ID)
	env.stack.Graph.Follow(user.ID, 9)

	snapshot, err := seed.StaticLoader{Snapshot: env.stack.Snapshot()}.Load(context.Background())
	require.NoError(t, err)
	other := services.NewStack(services.StackConfig{Clock: env.clock})
	other.Hydrate(snapshot)

	require.Equal(t, env.stack.Feed.Posts(), other.Feed.Posts())
	require.Equal(t, env.stack.Graph.Edges(), other.Graph.Edges())
	require.Equal(t, env.stack.Users.Users(), other.Users.Users())
}

func TestHydrateReplacesPreviousState(t *testing.T) {
	env := newTestEnv(t, services.LookupRecursive)
	first, err := seed.FakeLoader{Users: 6, Posts: 4, Seed: 3, Clock: env.clock}.Load(context.Background())
	require.NoError(t, err)
	env.stack.Hydrate(first)
	require.Equal(t, 6, env.stack.Users.Count())

	second, err := seed.StaticLoader{Snapshot: seed.Snapshot{
		Users: []models.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}},
	}}.Load(context.Background())
	require.NoError(t, err)
	env.stack.Hydrate(second)

	require.Equal(t, second.Users, env.stack.Users.Users())
	require.Empty(t, env.stack.Feed.Posts())
	require.Empty(t, env.stack.Graph.Edges())
	require.Nil(t, env.stack.Users.User(6))

	user := env.register(t)
	require.Equal(t, uint(3), user.ID)
}
