package services_test

import (
	"strings"
	"testing"

	"git.solsynth.dev/hypernet/threads/pkg/internal/cache"
	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestDirectoryRegister(t *testing.T) {
	dir := services.NewDirectory(nil)

	username := gofakeit.Username()
	user, err := dir.Register(username, lo.ToPtr(gofakeit.Sentence(5)), nil)
	require.NoError(t, err)
	require.Equal(t, uint(1), user.ID)
	require.Equal(t, username, user.Username)

	_, err = dir.Register(strings.ToUpper(username), nil, nil)
	require.ErrorIs(t, err, services.ErrInvalidUser)

	_, err = dir.Register("  ", nil, nil)
	require.ErrorIs(t, err, services.ErrInvalidUser)

	_, err = dir.Register(strings.Repeat("x", 65), nil, nil)
	require.ErrorIs(t, err, services.ErrInvalidUser)

	require.Equal(t, 1, dir.Count())
}

func TestDirectoryPutKeepsIDsAhead(t *testing.T) {
	dir := services.NewDirectory(nil)
	dir.Put(models.User{ID: 5, Username: "seeded"})

	user, err := dir.Register("fresh", nil, nil)
	require.NoError(t, err)
	require.Equal(t, uint(6), user.ID)
	require.Equal(t, []uint{5, 6}, lo.Map(dir.Users(), func(item models.User, _ int) uint {
		return item.ID
	}))
}

func TestDirectoryWithCache(t *testing.T) {
	store, err := cache.NewStore(cache.DefaultMaxCost)
	require.NoError(t, err)
	dir := services.NewDirectory(store)
	dir.Put(models.User{ID: 1, Username: "alice"})

	for range 3 {
		user := dir.User(1)
		require.NotNil(t, user)
		require.Equal(t, "alice", user.Username)
	}
	require.Nil(t, dir.User(2))

	// Returned users are copies.
	user := dir.User(1)
	user.Username = "mallory"
	require.Equal(t, "alice", dir.User(1).Username)
}

func TestDirectoryRestoreReplacesUsers(t *testing.T) {
	store, err := cache.NewStore(cache.DefaultMaxCost)
	require.NoError(t, err)
	dir := services.NewDirectory(store)
	dir.Put(models.User{ID: 1, Username: "alice"}, models.User{ID: 9, Username: "zed"})
	require.NotNil(t, dir.User(9))

	dir.Restore([]models.User{{ID: 1, Username: "carol"}, {ID: 3, Username: "dave"}})

	require.Nil(t, dir.User(9))
	require.Equal(t, "carol", dir.User(1).Username)
	require.Equal(t, []uint{1, 3}, lo.Map(dir.Users(), func(item models.User, _ int) uint {
		return item.ID
	}))

	user, err := dir.Register("zed", nil, nil)
	require.NoError(t, err)
	require.Equal(t, uint(4), user.ID)
}
