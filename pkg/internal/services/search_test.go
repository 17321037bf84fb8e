package services_test

import (
	"fmt"
	"testing"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"github.com/stretchr/testify/require"
)

func TestSearchBlankQuery(t *testing.T) {
	users := []models.User{{ID: 1, Username: "alice"}}
	require.Empty(t, services.Search("", users, nil))
	require.Empty(t, services.Search("   ", users, nil))
}

func TestSearchCapsUsers(t *testing.T) {
	var users []models.User
	for idx := 1; idx <= 12; idx++ {
		users = append(users, models.User{ID: uint(idx), Username: fmt.Sprintf("user%d", idx)})
	}
	posts := []models.Post{{ID: 1, Content: "nothing here"}}

	results := services.Search("user", users, posts)
	require.Len(t, results, services.SearchLimit)
	for idx, result := range results {
		require.Equal(t, models.SearchResultUser, result.Kind)
		require.Equal(t, uint(idx+1), result.User.ID)
		require.Nil(t, result.Post)
	}
}

func TestSearchUsersBeforePosts(t *testing.T) {
	users := []models.User{{ID: 1, Username: "GoFan"}, {ID: 2, Username: "rustacean"}}
	posts := []models.Post{
		{ID: 3, Content: "Learning go today"},
		{ID: 2, Content: "nothing"},
		{ID: 1, Content: "GO GO GO"},
	}

	results := services.Search("go", users, posts)
	require.Len(t, results, 3)
	require.Equal(t, models.SearchResultUser, results[0].Kind)
	require.Equal(t, "GoFan", results[0].User.Username)
	require.Equal(t, models.SearchResultPost, results[1].Kind)
	require.Equal(t, uint(3), results[1].Post.ID)
	require.Equal(t, uint(1), results[2].Post.ID)
}

func TestStackSearch(t *testing.T) {
	env := newTestEnv(t, services.LookupRecursive)
	user := env.register(t)
	_, err := env.stack.Feed.AddPost(user.ID, "a post mentioning "+user.Username, nil)
	require.NoError(t, err)

	results := env.stack.Search(user.Username)
	require.Len(t, results, 2)
	require.Equal(t, models.SearchResultUser, results[0].Kind)
	require.Equal(t, models.SearchResultPost, results[1].Kind)
}
