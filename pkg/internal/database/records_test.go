package database_test

import (
	"testing"

	"git.solsynth.dev/hypernet/threads/pkg/internal/database"
	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestPostRecordsRoundTrip(t *testing.T) {
	alice := models.User{ID: 1, Username: "alice"}
	posts := []models.Post{
		{
			ID:      3,
			Author:  &alice,
			Content: "newest",
			Replies: []models.Post{
				{ID: 4, Author: &alice, ParentID: lo.ToPtr[uint](3), Content: "first reply"},
				{ID: 5, ParentID: lo.ToPtr[uint](4), Content: "second reply"},
			},
			Comments: []models.Comment{{
				ID:      1,
				PostID:  3,
				Content: "comment",
				Replies: []models.Comment{{ID: 2, PostID: 3, ParentID: lo.ToPtr[uint](1), Content: "nested"}},
			}},
			CommentCount: 2,
		},
		{ID: 1, Author: &alice, Content: "oldest", RepostID: lo.ToPtr[uint](9)},
	}

	records := database.NewPostRecords(posts)
	require.Len(t, records, 4)
	require.Nil(t, records[0].ThreadID)
	require.Equal(t, uint(3), *records[1].ThreadID)
	require.Nil(t, records[2].AuthorID)

	// Rows come back ordered by id descending.
	ordered := []database.PostRecord{records[2], records[1], records[0], records[3]}
	assembled := database.AssemblePosts(ordered, map[uint]models.User{1: alice})

	require.Len(t, assembled, 2)
	require.Equal(t, uint(3), assembled[0].ID)
	require.Equal(t, uint(1), assembled[1].ID)
	require.Equal(t, uint(9), *assembled[1].RepostID)
	require.Equal(t, []uint{4, 5}, lo.Map(assembled[0].Replies, func(item models.Post, _ int) uint {
		return item.ID
	}))
	require.Nil(t, assembled[0].Replies[1].Author)
	require.Equal(t, posts[0].Comments, assembled[0].Comments)
	require.Equal(t, "alice", assembled[0].Author.Username)
}

func TestPostRecordsKeepNestedReplies(t *testing.T) {
	bob := models.User{ID: 2, Username: "bob"}
	posts := []models.Post{
		{ID: 6, Author: &bob, Content: "unrelated"},
		{
			ID:      1,
			Author:  &bob,
			Content: "root",
			Replies: []models.Post{{
				ID:       2,
				ParentID: lo.ToPtr[uint](1),
				Content:  "reply",
				Replies: []models.Post{{
					ID:       3,
					Author:   &bob,
					ParentID: lo.ToPtr[uint](2),
					Content:  "reply to reply",
				}},
			}},
		},
	}

	records := database.NewPostRecords(posts)
	require.Len(t, records, 4)
	nested, ok := lo.Find(records, func(item database.PostRecord) bool { return item.ID == 3 })
	require.True(t, ok)
	require.Equal(t, uint(1), *nested.ThreadID)
	require.Equal(t, uint(2), *nested.HolderID)

	// Rows come back ordered by id descending.
	ordered := []database.PostRecord{records[0], records[3], records[2], records[1]}
	assembled := database.AssemblePosts(ordered, map[uint]models.User{2: bob})

	require.Equal(t, posts, assembled)
}

func TestAssembleWithoutHolderFallsBackToThread(t *testing.T) {
	records := []database.PostRecord{
		{ID: 2, ThreadID: lo.ToPtr[uint](1), Content: "reply"},
		{ID: 1, Content: "root"},
	}
	assembled := database.AssemblePosts(records, nil)
	require.Len(t, assembled, 1)
	require.Len(t, assembled[0].Replies, 1)
	require.Equal(t, uint(2), assembled[0].Replies[0].ID)
}

func TestAssembleDropsOrphanReplies(t *testing.T) {
	records := []database.PostRecord{{ID: 2, ThreadID: lo.ToPtr[uint](1), Content: "lost"}}
	require.Empty(t, database.AssemblePosts(records, nil))
}

func TestUserAndFollowRecords(t *testing.T) {
	user := models.User{ID: 7, Username: "bob", Bio: lo.ToPtr("hi")}
	require.Equal(t, user, database.NewUserRecord(user).ToModel())

	edge := models.FollowEdge{FollowerID: 1, FolloweeID: 2}
	require.Equal(t, edge, database.NewFollowRecord(edge).ToModel())
}
