package seed

import (
	"context"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/util"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
)

// FakeLoader generates mock users, posts, comments and follow edges.
// The same seed always produces the same snapshot.
type FakeLoader struct {
	Users int
	Posts int
	Seed  uint64
	Clock util.Clock
}

func (v FakeLoader) Load(_ context.Context) (Snapshot, error) {
	if v.Users <= 0 {
		return Snapshot{}, fmt.Errorf("fake seed needs at least one user")
	}
	clock := v.Clock
	if clock == nil {
		clock = util.NewRealClock()
	}
	faker := gofakeit.New(v.Seed)
	now := clock.NowUtc()

	taken := make(map[string]bool, v.Users)
	users := make([]models.User, 0, v.Users)
	for idx := 1; idx <= v.Users; idx++ {
		username := faker.Username()
		if taken[username] {
			username = fmt.Sprintf("%s%d", username, idx)
		}
		taken[username] = true

		user := models.User{ID: uint(idx), Username: username}
		if faker.Bool() {
			user.Bio = lo.ToPtr(faker.Sentence(8))
		}
		if faker.Bool() {
			user.Avatar = lo.ToPtr(faker.URL())
		}
		users = append(users, user)
	}

	var edges []models.FollowEdge
	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID {
				continue
			}
			if faker.Number(0, 2) == 0 {
				edges = append(edges, models.FollowEdge{FollowerID: follower.ID, FolloweeID: followee.ID})
			}
		}
	}

	posts := make([]models.Post, 0, v.Posts)
	for idx := 1; idx <= v.Posts; idx++ {
		author := users[faker.Number(0, len(users)-1)]
		createdAt := now.Add(-time.Duration(v.Posts-idx+1) * time.Minute).Format(time.RFC3339Nano)
		post := models.Post{
			ID:        uint(idx),
			Author:    author.Clone(),
			Content:   faker.Paragraph(1, 2, 12, " "),
			LikeCount: faker.Number(0, 50),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}

		var commentID uint
		for range faker.Number(0, 3) {
			commentID++
			commenter := users[faker.Number(0, len(users)-1)]
			comment := models.Comment{
				ID:        commentID,
				PostID:    post.ID,
				Author:    commenter.Clone(),
				Content:   faker.Sentence(10),
				LikeCount: faker.Number(0, 10),
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			}
			if faker.Bool() {
				commentID++
				replier := users[faker.Number(0, len(users)-1)]
				comment.Replies = append(comment.Replies, models.Comment{
					ID:        commentID,
					PostID:    post.ID,
					Author:    replier.Clone(),
					ParentID:  lo.ToPtr(comment.ID),
					Content:   faker.Sentence(6),
					CreatedAt: createdAt,
					UpdatedAt: createdAt,
				})
			}
			post.Comments = append(post.Comments, comment)
		}
		post.CommentCount = int(commentID)

		posts = append(posts, post)
	}

	return Snapshot{
		Users: users,
		Posts: lo.Reverse(posts),
		Edges: edges,
	}, nil
}
