package services

import (
	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"github.com/samber/lo"
)

// ComputeVisibleFeed keeps the posts written by the viewer or by someone the viewer follows,
// in their original order. Posts without a known author never show up.
// The result is derived from the arguments only and must not be cached.
func ComputeVisibleFeed(posts []models.Post, edges []models.FollowEdge, viewerID uint) []models.Post {
	following := lo.SliceToMap(
		lo.Filter(edges, func(item models.FollowEdge, _ int) bool {
			return item.FollowerID == viewerID
		}),
		func(item models.FollowEdge) (uint, bool) {
			return item.FolloweeID, true
		},
	)

	return lo.Filter(posts, func(item models.Post, _ int) bool {
		authorID, ok := item.AuthorID()
		if !ok {
			return false
		}
		return authorID == viewerID || following[authorID]
	})
}
