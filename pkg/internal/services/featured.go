package services

import (
	"sort"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"github.com/samber/lo"
)

// FeaturedPosts picks the top-level posts with the most social points.
// Likes count once and comments count twice, ties go to the newer post.
// Reposts are skipped.
func FeaturedPosts(posts []models.Post, count int) []models.Post {
	candidates := lo.Filter(posts, func(item models.Post, _ int) bool {
		return item.RepostID == nil
	})

	points := func(item models.Post) int {
		return item.LikeCount + 2*item.CommentCount
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if points(candidates[i]) != points(candidates[j]) {
			return points(candidates[i]) > points(candidates[j])
		}
		return candidates[i].ID > candidates[j].ID
	})

	if count > 0 && len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates
}
