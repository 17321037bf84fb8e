package services

import (
	"strings"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"github.com/samber/lo"
)

const SearchLimit = 10

// Search matches usernames and post contents case-insensitively.
// Users come before posts and the combined list is capped at SearchLimit.
func Search(query string, users []models.User, posts []models.Post) []models.SearchResult {
	if len(strings.TrimSpace(query)) == 0 {
		return []models.SearchResult{}
	}

	probe := strings.ToLower(query)

	userResults := lo.Map(lo.Filter(users, func(item models.User, _ int) bool {
		return strings.Contains(strings.ToLower(item.Username), probe)
	}), func(item models.User, _ int) models.SearchResult {
		return models.SearchResult{Kind: models.SearchResultUser, User: item.Clone()}
	})
	if len(userResults) >= SearchLimit {
		return userResults[:SearchLimit]
	}

	postResults := lo.Map(lo.Filter(posts, func(item models.Post, _ int) bool {
		return strings.Contains(strings.ToLower(item.Content), probe)
	}), func(item models.Post, _ int) models.SearchResult {
		return models.SearchResult{Kind: models.SearchResultPost, Post: lo.ToPtr(item.Clone())}
	})

	out := append(userResults, postResults...)
	if len(out) > SearchLimit {
		out = out[:SearchLimit]
	}
	return out
}
