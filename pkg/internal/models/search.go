package models

type SearchResultKind = string

const (
	SearchResultUser = SearchResultKind("user")
	SearchResultPost = SearchResultKind("post")
)

type SearchResult struct {
	Kind SearchResultKind `json:"kind"`
	User *User            `json:"user,omitempty"`
	Post *Post            `json:"post,omitempty"`
}
