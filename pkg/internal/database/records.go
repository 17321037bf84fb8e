package database

import (
	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm/schema"
)

type UserRecord struct {
	ID       uint    `gorm:"primaryKey"`
	Username string  `gorm:"uniqueIndex;size:64"`
	Bio      *string `gorm:"size:4096"`
	Avatar   *string
}

func (UserRecord) TableName(namer schema.Namer) string { return namer.TableName("User") }

// PostRecord stores one post row. Reply posts point at the top-level post of their thread with ThreadID
// and at the post whose reply list holds them with HolderID,
// the comment tree is kept as a json column since comments are only ever read with their post.
type PostRecord struct {
	ID           uint  `gorm:"primaryKey"`
	AuthorID     *uint `gorm:"index"`
	ThreadID     *uint `gorm:"index"`
	HolderID     *uint `gorm:"index"`
	ParentID     *uint
	RepostID     *uint
	Content      string
	Language     string `gorm:"size:16"`
	Image        *string
	LikeCount    int
	IsLiked      bool
	CommentCount int
	Comments     datatypes.JSONType[[]models.Comment]
	CreatedAt    string
	UpdatedAt    string
}

func (PostRecord) TableName(namer schema.Namer) string { return namer.TableName("Post") }

type FollowRecord struct {
	FollowerID uint `gorm:"primaryKey"`
	FolloweeID uint `gorm:"primaryKey;index"`
}

func (FollowRecord) TableName(namer schema.Namer) string { return namer.TableName("Follow") }

func NewUserRecord(in models.User) UserRecord {
	return UserRecord{ID: in.ID, Username: in.Username, Bio: in.Bio, Avatar: in.Avatar}
}

func (v UserRecord) ToModel() models.User {
	return models.User{ID: v.ID, Username: v.Username, Bio: v.Bio, Avatar: v.Avatar}
}

func newPostRecord(in models.Post, threadID, holderID *uint) PostRecord {
	var authorID *uint
	if id, ok := in.AuthorID(); ok {
		authorID = lo.ToPtr(id)
	}
	return PostRecord{
		ID:           in.ID,
		AuthorID:     authorID,
		ThreadID:     threadID,
		HolderID:     holderID,
		ParentID:     in.ParentID,
		RepostID:     in.RepostID,
		Content:      in.Content,
		Language:     in.Language,
		Image:        in.Image,
		LikeCount:    in.LikeCount,
		IsLiked:      in.IsLiked,
		CommentCount: in.CommentCount,
		Comments:     datatypes.NewJSONType(in.Comments),
		CreatedAt:    in.CreatedAt,
		UpdatedAt:    in.UpdatedAt,
	}
}

// NewPostRecords flattens top-level posts and their replies at any depth into rows.
func NewPostRecords(posts []models.Post) []PostRecord {
	var out []PostRecord
	for _, post := range posts {
		out = append(out, newPostRecord(post, nil, nil))
		out = appendReplyRecords(out, post, post.ID)
	}
	return out
}

func appendReplyRecords(out []PostRecord, holder models.Post, threadID uint) []PostRecord {
	for _, reply := range holder.Replies {
		out = append(out, newPostRecord(reply, lo.ToPtr(threadID), lo.ToPtr(holder.ID)))
		out = appendReplyRecords(out, reply, threadID)
	}
	return out
}

func (v PostRecord) ToModel(users map[uint]models.User) models.Post {
	var author *models.User
	if v.AuthorID != nil {
		if user, ok := users[*v.AuthorID]; ok {
			author = user.Clone()
		}
	}
	return models.Post{
		ID:           v.ID,
		Author:       author,
		ParentID:     v.ParentID,
		RepostID:     v.RepostID,
		Content:      v.Content,
		Language:     v.Language,
		Image:        v.Image,
		LikeCount:    v.LikeCount,
		IsLiked:      v.IsLiked,
		CommentCount: v.CommentCount,
		Comments:     v.Comments.Data(),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// AssemblePosts rebuilds the post collection from rows ordered newest first.
// Replies whose holder is missing are dropped together with their own replies.
func AssemblePosts(records []PostRecord, users map[uint]models.User) []models.Post {
	// Replies keep insertion order, which is ascending id.
	children := make(map[uint][]PostRecord)
	for idx := len(records) - 1; idx >= 0; idx-- {
		record := records[idx]
		if record.ThreadID == nil {
			continue
		}
		holder := *record.ThreadID
		if record.HolderID != nil {
			holder = *record.HolderID
		}
		children[holder] = append(children[holder], record)
	}

	var out []models.Post
	for _, record := range records {
		if record.ThreadID != nil {
			continue
		}
		out = append(out, assemblePost(record, children, users, make(map[uint]bool)))
	}
	return out
}

func assemblePost(record PostRecord, children map[uint][]PostRecord, users map[uint]models.User, seen map[uint]bool) models.Post {
	seen[record.ID] = true
	post := record.ToModel(users)
	for _, child := range children[record.ID] {
		if seen[child.ID] {
			continue
		}
		post.Replies = append(post.Replies, assemblePost(child, children, users, seen))
	}
	return post
}

func NewFollowRecord(in models.FollowEdge) FollowRecord {
	return FollowRecord{FollowerID: in.FollowerID, FolloweeID: in.FolloweeID}
}

func (v FollowRecord) ToModel() models.FollowEdge {
	return models.FollowEdge{FollowerID: v.FollowerID, FolloweeID: v.FolloweeID}
}
