package services

import (
	"fmt"
	"strings"
	"sync"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const RepostPrefix = "Repost: "

// CommentLookup decides how deep comment replies are searched when replying or liking.
type CommentLookup int8

const (
	// LookupRecursive walks the whole comment tree.
	LookupRecursive = CommentLookup(iota)
	// LookupShallow only looks at top-level comments and their direct replies.
	LookupShallow
)

func ParseCommentLookup(in string) (CommentLookup, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "", "recursive":
		return LookupRecursive, nil
	case "shallow":
		return LookupShallow, nil
	default:
		return LookupRecursive, fmt.Errorf("unknown comment lookup mode: %s", in)
	}
}

// UserResolver turns an author id into a user reference, nil when unknown.
type UserResolver interface {
	User(id uint) *models.User
}

type FeedStoreConfig struct {
	Users    UserResolver
	Notifier Notifier
	Clock    util.Clock
	Detector LanguageDetector
	Lookup   CommentLookup
}

// FeedStore owns the post collection and the detail post projection.
// The detail post is a copy of one collection entry and every mutation keeps both in step.
type FeedStore struct {
	lock   sync.RWMutex
	posts  []models.Post
	detail *models.Post
	lastID uint

	users    UserResolver
	notifier Notifier
	clock    util.Clock
	detector LanguageDetector
	lookup   CommentLookup
}

func NewFeedStore(cfg FeedStoreConfig) *FeedStore {
	if cfg.Clock == nil {
		cfg.Clock = util.NewRealClock()
	}
	return &FeedStore{
		users:    cfg.Users,
		notifier: cfg.Notifier,
		clock:    cfg.Clock,
		detector: cfg.Detector,
		lookup:   cfg.Lookup,
	}
}

func (v *FeedStore) resolveUser(id uint) *models.User {
	if v.users == nil {
		return nil
	}
	return v.users.User(id)
}

func (v *FeedStore) detectLanguage(content string) string {
	if v.detector == nil {
		return ""
	}
	return v.detector.Detect(content)
}

// findPost searches top-level posts and their nested replies.
func (v *FeedStore) findPost(id uint) *models.Post {
	var out *models.Post
	for idx := range v.posts {
		v.posts[idx].Walk(func(item *models.Post) bool {
			if item.ID == id {
				out = item
				return false
			}
			return true
		})
		if out != nil {
			break
		}
	}
	return out
}

// writeBack replaces the collection entry matching the detail post with a copy of it.
func (v *FeedStore) writeBack() {
	if v.detail == nil {
		return
	}
	if target := v.findPost(v.detail.ID); target != nil {
		*target = v.detail.Clone()
	}
}

// syncDetail refreshes any copy of the given post living inside the detail projection.
func (v *FeedStore) syncDetail(source *models.Post) {
	if v.detail == nil || source == nil {
		return
	}
	v.detail.Walk(func(item *models.Post) bool {
		if item.ID == source.ID {
			*item = source.Clone()
			return false
		}
		return true
	})
}

func (v *FeedStore) nextID() uint {
	v.lastID++
	return v.lastID
}

func (v *FeedStore) AddPost(authorID uint, content string, image *string) (*models.Post, error) {
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	author := v.resolveUser(authorID)
	language := v.detectLanguage(content)
	now := util.Timestamp(v.clock)

	v.lock.Lock()
	item := models.Post{
		ID:        v.nextID(),
		Author:    author,
		Content:   content,
		Language:  language,
		Image:     image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v.posts = append([]models.Post{item}, v.posts...)
	out := item.Clone()
	v.lock.Unlock()

	log.Debug().Uint("id", out.ID).Uint("author", authorID).Str("language", language).Msg("Posted a post...")
	return &out, nil
}

// SelectPost points the detail projection at a post, or clears it when the id is unknown.
func (v *FeedStore) SelectPost(postID uint) *models.Post {
	v.lock.Lock()
	defer v.lock.Unlock()

	target := v.findPost(postID)
	if target == nil {
		v.detail = nil
		return nil
	}
	detail := target.Clone()
	v.detail = &detail
	out := detail.Clone()
	return &out
}

// ToggleLike flips the like state of a post and applies the same result to the detail
// projection under one lock. Only the unlike to like transition notifies the author.
func (v *FeedStore) ToggleLike(postID, viewerID uint) *models.Post {
	v.lock.Lock()
	target := v.findPost(postID)
	if target == nil {
		v.lock.Unlock()
		return nil
	}

	target.IsLiked = !target.IsLiked
	if target.IsLiked {
		target.LikeCount++
	} else {
		target.LikeCount = max(0, target.LikeCount-1)
	}

	if v.detail != nil {
		v.detail.Walk(func(item *models.Post) bool {
			if item.ID == postID {
				item.IsLiked = target.IsLiked
				item.LikeCount = target.LikeCount
			}
			return true
		})
	}

	liked := target.IsLiked
	authorID, hasAuthor := target.AuthorID()
	out := target.Clone()
	v.lock.Unlock()

	if liked && hasAuthor && v.notifier != nil {
		v.notifier.Append(NotificationInput{
			RecipientID:   authorID,
			ActorID:       lo.ToPtr(viewerID),
			Type:          models.NotificationLikePost,
			TargetType:    lo.ToPtr(models.NotificationTargetPost),
			TargetID:      lo.ToPtr(postID),
			TargetOwnerID: lo.ToPtr(authorID),
			CreatedAt:     util.Timestamp(v.clock),
		})
	}

	return &out
}

// Repost prepends a copy of the original content that points back at it.
// Likes, comments and replies are not carried over.
func (v *FeedStore) Repost(postID, authorID uint) (*models.Post, error) {
	author := v.resolveUser(authorID)
	now := util.Timestamp(v.clock)

	v.lock.Lock()
	original := v.findPost(postID)
	if original == nil {
		v.lock.Unlock()
		return nil, nil
	}
	item := models.Post{
		ID:        v.nextID(),
		Author:    author,
		RepostID:  lo.ToPtr(original.ID),
		Content:   RepostPrefix + original.Content,
		Language:  original.Language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v.posts = append([]models.Post{item}, v.posts...)
	out := item.Clone()
	v.lock.Unlock()

	log.Debug().Uint("id", out.ID).Uint("original", postID).Msg("Reposted a post...")
	return &out, nil
}

// ReplyToPost adds a reply post to the detail post. Replies to replies are kept flat in
// the detail's reply list. Without a selected post nothing happens.
func (v *FeedStore) ReplyToPost(parentPostID, authorID uint, content string) (*models.Post, error) {
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	author := v.resolveUser(authorID)
	language := v.detectLanguage(content)
	now := util.Timestamp(v.clock)

	v.lock.Lock()
	defer v.lock.Unlock()
	if v.detail == nil {
		return nil, nil
	}

	item := models.Post{
		ID:        v.nextID(),
		Author:    author,
		ParentID:  lo.ToPtr(parentPostID),
		Content:   content,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v.detail.Replies = append(v.detail.Replies, item)
	v.writeBack()

	out := item.Clone()
	return &out, nil
}

func maxCommentID(post *models.Post) uint {
	var out uint
	for idx := range post.Comments {
		post.Comments[idx].Walk(func(item *models.Comment) bool {
			out = max(out, item.ID)
			return true
		})
	}
	return out
}

func countComments(post *models.Post) int {
	count := 0
	for idx := range post.Comments {
		post.Comments[idx].Walk(func(item *models.Comment) bool {
			count++
			return true
		})
	}
	return count
}

// AddComment appends a top-level comment to the selected post.
func (v *FeedStore) AddComment(postID, authorID uint, content string) (*models.Comment, error) {
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	author := v.resolveUser(authorID)
	now := util.Timestamp(v.clock)

	v.lock.Lock()
	defer v.lock.Unlock()
	if v.detail == nil || v.detail.ID != postID {
		return nil, nil
	}

	item := models.Comment{
		ID:        maxCommentID(v.detail) + 1,
		PostID:    postID,
		Author:    author,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v.detail.Comments = append(v.detail.Comments, item)
	v.detail.CommentCount++
	v.writeBack()

	out := item.Clone()
	return &out, nil
}

// findComment looks a comment up in a post, how deep depends on the lookup mode.
func (v *FeedStore) findComment(post *models.Post, id uint) *models.Comment {
	var out *models.Comment
	for idx := range post.Comments {
		if v.lookup == LookupShallow {
			if post.Comments[idx].ID == id {
				return &post.Comments[idx]
			}
			continue
		}
		post.Comments[idx].Walk(func(item *models.Comment) bool {
			if item.ID == id {
				out = item
				return false
			}
			return true
		})
		if out != nil {
			break
		}
	}
	return out
}

// findReplyComment looks for a comment below the top level of the tree.
func (v *FeedStore) findReplyComment(post *models.Post, id uint) *models.Comment {
	var out *models.Comment
	for idx := range post.Comments {
		replies := post.Comments[idx].Replies
		for jdx := range replies {
			if v.lookup == LookupShallow {
				if replies[jdx].ID == id {
					return &replies[jdx]
				}
				continue
			}
			replies[jdx].Walk(func(item *models.Comment) bool {
				if item.ID == id {
					out = item
					return false
				}
				return true
			})
			if out != nil {
				return out
			}
		}
	}
	return out
}

// AddReply answers a comment of the selected post.
func (v *FeedStore) AddReply(postID, parentCommentID, authorID uint, content string) (*models.Comment, error) {
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	author := v.resolveUser(authorID)
	now := util.Timestamp(v.clock)

	v.lock.Lock()
	defer v.lock.Unlock()
	if v.detail == nil || v.detail.ID != postID {
		return nil, nil
	}

	id := maxCommentID(v.detail) + 1
	parent := v.findComment(v.detail, parentCommentID)
	if parent == nil {
		return nil, nil
	}

	item := models.Comment{
		ID:        id,
		PostID:    postID,
		Author:    author,
		ParentID:  lo.ToPtr(parentCommentID),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	parent.Replies = append(parent.Replies, item)
	v.detail.CommentCount++
	v.writeBack()

	out := item.Clone()
	return &out, nil
}

// ToggleCommentLike flips the like state of a comment. Comment likes never notify.
func (v *FeedStore) ToggleCommentLike(postID, commentID uint, isReply bool) *models.Comment {
	v.lock.Lock()
	defer v.lock.Unlock()

	var host *models.Post
	onDetail := v.detail != nil && v.detail.ID == postID
	if onDetail {
		host = v.detail
	} else {
		host = v.findPost(postID)
	}
	if host == nil {
		return nil
	}

	var target *models.Comment
	if isReply {
		target = v.findReplyComment(host, commentID)
	} else {
		for idx := range host.Comments {
			if host.Comments[idx].ID == commentID {
				target = &host.Comments[idx]
				break
			}
		}
	}
	if target == nil {
		return nil
	}

	target.IsLiked = !target.IsLiked
	if target.IsLiked {
		target.LikeCount++
	} else {
		target.LikeCount = max(0, target.LikeCount-1)
	}
	out := target.Clone()

	if onDetail {
		v.writeBack()
	} else {
		v.syncDetail(host)
	}

	return &out
}

// Restore replaces the collection with seeded posts and clears the detail projection.
func (v *FeedStore) Restore(posts []models.Post) {
	v.lock.Lock()
	defer v.lock.Unlock()

	v.posts = lo.Map(posts, func(item models.Post, _ int) models.Post {
		return item.Clone()
	})
	v.detail = nil
	v.lastID = 0
	for idx := range v.posts {
		v.posts[idx].Walk(func(item *models.Post) bool {
			v.lastID = max(v.lastID, item.ID)
			normalizeLikes(&item.LikeCount, item.IsLiked)
			item.CommentCount = max(item.CommentCount, countComments(item))
			for jdx := range item.Comments {
				item.Comments[jdx].Walk(func(comment *models.Comment) bool {
					normalizeLikes(&comment.LikeCount, comment.IsLiked)
					return true
				})
			}
			return true
		})
	}

	log.Info().Int("count", len(v.posts)).Uint("last_id", v.lastID).Msg("Restored post collection...")
}

// normalizeLikes keeps seeded counters consistent with the liked flag.
func normalizeLikes(count *int, liked bool) {
	if *count < 0 {
		*count = 0
	}
	if liked && *count < 1 {
		*count = 1
	}
}

// Posts returns the top-level collection, newest first.
func (v *FeedStore) Posts() []models.Post {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return lo.Map(v.posts, func(item models.Post, _ int) models.Post {
		return item.Clone()
	})
}

func (v *FeedStore) Post(id uint) *models.Post {
	v.lock.RLock()
	defer v.lock.RUnlock()
	target := v.findPost(id)
	if target == nil {
		return nil
	}
	out := target.Clone()
	return &out
}

func (v *FeedStore) Detail() *models.Post {
	v.lock.RLock()
	defer v.lock.RUnlock()
	if v.detail == nil {
		return nil
	}
	out := v.detail.Clone()
	return &out
}

func (v *FeedStore) AuthorPosts(authorID uint) []models.Post {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return lo.FilterMap(v.posts, func(item models.Post, _ int) (models.Post, bool) {
		id, ok := item.AuthorID()
		return item.Clone(), ok && id == authorID
	})
}
