package models

// Post is a timeline entry. IsLiked is the viewer projection and
// LikeCount must only ever move together with it.
type Post struct {
	ID       uint    `json:"id"`
	Author   *User   `json:"author"`
	ParentID *uint   `json:"parent_id"`
	RepostID *uint   `json:"repost_id"`
	Content  string  `json:"content"`
	Language string  `json:"language"`
	Image    *string `json:"image"`

	LikeCount    int  `json:"like_count"`
	IsLiked      bool `json:"is_liked"`
	CommentCount int  `json:"comment_count"`

	Comments []Comment `json:"comments"`
	Replies  []Post    `json:"replies"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (v Post) AuthorID() (uint, bool) {
	if v.Author == nil {
		return 0, false
	}
	return v.Author.ID, true
}

// Clone returns a deep copy, the stores never hand out their own trees.
func (v Post) Clone() Post {
	out := v
	out.Author = v.Author.Clone()
	out.ParentID = cloneID(v.ParentID)
	out.RepostID = cloneID(v.RepostID)
	if v.Image != nil {
		image := *v.Image
		out.Image = &image
	}
	if v.Comments != nil {
		out.Comments = make([]Comment, len(v.Comments))
		for idx, item := range v.Comments {
			out.Comments[idx] = item.Clone()
		}
	}
	if v.Replies != nil {
		out.Replies = make([]Post, len(v.Replies))
		for idx, item := range v.Replies {
			out.Replies[idx] = item.Clone()
		}
	}
	return out
}

// Walk visits the post and every nested reply depth first, stopping when fn returns false.
func (v *Post) Walk(fn func(item *Post) bool) bool {
	if !fn(v) {
		return false
	}
	for idx := range v.Replies {
		if !v.Replies[idx].Walk(fn) {
			return false
		}
	}
	return true
}

type Comment struct {
	ID       uint   `json:"id"`
	PostID   uint   `json:"post_id"`
	Author   *User  `json:"author"`
	ParentID *uint  `json:"parent_id"`
	Content  string `json:"content"`

	LikeCount int  `json:"like_count"`
	IsLiked   bool `json:"is_liked"`

	Replies []Comment `json:"replies"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (v Comment) Clone() Comment {
	out := v
	out.Author = v.Author.Clone()
	out.ParentID = cloneID(v.ParentID)
	if v.Replies != nil {
		out.Replies = make([]Comment, len(v.Replies))
		for idx, item := range v.Replies {
			out.Replies[idx] = item.Clone()
		}
	}
	return out
}

func (v *Comment) Walk(fn func(item *Comment) bool) bool {
	if !fn(v) {
		return false
	}
	for idx := range v.Replies {
		if !v.Replies[idx].Walk(fn) {
			return false
		}
	}
	return true
}

func cloneID(in *uint) *uint {
	if in == nil {
		return nil
	}
	out := *in
	return &out
}
