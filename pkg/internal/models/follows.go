package models

// FollowEdge means FollowerID receives FolloweeID's posts in the timeline.
type FollowEdge struct {
	FollowerID uint `json:"follower_id"`
	FolloweeID uint `json:"followee_id"`
}
