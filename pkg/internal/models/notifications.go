package models

import "fmt"

type NotificationType string

const (
	NotificationLikePost       = NotificationType("LIKE_POST")
	NotificationLikeComment    = NotificationType("LIKE_COMMENT")
	NotificationComment        = NotificationType("COMMENT")
	NotificationReplyPost      = NotificationType("REPLY_POST")
	NotificationFollow         = NotificationType("FOLLOW")
	NotificationMentionPost    = NotificationType("MENTION_POST")
	NotificationMentionComment = NotificationType("MENTION_COMMENT")
	NotificationRepost         = NotificationType("REPOST")
)

type NotificationTarget string

const (
	NotificationTargetPost    = NotificationTarget("POST")
	NotificationTargetComment = NotificationTarget("COMMENT")
	NotificationTargetUser    = NotificationTarget("USER")
)

// NotificationTypeInfo describes how a type is presented and whether the core can produce it.
type NotificationTypeInfo struct {
	Target     NotificationTarget
	Title      string
	Producible bool
}

var NotificationTypes = map[NotificationType]NotificationTypeInfo{
	NotificationLikePost:       {Target: NotificationTargetPost, Title: "Post got liked", Producible: true},
	NotificationLikeComment:    {Target: NotificationTargetComment, Title: "Comment got liked"},
	NotificationComment:        {Target: NotificationTargetPost, Title: "New comment"},
	NotificationReplyPost:      {Target: NotificationTargetPost, Title: "Post got replied"},
	NotificationFollow:         {Target: NotificationTargetUser, Title: "New follower", Producible: true},
	NotificationMentionPost:    {Target: NotificationTargetPost, Title: "Mentioned in a post"},
	NotificationMentionComment: {Target: NotificationTargetComment, Title: "Mentioned in a comment"},
	NotificationRepost:         {Target: NotificationTargetPost, Title: "Post got reposted"},
}

func (v NotificationType) Valid() bool {
	_, ok := NotificationTypes[v]
	return ok
}

func ParseNotificationType(in string) (NotificationType, error) {
	out := NotificationType(in)
	if !out.Valid() {
		return out, fmt.Errorf("unknown notification type: %s", in)
	}
	return out, nil
}

type Notification struct {
	ID            uint                `json:"id"`
	RecipientID   uint                `json:"recipient_id"`
	ActorID       *uint               `json:"actor_id"`
	Type          NotificationType    `json:"type"`
	TargetType    *NotificationTarget `json:"target_type"`
	TargetID      *uint               `json:"target_id"`
	TargetOwnerID *uint               `json:"target_owner_id"`
	Read          bool                `json:"read"`
	CreatedAt     string              `json:"created_at"`
}
