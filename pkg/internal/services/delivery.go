package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"git.solsynth.dev/hypernet/pusher/pkg/pushkit"
	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Deliverer pushes a rendered notification to the recipient's devices.
type Deliverer interface {
	Deliver(ctx context.Context, recipientID uint, notify pushkit.Notification) error
}

// DeliveryQueue buffers appended notifications until the next flush.
type DeliveryQueue struct {
	lock      sync.Mutex
	queue     []models.Notification
	deliverer Deliverer
	users     UserResolver
}

func NewDeliveryQueue(deliverer Deliverer, users UserResolver) *DeliveryQueue {
	return &DeliveryQueue{deliverer: deliverer, users: users}
}

func (v *DeliveryQueue) Dispatch(item models.Notification) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.queue = append(v.queue, item)
}

func (v *DeliveryQueue) Pending() int {
	v.lock.Lock()
	defer v.lock.Unlock()
	return len(v.queue)
}

// Flush drains the queue, notifications that failed to deliver are put back.
func (v *DeliveryQueue) Flush(ctx context.Context) (int, error) {
	v.lock.Lock()
	if len(v.queue) == 0 {
		v.lock.Unlock()
		return 0, nil
	}
	workingQueue := v.queue
	v.queue = nil
	v.lock.Unlock()

	var failed []models.Notification
	var lastErr error
	for _, item := range workingQueue {
		if err := v.deliverer.Deliver(ctx, item.RecipientID, v.Render(item)); err != nil {
			log.Warn().Err(err).Uint("id", item.ID).Msg("An error occurred when delivering notification...")
			failed = append(failed, item)
			lastErr = err
		}
	}

	if len(failed) > 0 {
		v.lock.Lock()
		v.queue = append(failed, v.queue...)
		v.lock.Unlock()
	}

	delivered := len(workingQueue) - len(failed)
	log.Debug().Int("delivered", delivered).Int("failed", len(failed)).Msg("Flushed notification deliveries...")
	if lastErr != nil {
		return delivered, fmt.Errorf("unable to deliver %d notifications: %v", len(failed), lastErr)
	}
	return delivered, nil
}

// FlushTimedTask is the cron entry point.
func (v *DeliveryQueue) FlushTimedTask() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if _, err := v.Flush(ctx); err != nil {
		log.Error().Err(err).Msg("An error occurred when flushing notification deliveries...")
	}
}

func (v *DeliveryQueue) actorName(item models.Notification) string {
	if item.ActorID == nil || v.users == nil {
		return "Someone"
	}
	if user := v.users.User(*item.ActorID); user != nil {
		return user.Username
	}
	return "Someone"
}

// Render turns a notification into the push payload.
func (v *DeliveryQueue) Render(item models.Notification) pushkit.Notification {
	info := models.NotificationTypes[item.Type]
	actor := v.actorName(item)

	var body string
	switch item.Type {
	case models.NotificationLikePost:
		body = fmt.Sprintf("%s liked your post.", actor)
	case models.NotificationLikeComment:
		body = fmt.Sprintf("%s liked your comment.", actor)
	case models.NotificationComment:
		body = fmt.Sprintf("%s commented on your post.", actor)
	case models.NotificationReplyPost:
		body = fmt.Sprintf("%s replied to your post.", actor)
	case models.NotificationFollow:
		body = fmt.Sprintf("%s started following you.", actor)
	case models.NotificationMentionPost:
		body = fmt.Sprintf("%s mentioned you in a post.", actor)
	case models.NotificationMentionComment:
		body = fmt.Sprintf("%s mentioned you in a comment.", actor)
	case models.NotificationRepost:
		body = fmt.Sprintf("%s reposted your post.", actor)
	}

	metadata := map[string]any{
		"notification_id": item.ID,
		"type":            string(item.Type),
	}
	if item.TargetType != nil {
		metadata["target_type"] = string(*item.TargetType)
	}
	if item.TargetID != nil {
		metadata["target_id"] = *item.TargetID
	}
	if item.TargetOwnerID != nil {
		metadata["target_owner_id"] = *item.TargetOwnerID
	}

	return pushkit.Notification{
		Topic:    "interactive." + strings.ToLower(string(item.Type)),
		Title:    info.Title,
		Subtitle: actor,
		Body:     body,
		Priority: 4,
		Metadata: metadata,
	}
}

func GetDeliveryChannel(recipientID uint) string {
	return fmt.Sprintf("notifications#%d", recipientID)
}

type DeliveryEnvelope struct {
	ID           uuid.UUID            `json:"id"`
	RecipientID  uint                 `json:"recipient_id"`
	Notification pushkit.Notification `json:"notification"`
	SentAt       time.Time            `json:"sent_at"`
}

// RedisDeliverer publishes envelopes on a per-recipient channel the push gateway listens to.
type RedisDeliverer struct {
	rdb *redis.Client
}

func NewRedisDeliverer(ctx context.Context, addr string) (*RedisDeliverer, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to ping redis: %v", err)
	}
	return &RedisDeliverer{rdb: rdb}, nil
}

func (v *RedisDeliverer) Deliver(ctx context.Context, recipientID uint, notify pushkit.Notification) error {
	raw, err := jsoniter.Marshal(DeliveryEnvelope{
		ID:           uuid.New(),
		RecipientID:  recipientID,
		Notification: notify,
		SentAt:       time.Now(),
	})
	if err != nil {
		return err
	}
	return v.rdb.Publish(ctx, GetDeliveryChannel(recipientID), raw).Err()
}

func (v *RedisDeliverer) Close() error {
	return v.rdb.Close()
}

// LogDeliverer only writes the payload to the log, used when no gateway is configured.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(_ context.Context, recipientID uint, notify pushkit.Notification) error {
	log.Info().Uint("recipient", recipientID).Str("topic", notify.Topic).Str("body", notify.Body).Msg("Delivered notification...")
	return nil
}
