package services

import (
	"sort"
	"sync"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Dispatcher receives every appended notification, the delivery queue implements it.
type Dispatcher interface {
	Dispatch(item models.Notification)
}

// Notifier is the narrow side of the notification store the other stores depend on.
type Notifier interface {
	Append(in NotificationInput) models.Notification
}

type NotificationInput struct {
	RecipientID   uint
	ActorID       *uint
	Type          models.NotificationType
	TargetType    *models.NotificationTarget
	TargetID      *uint
	TargetOwnerID *uint
	CreatedAt     string
}

type NotificationStore struct {
	lock       sync.RWMutex
	items      []models.Notification
	clock      util.Clock
	dispatcher Dispatcher
}

func NewNotificationStore(clock util.Clock) *NotificationStore {
	if clock == nil {
		clock = util.NewRealClock()
	}
	return &NotificationStore{clock: clock}
}

func (v *NotificationStore) SetDispatcher(dispatcher Dispatcher) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.dispatcher = dispatcher
}

// Append always succeeds, the id is the largest existing one plus one.
func (v *NotificationStore) Append(in NotificationInput) models.Notification {
	if in.CreatedAt == "" {
		in.CreatedAt = util.Timestamp(v.clock)
	}

	v.lock.Lock()
	var id uint = 1
	if len(v.items) > 0 {
		id = lo.MaxBy(v.items, func(a, b models.Notification) bool {
			return a.ID > b.ID
		}).ID + 1
	}
	item := models.Notification{
		ID:            id,
		RecipientID:   in.RecipientID,
		ActorID:       in.ActorID,
		Type:          in.Type,
		TargetType:    in.TargetType,
		TargetID:      in.TargetID,
		TargetOwnerID: in.TargetOwnerID,
		CreatedAt:     in.CreatedAt,
	}
	v.items = append(v.items, item)
	// Dispatching under the lock keeps the queue in id order. The dispatcher must not call back.
	if v.dispatcher != nil {
		v.dispatcher.Dispatch(cloneNotification(item))
	}
	v.lock.Unlock()

	log.Debug().
		Uint("id", item.ID).
		Uint("recipient", item.RecipientID).
		Str("type", string(item.Type)).
		Msg("Appended notification...")

	return cloneNotification(item)
}

func (v *NotificationStore) MarkRead(id uint) bool {
	v.lock.Lock()
	defer v.lock.Unlock()
	for idx := range v.items {
		if v.items[idx].ID == id {
			v.items[idx].Read = true
			return true
		}
	}
	return false
}

func (v *NotificationStore) MarkAllRead(recipientID uint) int {
	v.lock.Lock()
	defer v.lock.Unlock()
	count := 0
	for idx := range v.items {
		if v.items[idx].RecipientID == recipientID && !v.items[idx].Read {
			v.items[idx].Read = true
			count++
		}
	}
	return count
}

// All returns every notification in append order.
func (v *NotificationStore) All() []models.Notification {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return lo.Map(v.items, func(item models.Notification, _ int) models.Notification {
		return cloneNotification(item)
	})
}

// List returns the recipient's notifications, newest first.
func (v *NotificationStore) List(recipientID uint) []models.Notification {
	v.lock.RLock()
	out := lo.FilterMap(v.items, func(item models.Notification, _ int) (models.Notification, bool) {
		return cloneNotification(item), item.RecipientID == recipientID
	})
	v.lock.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out
}

func (v *NotificationStore) UnreadCount(recipientID uint) int {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return lo.CountBy(v.items, func(item models.Notification) bool {
		return item.RecipientID == recipientID && !item.Read
	})
}

func cloneNotification(in models.Notification) models.Notification {
	out := in
	out.ActorID = cloneID(in.ActorID)
	out.TargetID = cloneID(in.TargetID)
	out.TargetOwnerID = cloneID(in.TargetOwnerID)
	if in.TargetType != nil {
		out.TargetType = lo.ToPtr(*in.TargetType)
	}
	return out
}

func cloneID(in *uint) *uint {
	if in == nil {
		return nil
	}
	return lo.ToPtr(*in)
}
