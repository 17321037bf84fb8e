package services

import (
	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/seed"
	"git.solsynth.dev/hypernet/threads/pkg/internal/util"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
)

type StackConfig struct {
	Clock     util.Clock
	Cache     store.StoreInterface
	Detector  LanguageDetector
	Lookup    CommentLookup
	Deliverer Deliverer
}

// Stack holds one instance of every store, wired together.
type Stack struct {
	Users         *Directory
	Graph         *SocialGraph
	Feed          *FeedStore
	Notifications *NotificationStore
	Delivery      *DeliveryQueue
}

func NewStack(cfg StackConfig) *Stack {
	if cfg.Clock == nil {
		cfg.Clock = util.NewRealClock()
	}

	users := NewDirectory(cfg.Cache)
	notifications := NewNotificationStore(cfg.Clock)

	var delivery *DeliveryQueue
	if cfg.Deliverer != nil {
		delivery = NewDeliveryQueue(cfg.Deliverer, users)
		notifications.SetDispatcher(delivery)
	}

	return &Stack{
		Users:         users,
		Graph:         NewSocialGraph(notifications, cfg.Clock),
		Notifications: notifications,
		Delivery:      delivery,
		Feed: NewFeedStore(FeedStoreConfig{
			Users:    users,
			Notifier: notifications,
			Clock:    cfg.Clock,
			Detector: cfg.Detector,
			Lookup:   cfg.Lookup,
		}),
	}
}

// Hydrate replaces the users, posts and follow edges with a seeded snapshot.
// Restoring the graph never produces follow notifications.
func (v *Stack) Hydrate(snapshot seed.Snapshot) {
	v.Users.Restore(snapshot.Users)
	v.Graph.Restore(snapshot.Edges)
	v.Feed.Restore(snapshot.Posts)

	log.Info().
		Int("users", len(snapshot.Users)).
		Int("posts", len(snapshot.Posts)).
		Int("edges", len(snapshot.Edges)).
		Msg("Hydrated stores from snapshot...")
}

// Timeline is the viewer's own posts plus posts of the users they follow.
func (v *Stack) Timeline(viewerID uint) []models.Post {
	return ComputeVisibleFeed(v.Feed.Posts(), v.Graph.Edges(), viewerID)
}

func (v *Stack) Search(query string) []models.SearchResult {
	return Search(query, v.Users.Users(), v.Feed.Posts())
}

// Snapshot captures the current state in the shape seed loaders produce.
func (v *Stack) Snapshot() seed.Snapshot {
	return seed.Snapshot{
		Users: v.Users.Users(),
		Posts: v.Feed.Posts(),
		Edges: v.Graph.Edges(),
	}
}
