package services

import (
	"sort"
	"sync"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// SocialGraph owns the follow edge set. Edges are directed and never duplicated.
type SocialGraph struct {
	lock     sync.RWMutex
	edges    map[models.FollowEdge]struct{}
	notifier Notifier
	clock    util.Clock
}

func NewSocialGraph(notifier Notifier, clock util.Clock) *SocialGraph {
	if clock == nil {
		clock = util.NewRealClock()
	}
	return &SocialGraph{
		edges:    make(map[models.FollowEdge]struct{}),
		notifier: notifier,
		clock:    clock,
	}
}

// Follow inserts the edge when it is new and notifies the followee about it.
// Following yourself is ignored.
func (v *SocialGraph) Follow(followerID, followeeID uint) bool {
	if followerID == followeeID {
		log.Debug().Uint("user", followerID).Msg("Ignored self follow...")
		return false
	}

	edge := models.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}

	v.lock.Lock()
	if _, ok := v.edges[edge]; ok {
		v.lock.Unlock()
		return false
	}
	v.edges[edge] = struct{}{}
	v.lock.Unlock()

	if v.notifier != nil {
		v.notifier.Append(NotificationInput{
			RecipientID:   followeeID,
			ActorID:       lo.ToPtr(followerID),
			Type:          models.NotificationFollow,
			TargetType:    lo.ToPtr(models.NotificationTargetUser),
			TargetID:      lo.ToPtr(followeeID),
			TargetOwnerID: lo.ToPtr(followeeID),
			CreatedAt:     util.Timestamp(v.clock),
		})
	}

	return true
}

func (v *SocialGraph) Unfollow(followerID, followeeID uint) bool {
	edge := models.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}

	v.lock.Lock()
	defer v.lock.Unlock()
	if _, ok := v.edges[edge]; !ok {
		return false
	}
	delete(v.edges, edge)
	return true
}

func (v *SocialGraph) IsFollowing(followerID, followeeID uint) bool {
	v.lock.RLock()
	defer v.lock.RUnlock()
	_, ok := v.edges[models.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}]
	return ok
}

func (v *SocialGraph) FollowersOf(userID uint) []uint {
	v.lock.RLock()
	var out []uint
	for edge := range v.edges {
		if edge.FolloweeID == userID {
			out = append(out, edge.FollowerID)
		}
	}
	v.lock.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (v *SocialGraph) FollowingOf(userID uint) []uint {
	v.lock.RLock()
	var out []uint
	for edge := range v.edges {
		if edge.FollowerID == userID {
			out = append(out, edge.FolloweeID)
		}
	}
	v.lock.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (v *SocialGraph) Counts(userID uint) (followers int, following int) {
	v.lock.RLock()
	defer v.lock.RUnlock()
	for edge := range v.edges {
		if edge.FolloweeID == userID {
			followers++
		}
		if edge.FollowerID == userID {
			following++
		}
	}
	return
}

// Edges returns a sorted snapshot of the edge set.
func (v *SocialGraph) Edges() []models.FollowEdge {
	v.lock.RLock()
	out := lo.Keys(v.edges)
	v.lock.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].FollowerID != out[j].FollowerID {
			return out[i].FollowerID < out[j].FollowerID
		}
		return out[i].FolloweeID < out[j].FolloweeID
	})
	return out
}

// Restore replaces the edge set without producing notifications, used when seeding.
func (v *SocialGraph) Restore(edges []models.FollowEdge) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.edges = make(map[models.FollowEdge]struct{}, len(edges))
	for _, edge := range edges {
		if edge.FollowerID == edge.FolloweeID {
			continue
		}
		v.edges[edge] = struct{}{}
	}
}
