package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

func GetUserCacheKey(id uint) string {
	return fmt.Sprintf("user#%d", id)
}

// Directory owns the known users and resolves author references for the other stores.
type Directory struct {
	lock   sync.RWMutex
	users  map[uint]models.User
	lastID uint
	cache  *marshaler.Marshaler
}

// NewDirectory creates a directory, the cache store is optional.
func NewDirectory(cacheStore store.StoreInterface) *Directory {
	dir := &Directory{users: make(map[uint]models.User)}
	if cacheStore != nil {
		dir.cache = marshaler.New(cache.New[any](cacheStore))
	}
	return dir
}

func (v *Directory) Put(users ...models.User) {
	v.lock.Lock()
	for _, user := range users {
		v.users[user.ID] = *user.Clone()
		v.lastID = max(v.lastID, user.ID)
	}
	v.lock.Unlock()

	if v.cache != nil {
		ctx := context.Background()
		for _, user := range users {
			_ = v.cache.Delete(ctx, GetUserCacheKey(user.ID))
		}
	}
}

// Restore replaces every known user, the next issued id follows the largest restored one.
func (v *Directory) Restore(users []models.User) {
	v.lock.Lock()
	stale := lo.Keys(v.users)
	v.users = make(map[uint]models.User, len(users))
	v.lastID = 0
	for _, user := range users {
		v.users[user.ID] = *user.Clone()
		v.lastID = max(v.lastID, user.ID)
	}
	v.lock.Unlock()

	if v.cache != nil {
		ctx := context.Background()
		for _, id := range stale {
			_ = v.cache.Delete(ctx, GetUserCacheKey(id))
		}
		for _, user := range users {
			_ = v.cache.Delete(ctx, GetUserCacheKey(user.ID))
		}
	}
}

// Register issues the next user id after validating the profile.
func (v *Directory) Register(username string, bio, avatar *string) (models.User, error) {
	user := models.User{
		Username: strings.TrimSpace(username),
		Bio:      bio,
		Avatar:   avatar,
	}
	if err := ValidateStruct(user); err != nil {
		return user, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}

	v.lock.Lock()
	if lo.ContainsBy(lo.Values(v.users), func(item models.User) bool {
		return strings.EqualFold(item.Username, user.Username)
	}) {
		v.lock.Unlock()
		return user, fmt.Errorf("%w: username %s already taken", ErrInvalidUser, user.Username)
	}
	v.lastID++
	user.ID = v.lastID
	v.users[user.ID] = *user.Clone()
	v.lock.Unlock()

	log.Debug().Uint("id", user.ID).Str("username", user.Username).Msg("Registered user...")
	return user, nil
}

// User resolves a user by id, nil when unknown.
func (v *Directory) User(id uint) *models.User {
	ctx := context.Background()
	key := GetUserCacheKey(id)

	if v.cache != nil {
		if cached, err := v.cache.Get(ctx, key, new(models.User)); err == nil {
			if user, ok := cached.(*models.User); ok {
				return user
			}
		}
	}

	v.lock.RLock()
	user, ok := v.users[id]
	v.lock.RUnlock()
	if !ok {
		return nil
	}

	if v.cache != nil {
		_ = v.cache.Set(
			ctx,
			key,
			user,
			store.WithExpiration(30*time.Minute),
			store.WithTags([]string{"user", key}),
		)
	}

	return user.Clone()
}

// Users returns every known user ordered by id.
func (v *Directory) Users() []models.User {
	v.lock.RLock()
	out := lo.Map(lo.Values(v.users), func(item models.User, _ int) models.User {
		return *item.Clone()
	})
	v.lock.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (v *Directory) Count() int {
	v.lock.RLock()
	defer v.lock.RUnlock()
	return len(v.users)
}
