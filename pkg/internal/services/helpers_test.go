package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/pusher/pkg/pushkit"
	"git.solsynth.dev/hypernet/threads/pkg/internal/models"
	"git.solsynth.dev/hypernet/threads/pkg/internal/services"
	"git.solsynth.dev/hypernet/threads/pkg/internal/util"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

func newStubClock() *util.StubClock {
	clock := util.NewStubClock()
	clock.SetNow(time.Date(2024, 11, 2, 4, 48, 32, 0, time.UTC))
	return clock
}

type testEnv struct {
	clock  *util.StubClock
	stack  *services.Stack
	pusher *recordingDeliverer
}

func newTestEnv(t *testing.T, lookup services.CommentLookup) *testEnv {
	t.Helper()

	clock := newStubClock()
	pusher := &recordingDeliverer{}
	stack := services.NewStack(services.StackConfig{
		Clock:     clock,
		Lookup:    lookup,
		Deliverer: pusher,
	})
	return &testEnv{clock: clock, stack: stack, pusher: pusher}
}

func (v *testEnv) register(t *testing.T) models.User {
	t.Helper()
	user, err := v.stack.Users.Register(gofakeit.Username()+gofakeit.DigitN(6), nil, nil)
	require.NoError(t, err)
	return user
}

func (v *testEnv) post(t *testing.T, authorID uint) *models.Post {
	t.Helper()
	post, err := v.stack.Feed.AddPost(authorID, gofakeit.Sentence(8), nil)
	require.NoError(t, err)
	require.NotNil(t, post)
	return post
}

type delivery struct {
	RecipientID uint
	Notify      pushkit.Notification
}

type recordingDeliverer struct {
	lock      sync.Mutex
	delivered []delivery
	fail      error
}

func (v *recordingDeliverer) Deliver(_ context.Context, recipientID uint, notify pushkit.Notification) error {
	v.lock.Lock()
	defer v.lock.Unlock()
	if v.fail != nil {
		return v.fail
	}
	v.delivered = append(v.delivered, delivery{RecipientID: recipientID, Notify: notify})
	return nil
}

func (v *recordingDeliverer) Delivered() []delivery {
	v.lock.Lock()
	defer v.lock.Unlock()
	return append([]delivery(nil), v.delivered...)
}

func (v *recordingDeliverer) SetFail(err error) {
	v.lock.Lock()
	defer v.lock.Unlock()
	v.fail = err
}

// ofType filters notifications by type.
func ofType(items []models.Notification, kind models.NotificationType) []models.Notification {
	var out []models.Notification
	for _, item := range items {
		if item.Type == kind {
			out = append(out, item)
		}
	}
	return out
}
