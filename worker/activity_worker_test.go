package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamhub/models"
)

// flakyStore fails the first failures writes, then assigns ids
type flakyStore struct {
	mu       sync.Mutex
	failures int
	calls    int
	stored   []models.Activity
}

func (s *flakyStore) Create(_ context.Context, activity *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return errors.New("database unavailable")
	}
	activity.ID = uint(len(s.stored) + 1)
	s.stored = append(s.stored, *activity)
	return nil
}

type collectingPublisher struct {
	mu        sync.Mutex
	published []models.Activity
}

func (p *collectingPublisher) Publish(activity models.Activity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, activity)
}

func (p *collectingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func newTestWorker(store ActivityStore, pub Publisher, capacity int) *ActivityRetryWorker {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewActivityRetryWorker(store, pub, log, capacity, time.Millisecond)
}

func TestActivityRetryWorker_RetriesUntilStored(t *testing.T) {
	store := &flakyStore{failures: 2}
	pub := &collectingPublisher{}
	w := newTestWorker(store, pub, 4)

	require.True(t, w.Enqueue(models.Activity{ID: 99, Action: models.ActionCommentAdded, UserID: 1, TeamID: 2}))
	assert.Equal(t, 1, w.Pending())

	ctx := context.Background()
	w.ProcessPending(ctx)
	assert.Equal(t, 1, w.Pending())
	w.ProcessPending(ctx)
	assert.Equal(t, 1, w.Pending())
	w.ProcessPending(ctx)
	assert.Equal(t, 0, w.Pending())

	require.Len(t, store.stored, 1)
	assert.Equal(t, uint(1), store.stored[0].ID)
	require.Equal(t, 1, pub.count())
	assert.Equal(t, models.ActionCommentAdded, pub.published[0].Action)
}

func TestActivityRetryWorker_DropsAfterMaxAttempts(t *testing.T) {
	store := &flakyStore{failures: 100}
	pub := &collectingPublisher{}
	w := newTestWorker(store, pub, 4)
	require.True(t, w.Enqueue(models.Activity{Action: "x", UserID: 1, TeamID: 1}))

	for i := 0; i < w.maxAttempts; i++ {
		w.ProcessPending(context.Background())
	}

	assert.Equal(t, 0, w.Pending())
	assert.Equal(t, w.maxAttempts, store.calls)
	assert.Equal(t, 0, pub.count())
}

func TestActivityRetryWorker_EnqueueRejectsWhenFull(t *testing.T) {
	w := newTestWorker(&flakyStore{}, nil, 1)

	assert.True(t, w.Enqueue(models.Activity{Action: "a"}))
	assert.False(t, w.Enqueue(models.Activity{Action: "b"}))
	assert.Equal(t, 1, w.Pending())
}

func TestActivityRetryWorker_StartStopsOnCancel(t *testing.T) {
	store := &flakyStore{}
	pub := &collectingPublisher{}
	w := newTestWorker(store, pub, 4)
	require.True(t, w.Enqueue(models.Activity{Action: "x", UserID: 1, TeamID: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
