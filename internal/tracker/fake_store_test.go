package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/streakline/internal/models"
	"github.com/julianstephens/streakline/internal/storage"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore is an in-memory EventStore. ListEvents can be made to fail or
// to block until released.
type fakeStore struct {
	mu        sync.Mutex
	goals     map[string]models.Goal
	events    map[string][]models.CompletionEvent
	listCalls int
	failList  bool

	// When gate is non-nil ListEvents snapshots events, signals entered and
	// waits for gate to close.
	gate    chan struct{}
	entered chan struct{}
}

func newFakeStore(goals ...models.Goal) *fakeStore {
	fs := &fakeStore{
		goals:  make(map[string]models.Goal),
		events: make(map[string][]models.CompletionEvent),
	}
	for _, g := range goals {
		fs.goals[g.ID] = g
	}
	return fs
}

func (f *fakeStore) GetGoal(_ context.Context, id string) (models.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.goals[id]
	if !ok || g.DeletedAt != nil {
		return models.Goal{}, fmt.Errorf("goal %s: %w", id, storage.ErrNotFound)
	}
	return g, nil
}

func (f *fakeStore) AppendEvent(_ context.Context, e models.CompletionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[e.GoalID] = append(f.events[e.GoalID], e)
	return nil
}

func (f *fakeStore) ListEvents(_ context.Context, goalID string) ([]models.CompletionEvent, error) {
	f.mu.Lock()
	f.listCalls++
	if f.failList {
		f.mu.Unlock()
		return nil, errStoreDown
	}
	snapshot := append([]models.CompletionEvent(nil), f.events[goalID]...)
	gate, entered := f.gate, f.entered
	f.mu.Unlock()

	if gate != nil {
		entered <- struct{}{}
		<-gate
	}
	return snapshot, nil
}

func (f *fakeStore) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeStore) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failList = fail
}

// fakeClock is a settable clock safe for concurrent reads.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
