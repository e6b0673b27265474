package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	admindomain "github.com/sngm3741/delivery-availability/api/internal/admin/domain"
	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock(t time.Time) *stepClock {
	return &stepClock{now: t}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fakeStoreRepo struct {
	mu          sync.Mutex
	stores      map[string]admindomain.Store
	nextID      int
	finds       int
	writes      int
	clearErr    error
	clearCalls  int
	saveErr     error
	createdByID []string
}

func newFakeStoreRepo(stores ...admindomain.Store) *fakeStoreRepo {
	repo := &fakeStoreRepo{stores: make(map[string]admindomain.Store)}
	for _, s := range stores {
		repo.stores[s.ID] = s
	}
	return repo
}

func (r *fakeStoreRepo) Find(_ context.Context, filter StoreFilter, _ Paging) ([]admindomain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]admindomain.Store, 0, len(r.stores))
	for _, s := range r.stores {
		if filter.BlockedOnly && !s.Block.Blocked {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id string) (*admindomain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	store, ok := r.stores[id]
	if !ok {
		return nil, availability.ErrStoreNotFound
	}
	return &store, nil
}

func (r *fakeStoreRepo) Create(_ context.Context, store *admindomain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	store.ID = fmt.Sprintf("store-%d", r.nextID)
	r.stores[store.ID] = *store
	r.createdByID = append(r.createdByID, store.ID)
	r.writes++
	return nil
}

func (r *fakeStoreRepo) update(id string, fn func(*admindomain.Store)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	store, ok := r.stores[id]
	if !ok {
		return availability.ErrStoreNotFound
	}
	fn(&store)
	r.stores[id] = store
	r.writes++
	return nil
}

func (r *fakeStoreRepo) SaveSchedule(_ context.Context, id string, schedule availability.WeeklySchedule, updatedAt time.Time) error {
	return r.update(id, func(s *admindomain.Store) {
		s.Schedule = schedule
		s.UpdatedAt = updatedAt
	})
}

func (r *fakeStoreRepo) SavePause(_ context.Context, id string, pause availability.Pause, updatedAt time.Time) error {
	return r.update(id, func(s *admindomain.Store) {
		s.Pause = pause
		s.UpdatedAt = updatedAt
	})
}

func (r *fakeStoreRepo) SaveBlock(_ context.Context, id string, block availability.Block, updatedAt time.Time) error {
	return r.update(id, func(s *admindomain.Store) {
		s.Block = block
		s.UpdatedAt = updatedAt
	})
}

func (r *fakeStoreRepo) ClearExpiredPause(_ context.Context, id string, startedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearCalls++
	if r.clearErr != nil {
		return r.clearErr
	}
	store, ok := r.stores[id]
	if !ok {
		return availability.ErrStoreNotFound
	}
	if store.Pause.StartedAt.Equal(startedAt) {
		store.Pause = availability.Pause{}
		r.stores[id] = store
		r.writes++
	}
	return nil
}

func (r *fakeStoreRepo) get(id string) admindomain.Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stores[id]
}

func (r *fakeStoreRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

type countingRecorder struct {
	mu          sync.Mutex
	transitions map[string]int
	open        int
	closed      int
	writeBacks  int
	hits        int
	misses      int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{transitions: make(map[string]int)}
}

func (r *countingRecorder) Transition(kind string) {
	r.mu.Lock()
	r.transitions[kind]++
	r.mu.Unlock()
}

func (r *countingRecorder) Decision(open bool) {
	r.mu.Lock()
	if open {
		r.open++
	} else {
		r.closed++
	}
	r.mu.Unlock()
}

func (r *countingRecorder) WriteBackFailed() {
	r.mu.Lock()
	r.writeBacks++
	r.mu.Unlock()
}

func (r *countingRecorder) CacheHit() {
	r.mu.Lock()
	r.hits++
	r.mu.Unlock()
}

func (r *countingRecorder) CacheMiss() {
	r.mu.Lock()
	r.misses++
	r.mu.Unlock()
}

var errStorage = errors.New("storage unavailable")
