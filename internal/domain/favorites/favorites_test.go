package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/fault"
)

type fakeStore struct {
	mu        sync.Mutex
	set       map[listings.ListingID]bool
	calls     int
	createErr error
	deleteErr error
	listErr   error
	onCreate  func() // runs inside Create, before the error is returned
}

func newFakeStore() *fakeStore {
	return &fakeStore{set: map[listings.ListingID]bool{}}
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string) ([]listings.ListingID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]listings.ListingID, 0, len(f.set))
	for id, ok := range f.set {
		if ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, userID string, id listings.ListingID) error {
	f.mu.Lock()
	hook := f.onCreate
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return f.createErr
	}
	f.set[id] = true
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, userID string, id listings.ListingID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.set, id)
	return nil
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestAnonymousTogglesNeverReachRemote(t *testing.T) {
	store := newFakeStore()
	s := NewLocal()
	ctx := context.Background()

	on, err := s.Toggle(ctx, "lst-x")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := s.Toggle(ctx, "lst-x")
	require.NoError(t, err)
	assert.False(t, off)

	assert.False(t, s.IsFavorite("lst-x"))
	assert.Equal(t, 0, store.callCount())
}

func TestToggleParityWithRemoteSuccess(t *testing.T) {
	store := newFakeStore()
	s := NewSynchronizer(store, "user-1")
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		member, err := s.Toggle(ctx, "lst-1")
		require.NoError(t, err)
		assert.Equal(t, i%2 == 1, member, "toggle %d", i)
	}
	assert.True(t, s.IsFavorite("lst-1"))
	assert.True(t, store.set["lst-1"])
}

func TestFailedToggleRollsBack(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("network down")
	s := NewSynchronizer(store, "user-1")
	ctx := context.Background()

	member, err := s.Toggle(ctx, "lst-1")
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.Transient))
	assert.False(t, member, "rollback must restore the pre-toggle value")
	assert.False(t, s.IsFavorite("lst-1"))
}

func TestPermissionDeniedIsDistinguished(t *testing.T) {
	store := newFakeStore()
	store.createErr = fault.New(fault.PermissionDenied, "favorites: not allowed")
	s := NewSynchronizer(store, "user-1")

	_, err := s.Toggle(context.Background(), "lst-1")
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.PermissionDenied))
}

func TestStaleFailureDoesNotClobberNewerToggle(t *testing.T) {
	store := newFakeStore()
	s := NewSynchronizer(store, "user-1")
	ctx := context.Background()

	release := make(chan struct{})
	entered := make(chan struct{})
	store.createErr = errors.New("timeout")
	store.onCreate = func() {
		close(entered)
		<-release
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Toggle(ctx, "lst-1")
		firstDone <- err
	}()

	<-entered // first toggle is optimistically applied, remote call in flight

	// second toggle flips against the latest optimistic state
	secondDone := make(chan bool, 1)
	go func() {
		member, _ := s.Toggle(ctx, "lst-1")
		secondDone <- member
	}()
	assert.Eventually(t, func() bool {
		return !s.IsFavorite("lst-1")
	}, time.Second, time.Millisecond)

	store.mu.Lock()
	store.onCreate = nil
	store.mu.Unlock()
	close(release)

	require.Error(t, <-firstDone)
	assert.False(t, <-secondDone)

	// the stale rollback must not resurrect the first toggle's value
	assert.False(t, s.IsFavorite("lst-1"))
}

func TestHydrateReplacesLocalState(t *testing.T) {
	store := newFakeStore()
	store.set["lst-a"] = true
	store.set["lst-b"] = true
	s := NewSynchronizer(store, "user-1")
	ctx := context.Background()

	// favorited here, then removed remotely from another device
	_, err := s.Toggle(ctx, "lst-c")
	require.NoError(t, err)
	store.mu.Lock()
	delete(store.set, "lst-c")
	store.mu.Unlock()

	require.NoError(t, s.Hydrate(ctx))
	assert.Equal(t, []listings.ListingID{"lst-a", "lst-b"}, s.All())
	assert.False(t, s.IsFavorite("lst-c"))
}

func TestHydrateErrorClassified(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("boom")
	s := NewSynchronizer(store, "user-1")
	err := s.Hydrate(context.Background())
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.Transient))
}

func TestPendingRemoteVisibleWhileInFlight(t *testing.T) {
	store := newFakeStore()
	s := NewSynchronizer(store, "user-1")

	release := make(chan struct{})
	entered := make(chan struct{})
	store.onCreate = func() {
		close(entered)
		<-release
	}
	done := make(chan struct{})
	go func() {
		_, _ = s.Toggle(context.Background(), "lst-1")
		close(done)
	}()
	<-entered
	state := s.State("lst-1")
	assert.True(t, state.Favorited)
	assert.True(t, state.PendingRemote)
	close(release)
	<-done
	assert.False(t, s.State("lst-1").PendingRemote)
}
