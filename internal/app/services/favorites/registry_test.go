package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/infra/storage/memory"
)

func TestForUserHydratesOnFirstUse(t *testing.T) {
	store := memory.NewFavoritesStore()
	require.NoError(t, store.Create(context.Background(), "user-1", "lst-a"))
	require.NoError(t, store.Create(context.Background(), "user-1", "lst-b"))

	registry := NewRegistry(store, nil)
	s, err := registry.ForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]domainlistings.ListingID{"lst-a", "lst-b"}, s.All())
}

func TestForUserReturnsSameSynchronizer(t *testing.T) {
	registry := NewRegistry(memory.NewFavoritesStore(), nil)
	first, err := registry.ForUser(context.Background(), "user-1")
	require.NoError(t, err)
	second, err := registry.ForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

type failingStore struct {
	err error
}

func (f failingStore) ListByUser(context.Context, string) ([]domainlistings.ListingID, error) {
	return nil, f.err
}
func (f failingStore) Create(context.Context, string, domainlistings.ListingID) error {
	return f.err
}
func (f failingStore) Delete(context.Context, string, domainlistings.ListingID) error {
	return f.err
}

func TestForUserRetriesAfterHydrationFailure(t *testing.T) {
	boom := errors.New("remote down")
	registry := NewRegistry(failingStore{err: boom}, nil)

	s, err := registry.ForUser(context.Background(), "user-1")
	require.Error(t, err)
	require.NotNil(t, s, "a usable synchronizer still comes back")

	// Entry was dropped, so the next call hydrates again instead of serving
	// the never-hydrated cache.
	_, err = registry.ForUser(context.Background(), "user-1")
	require.Error(t, err)
}

func TestGuestSetsAreSessionLocalAndDiscarded(t *testing.T) {
	registry := NewRegistry(memory.NewFavoritesStore(), nil)

	s := registry.ForGuest("session-1")
	_, err := s.Toggle(context.Background(), "lst-a")
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
	assert.Len(t, s.All(), 1)

	registry.DropGuest("session-1")
	fresh := registry.ForGuest("session-1")
	assert.Empty(t, fresh.All(), "dropped guest set is gone, not merged anywhere")
}
