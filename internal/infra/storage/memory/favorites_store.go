package memory

import (
	"context"
	"sync"

	domainlistings "stayhub/internal/domain/listings"
)

type FavoritesStore struct {
	mu     sync.RWMutex
	byUser map[string]map[domainlistings.ListingID]struct{}
}

func NewFavoritesStore() *FavoritesStore {
	return &FavoritesStore{byUser: make(map[string]map[domainlistings.ListingID]struct{})}
}

func (s *FavoritesStore) ListByUser(ctx context.Context, userID string) ([]domainlistings.ListingID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.byUser[userID]
	out := make([]domainlistings.ListingID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out, nil
}

func (s *FavoritesStore) Create(ctx context.Context, userID string, id domainlistings.ListingID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byUser[userID] == nil {
		s.byUser[userID] = make(map[domainlistings.ListingID]struct{})
	}
	s.byUser[userID][id] = struct{}{}
	return nil
}

func (s *FavoritesStore) Delete(ctx context.Context, userID string, id domainlistings.ListingID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser[userID], id)
	return nil
}
