package favorites

import (
	"context"
	"sort"
	"sync"

	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/fault"
)

// RemoteStore is the per-(user, listing) favorites record store. Create and
// Delete must be idempotent so that local state converges to the remote set
// after every round trip.
type RemoteStore interface {
	ListByUser(ctx context.Context, userID string) ([]listings.ListingID, error)
	Create(ctx context.Context, userID string, id listings.ListingID) error
	Delete(ctx context.Context, userID string, id listings.ListingID) error
}

// ListingState is the UI-visible view of one listing's favorite membership.
type ListingState struct {
	Favorited     bool
	PendingRemote bool
}

// Synchronizer owns the favorite set for one session. Toggles flip local
// membership optimistically before the remote call completes; a failed call
// rolls the flip back unless a newer toggle already moved the state
// (last-applied-wins, tracked by an epoch per listing). Remote operations for
// the same listing are serialized.
//
// With no authenticated user the set is session-local: toggles never reach
// the remote store and the set is discarded with the session, never merged.
type Synchronizer struct {
	store  RemoteStore
	userID string

	mu      sync.Mutex
	entries map[listings.ListingID]*entry
}

type entry struct {
	member   bool
	epoch    uint64
	inFlight int
	remoteMu sync.Mutex
}

// NewSynchronizer builds a synchronizer for an authenticated user.
func NewSynchronizer(store RemoteStore, userID string) *Synchronizer {
	return &Synchronizer{
		store:   store,
		userID:  userID,
		entries: make(map[listings.ListingID]*entry),
	}
}

// NewLocal builds a session-only synchronizer for an anonymous visitor.
func NewLocal() *Synchronizer {
	return &Synchronizer{entries: make(map[listings.ListingID]*entry)}
}

// Authenticated reports whether toggles are backed by the remote store.
func (s *Synchronizer) Authenticated() bool {
	return s.userID != "" && s.store != nil
}

// Hydrate replaces the local set wholesale with the remote set. It never
// unions with pre-existing local state. Anonymous sessions have nothing to
// hydrate from.
func (s *Synchronizer) Hydrate(ctx context.Context) error {
	if !s.Authenticated() {
		return nil
	}
	ids, err := s.store.ListByUser(ctx, s.userID)
	if err != nil {
		return classify(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[listings.ListingID]*entry, len(ids))
	for _, id := range ids {
		s.entries[id] = &entry{member: true}
	}
	return nil
}

// Toggle flips membership for the listing and reports the resulting
// membership. On remote failure the optimistic flip is rolled back unless a
// newer toggle superseded it; the returned error then carries the remote
// failure kind (permission denied vs transient).
func (s *Synchronizer) Toggle(ctx context.Context, id listings.ListingID) (bool, error) {
	s.mu.Lock()
	e := s.entry(id)
	prev := e.member
	next := !prev
	e.member = next
	e.epoch++
	epoch := e.epoch
	if !s.Authenticated() {
		s.mu.Unlock()
		return next, nil
	}
	e.inFlight++
	s.mu.Unlock()

	// One remote operation per listing at a time; a queued toggle waits here
	// and then syncs whatever state it captured.
	e.remoteMu.Lock()
	var err error
	if next {
		err = s.store.Create(ctx, s.userID, id)
	} else {
		err = s.store.Delete(ctx, s.userID, id)
	}
	e.remoteMu.Unlock()

	s.mu.Lock()
	e.inFlight--
	if err != nil && e.epoch == epoch {
		// No newer toggle arrived; restore the recorded pre-toggle value.
		e.member = prev
	}
	current := e.member
	s.mu.Unlock()

	if err != nil {
		return current, classify(err)
	}
	return current, nil
}

// State returns the UI-visible state for one listing.
func (s *Synchronizer) State(id listings.ListingID) ListingState {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return ListingState{}
	}
	return ListingState{Favorited: e.member, PendingRemote: e.inFlight > 0}
}

// IsFavorite reports current membership for one listing.
func (s *Synchronizer) IsFavorite(id listings.ListingID) bool {
	return s.State(id).Favorited
}

// All returns the current members in stable order.
func (s *Synchronizer) All() []listings.ListingID {
	s.mu.Lock()
	ids := make([]listings.ListingID, 0, len(s.entries))
	for id, e := range s.entries {
		if e.member {
			ids = append(ids, id)
		}
	}
	s.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Synchronizer) entry(id listings.ListingID) *entry {
	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	return e
}

func classify(err error) error {
	if fault.KindOf(err) != fault.Unknown {
		return err
	}
	return fault.Wrap(fault.Transient, err)
}
