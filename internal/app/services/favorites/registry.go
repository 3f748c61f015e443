package favorites

import (
	"context"
	"log/slog"
	"sync"

	domainfavorites "stayhub/internal/domain/favorites"
	domainuser "stayhub/internal/domain/user"
)

// Registry hands out one favorites synchronizer per session. Authenticated
// users get a remote-backed synchronizer hydrated on first use; anonymous
// visitors get a session-local one keyed by their guest session id. Dropping
// a guest entry discards its set; it is never merged into an account.
type Registry struct {
	store  domainfavorites.RemoteStore
	logger *slog.Logger

	mu     sync.Mutex
	users  map[domainuser.ID]*domainfavorites.Synchronizer
	guests map[string]*domainfavorites.Synchronizer
}

func NewRegistry(store domainfavorites.RemoteStore, logger *slog.Logger) *Registry {
	return &Registry{
		store:  store,
		logger: logger,
		users:  make(map[domainuser.ID]*domainfavorites.Synchronizer),
		guests: make(map[string]*domainfavorites.Synchronizer),
	}
}

// ForUser returns the user's synchronizer, hydrating it from the remote set
// the first time. A failed hydration still returns a usable synchronizer;
// the next call retries.
func (r *Registry) ForUser(ctx context.Context, userID domainuser.ID) (*domainfavorites.Synchronizer, error) {
	r.mu.Lock()
	s, ok := r.users[userID]
	if !ok {
		s = domainfavorites.NewSynchronizer(r.store, string(userID))
		r.users[userID] = s
	}
	r.mu.Unlock()
	if !ok {
		if err := s.Hydrate(ctx); err != nil {
			r.mu.Lock()
			delete(r.users, userID)
			r.mu.Unlock()
			if r.logger != nil {
				r.logger.Warn("favorites hydration failed", "user_id", userID, "error", err)
			}
			return s, err
		}
	}
	return s, nil
}

// ForGuest returns the session-local synchronizer for an anonymous visitor.
func (r *Registry) ForGuest(sessionID string) *domainfavorites.Synchronizer {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.guests[sessionID]
	if !ok {
		s = domainfavorites.NewLocal()
		r.guests[sessionID] = s
	}
	return s
}

// DropUser forgets the cached synchronizer, forcing a re-hydration next time.
func (r *Registry) DropUser(userID domainuser.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
}

// DropGuest discards an anonymous session's local set.
func (r *Registry) DropGuest(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.guests, sessionID)
}
