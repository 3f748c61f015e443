package memory

import (
	"context"
	"sync"

	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
)

type WalletStore struct {
	mu      sync.RWMutex
	wallets map[domainuser.ID]domainwallet.Wallet
}

func NewWalletStore() *WalletStore {
	return &WalletStore{wallets: make(map[domainuser.ID]domainwallet.Wallet)}
}

func (s *WalletStore) ByOwner(ctx context.Context, ownerID domainuser.ID) (*domainwallet.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[ownerID]
	if !ok {
		return nil, domainwallet.ErrNotFound
	}
	copied := w
	copied.Transactions = append([]domainwallet.Transaction(nil), w.Transactions...)
	return &copied, nil
}

func (s *WalletStore) Save(ctx context.Context, w *domainwallet.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.wallets[w.OwnerID]
	if ok && current.Version != w.Version {
		return ErrConcurrentUpdate
	}
	w.Version++
	stored := *w
	stored.Transactions = append([]domainwallet.Transaction(nil), w.Transactions...)
	s.wallets[w.OwnerID] = stored
	return nil
}
