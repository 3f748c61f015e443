package uow

import (
	"context"

	domainbooking "stayhub/internal/domain/booking"
	domainfavorites "stayhub/internal/domain/favorites"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
)

// UnitOfWork coordinates the repositories taking part in one transaction.
type UnitOfWork interface {
	Listings() domainlistings.Repository
	Bookings() domainbooking.Repository
	Users() domainuser.Repository
	Wallets() domainwallet.Repository
	Favorites() domainfavorites.RemoteStore

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure the transaction boundary.
type TxOptions struct {
	ReadOnly bool
}
