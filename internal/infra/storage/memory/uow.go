package memory

import (
	"context"

	"stayhub/internal/app/uow"
	domainbooking "stayhub/internal/domain/booking"
	domainfavorites "stayhub/internal/domain/favorites"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
)

// Factory hands out units over the shared in-memory stores. There is no real
// transaction boundary; writes apply immediately and the optimistic version
// guard in each store provides the isolation the handlers rely on.
type Factory struct {
	ListingsRepo  *ListingRepository
	BookingsRepo  *BookingRepository
	UsersRepo     *UserRepository
	WalletsRepo   *WalletStore
	FavoritesRepo *FavoritesStore
}

func NewFactory() *Factory {
	return &Factory{
		ListingsRepo:  NewListingRepository(),
		BookingsRepo:  NewBookingRepository(),
		UsersRepo:     NewUserRepository(),
		WalletsRepo:   NewWalletStore(),
		FavoritesRepo: NewFavoritesStore(),
	}
}

func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	return &Unit{factory: f}, nil
}

type Unit struct {
	factory *Factory
}

func (u *Unit) Listings() domainlistings.Repository    { return u.factory.ListingsRepo }
func (u *Unit) Bookings() domainbooking.Repository     { return u.factory.BookingsRepo }
func (u *Unit) Users() domainuser.Repository           { return u.factory.UsersRepo }
func (u *Unit) Wallets() domainwallet.Repository       { return u.factory.WalletsRepo }
func (u *Unit) Favorites() domainfavorites.RemoteStore { return u.factory.FavoritesRepo }

func (u *Unit) Commit(ctx context.Context) error   { return nil }
func (u *Unit) Rollback(ctx context.Context) error { return nil }
