package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayhub/internal/app/uow"
	domainbooking "stayhub/internal/domain/booking"
	domainfavorites "stayhub/internal/domain/favorites"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
)

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	ListingsRepo  domainlistings.Repository
	BookingsRepo  domainbooking.Repository
	UsersRepo     domainuser.Repository
	WalletsRepo   domainwallet.Repository
	FavoritesRepo domainfavorites.RemoteStore
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().
		SetReadConcern(f.DB.ReadConcern()).
		SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		session:   session,
		listings:  f.ListingsRepo,
		bookings:  f.BookingsRepo,
		users:     f.UsersRepo,
		wallets:   f.WalletsRepo,
		favorites: f.FavoritesRepo,
	}, nil
}

type Unit struct {
	session mongo.Session

	listings  domainlistings.Repository
	bookings  domainbooking.Repository
	users     domainuser.Repository
	wallets   domainwallet.Repository
	favorites domainfavorites.RemoteStore
}

func (u *Unit) Listings() domainlistings.Repository    { return u.listings }
func (u *Unit) Bookings() domainbooking.Repository     { return u.bookings }
func (u *Unit) Users() domainuser.Repository           { return u.users }
func (u *Unit) Wallets() domainwallet.Repository       { return u.wallets }
func (u *Unit) Favorites() domainfavorites.RemoteStore { return u.favorites }

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext makes the Mongo session visible to downstream repositories.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
