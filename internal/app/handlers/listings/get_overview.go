package listings

import (
	"context"
	"time"

	"stayhub/internal/app/dto"
	handlersupport "stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
)

const getOverviewKey = "listings.overview"

type GetOverviewQuery struct {
	ListingID string
	Favorited bool
	Now       time.Time
}

func (q GetOverviewQuery) Key() string { return getOverviewKey }

// GetOverviewHandler loads one listing's detail page payload, including the
// window the date picker may offer.
type GetOverviewHandler struct {
	UoWFactory uow.Factory
}

func (h *GetOverviewHandler) Handle(ctx context.Context, q GetOverviewQuery) (dto.ListingOverview, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ListingOverview{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	listing, err := unit.Listings().ByID(execCtx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.ListingOverview{}, err
	}
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	return dto.MapListingOverview(listing, now, q.Favorited), nil
}

var _ queries.Handler[GetOverviewQuery, dto.ListingOverview] = (*GetOverviewHandler)(nil)
