package listings

import (
	"context"

	"stayhub/internal/app/dto"
	handlersupport "stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
)

const searchCatalogKey = "listings.catalog"

// SearchCatalogQuery describes request filters.
type SearchCatalogQuery struct {
	City      string
	Country   string
	Category  string
	MinGuests int
	PriceMin  int64
	PriceMax  int64
	Sort      string
	Limit     int
	Offset    int

	// Favorited marks catalog cards against the caller's favorite set.
	Favorited func(domainlistings.ListingID) bool
}

func (q SearchCatalogQuery) Key() string { return searchCatalogKey }

// SearchCatalogHandler loads active listings with applied filters.
type SearchCatalogHandler struct {
	UoWFactory uow.Factory
}

func (h *SearchCatalogHandler) Handle(ctx context.Context, q SearchCatalogQuery) (dto.ListingCatalog, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ListingCatalog{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	params := domainlistings.SearchParams{
		City:       q.City,
		Country:    q.Country,
		Category:   q.Category,
		MinGuests:  q.MinGuests,
		PriceMin:   q.PriceMin,
		PriceMax:   q.PriceMax,
		Sort:       domainlistings.CatalogSort(q.Sort),
		Limit:      q.Limit,
		Offset:     q.Offset,
		OnlyActive: true,
	}

	result, err := unit.Listings().Search(execCtx, params)
	if err != nil {
		return dto.ListingCatalog{}, err
	}

	return dto.MapCatalog(result, params, q.Favorited), nil
}

var _ queries.Handler[SearchCatalogQuery, dto.ListingCatalog] = (*SearchCatalogHandler)(nil)
