package listings

import "strings"

type CatalogSort string

const (
	SortByRating    CatalogSort = "rating"
	SortByPriceAsc  CatalogSort = "price_asc"
	SortByPriceDesc CatalogSort = "price_desc"
	SortByNewest    CatalogSort = "newest"
)

const (
	defaultLimit = 24
	maxLimit     = 100
)

// SearchParams filter the catalog: status, category and guest capacity per
// the listing store contract, plus the price band and paging the views use.
type SearchParams struct {
	City       string
	Country    string
	Category   string
	MinGuests  int
	PriceMin   int64
	PriceMax   int64
	OnlyActive bool
	Sort       CatalogSort
	Limit      int
	Offset     int
}

type SearchResult struct {
	Items []*Listing
	Total int
}

// Normalized trims filters and bounds paging.
func (p SearchParams) Normalized() SearchParams {
	out := p
	out.City = strings.TrimSpace(p.City)
	out.Country = strings.TrimSpace(p.Country)
	out.Category = strings.ToLower(strings.TrimSpace(p.Category))
	if out.MinGuests < 0 {
		out.MinGuests = 0
	}
	if out.PriceMin < 0 {
		out.PriceMin = 0
	}
	if out.PriceMax < 0 {
		out.PriceMax = 0
	}
	if out.Limit <= 0 {
		out.Limit = defaultLimit
	}
	if out.Limit > maxLimit {
		out.Limit = maxLimit
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	switch out.Sort {
	case SortByRating, SortByPriceAsc, SortByPriceDesc, SortByNewest:
	default:
		out.Sort = SortByRating
	}
	return out
}
