package dto

import (
	"time"

	domainlistings "stayhub/internal/domain/listings"
)

// ListingCatalog is a paginated collection of listings.
type ListingCatalog struct {
	Items   []ListingCard   `json:"items"`
	Filters CatalogFilters  `json:"filters"`
	Meta    CatalogMetadata `json:"meta"`
}

// ListingCard is a lightweight representation for catalog cards.
type ListingCard struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	Category     string    `json:"category"`
	NightlyRate  *MoneyDTO `json:"nightly_rate,omitempty"`
	GuestsLimit  int       `json:"guests_limit"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Rating       float64   `json:"rating"`
	Favorited    bool      `json:"favorited"`
}

// CatalogFilters echoes back the applied filters.
type CatalogFilters struct {
	City      string `json:"city"`
	Country   string `json:"country"`
	Category  string `json:"category"`
	MinGuests int    `json:"min_guests"`
	PriceMin  int64  `json:"price_min"`
	PriceMax  int64  `json:"price_max"`
}

// CatalogMetadata describes pagination.
type CatalogMetadata struct {
	Total  int    `json:"total"`
	Count  int    `json:"count"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Sort   string `json:"sort"`
}

// ListingOverview is the full detail page payload. The configured promo code
// itself never leaves the server; only its existence does.
type ListingOverview struct {
	ID             string    `json:"id"`
	HostID         string    `json:"host_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	City           string    `json:"city"`
	Country        string    `json:"country"`
	Category       string    `json:"category"`
	NightlyRate    *MoneyDTO `json:"nightly_rate,omitempty"`
	GuestsLimit    int       `json:"guests_limit"`
	Amenities      []string  `json:"amenities"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	Rating         float64   `json:"rating"`
	HasPromo       bool      `json:"has_promo"`
	SelectableFrom time.Time `json:"selectable_from"`
	SelectableTo   time.Time `json:"selectable_to,omitempty"`
	Bounded        bool      `json:"bounded"`
	Favorited      bool      `json:"favorited"`
}

// MapCatalog builds a DTO collection from a search result.
func MapCatalog(result domainlistings.SearchResult, params domainlistings.SearchParams, favorited func(domainlistings.ListingID) bool) ListingCatalog {
	normalized := params.Normalized()
	items := make([]ListingCard, 0, len(result.Items))
	for _, listing := range result.Items {
		card := MapListingCard(listing)
		if favorited != nil {
			card.Favorited = favorited(listing.ID)
		}
		items = append(items, card)
	}
	return ListingCatalog{
		Items: items,
		Filters: CatalogFilters{
			City:      normalized.City,
			Country:   normalized.Country,
			Category:  normalized.Category,
			MinGuests: normalized.MinGuests,
			PriceMin:  normalized.PriceMin,
			PriceMax:  normalized.PriceMax,
		},
		Meta: CatalogMetadata{
			Total:  result.Total,
			Count:  len(items),
			Limit:  normalized.Limit,
			Offset: normalized.Offset,
			Sort:   string(normalized.Sort),
		},
	}
}

func MapListingCard(listing *domainlistings.Listing) ListingCard {
	if listing == nil {
		return ListingCard{}
	}
	return ListingCard{
		ID:           string(listing.ID),
		Title:        listing.Title,
		City:         listing.City,
		Country:      listing.Country,
		Category:     listing.Category,
		NightlyRate:  optionalMoney(listing.NightlyRate),
		GuestsLimit:  listing.GuestsLimit,
		ThumbnailURL: listing.ThumbnailURL,
		Rating:       listing.Rating,
	}
}

func MapListingOverview(listing *domainlistings.Listing, now time.Time, favorited bool) ListingOverview {
	if listing == nil {
		return ListingOverview{}
	}
	from, until, bounded := listing.SelectableWindow(now)
	return ListingOverview{
		ID:             string(listing.ID),
		HostID:         string(listing.Host),
		Title:          listing.Title,
		Description:    listing.Description,
		City:           listing.City,
		Country:        listing.Country,
		Category:       listing.Category,
		NightlyRate:    optionalMoney(listing.NightlyRate),
		GuestsLimit:    listing.GuestsLimit,
		Amenities:      append([]string(nil), listing.Amenities...),
		ThumbnailURL:   listing.ThumbnailURL,
		Rating:         listing.Rating,
		HasPromo:       listing.PromoCode != "",
		SelectableFrom: from,
		SelectableTo:   until,
		Bounded:        bounded,
		Favorited:      favorited,
	}
}
