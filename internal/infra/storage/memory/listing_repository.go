package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	domainlistings "stayhub/internal/domain/listings"
)

// ErrConcurrentUpdate mirrors the optimistic version guard of the durable
// stores so handler behavior is identical in local mode.
var ErrConcurrentUpdate = errors.New("memory: concurrent update")

type ListingRepository struct {
	mu       sync.RWMutex
	listings map[domainlistings.ListingID]domainlistings.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{listings: make(map[domainlistings.ListingID]domainlistings.Listing)}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	listing, ok := r.listings[id]
	if !ok {
		return nil, domainlistings.ErrNotFound
	}
	copied := listing
	return &copied, nil
}

func (r *ListingRepository) Search(ctx context.Context, params domainlistings.SearchParams) (domainlistings.SearchResult, error) {
	params = params.Normalized()

	r.mu.RLock()
	matched := make([]*domainlistings.Listing, 0, len(r.listings))
	for _, listing := range r.listings {
		if matches(listing, params) {
			copied := listing
			matched = append(matched, &copied)
		}
	}
	r.mu.RUnlock()

	sortListings(matched, params.Sort)

	total := len(matched)
	start := params.Offset
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}
	return domainlistings.SearchResult{Items: matched[start:end], Total: total}, nil
}

func (r *ListingRepository) Save(ctx context.Context, listing *domainlistings.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.listings[listing.ID]
	if ok && current.Version != listing.Version {
		return ErrConcurrentUpdate
	}
	listing.Version++
	r.listings[listing.ID] = *listing
	return nil
}

func matches(l domainlistings.Listing, p domainlistings.SearchParams) bool {
	if p.OnlyActive && l.Status != domainlistings.StatusActive {
		return false
	}
	if p.City != "" && !strings.EqualFold(l.City, p.City) {
		return false
	}
	if p.Country != "" && !strings.EqualFold(l.Country, p.Country) {
		return false
	}
	if p.Category != "" && strings.ToLower(l.Category) != p.Category {
		return false
	}
	if p.MinGuests > 0 && l.GuestsLimit > 0 && l.GuestsLimit < p.MinGuests {
		return false
	}
	if p.PriceMin > 0 && (!l.NightlyRate.Defined() || l.NightlyRate.Amount < p.PriceMin) {
		return false
	}
	if p.PriceMax > 0 && (!l.NightlyRate.Defined() || l.NightlyRate.Amount > p.PriceMax) {
		return false
	}
	return true
}

func sortListings(items []*domainlistings.Listing, by domainlistings.CatalogSort) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch by {
		case domainlistings.SortByPriceAsc:
			return a.NightlyRate.Amount < b.NightlyRate.Amount
		case domainlistings.SortByPriceDesc:
			return a.NightlyRate.Amount > b.NightlyRate.Amount
		case domainlistings.SortByNewest:
			return a.CreatedAt.After(b.CreatedAt)
		default:
			return a.Rating > b.Rating
		}
	})
}
