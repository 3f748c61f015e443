package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/money"
)

func seedCatalog(t *testing.T, repo *ListingRepository) {
	t.Helper()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seeds := []domainlistings.CreateParams{
		{ID: "lst-a", Host: "h1", Title: "A", City: "Riga", Country: "Latvia", Category: "apartment",
			NightlyRate: money.Must(8000, "EUR"), GuestsLimit: 4, Rating: 4.8, Now: base},
		{ID: "lst-b", Host: "h1", Title: "B", City: "Riga", Country: "Latvia", Category: "studio",
			NightlyRate: money.Must(5000, "EUR"), GuestsLimit: 2, Rating: 4.2, Now: base.Add(time.Hour)},
		{ID: "lst-c", Host: "h2", Title: "C", City: "Berlin", Country: "Germany", Category: "apartment",
			NightlyRate: money.Must(12000, "EUR"), GuestsLimit: 6, Rating: 4.9, Now: base.Add(2 * time.Hour)},
	}
	for _, seed := range seeds {
		listing, err := domainlistings.New(seed)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), listing))
	}
}

func TestSearchFiltersByCityAndCategory(t *testing.T) {
	repo := NewListingRepository()
	seedCatalog(t, repo)

	result, err := repo.Search(context.Background(), domainlistings.SearchParams{
		City: "riga", Category: "Apartment", OnlyActive: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, domainlistings.ListingID("lst-a"), result.Items[0].ID)
}

func TestSearchPriceBandAndSort(t *testing.T) {
	repo := NewListingRepository()
	seedCatalog(t, repo)

	result, err := repo.Search(context.Background(), domainlistings.SearchParams{
		PriceMin: 6000, Sort: domainlistings.SortByPriceAsc,
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, domainlistings.ListingID("lst-a"), result.Items[0].ID)
	assert.Equal(t, domainlistings.ListingID("lst-c"), result.Items[1].ID)
}

func TestSearchPagingReportsTotal(t *testing.T) {
	repo := NewListingRepository()
	seedCatalog(t, repo)

	result, err := repo.Search(context.Background(), domainlistings.SearchParams{
		Sort: domainlistings.SortByRating, Limit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	require.Len(t, result.Items, 2)
	assert.Equal(t, domainlistings.ListingID("lst-c"), result.Items[0].ID)

	page2, err := repo.Search(context.Background(), domainlistings.SearchParams{
		Sort: domainlistings.SortByRating, Limit: 2, Offset: 2,
	})
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.Equal(t, domainlistings.ListingID("lst-b"), page2.Items[0].ID)
}

func TestSearchExcludesSuspended(t *testing.T) {
	repo := NewListingRepository()
	seedCatalog(t, repo)

	listing, err := repo.ByID(context.Background(), "lst-a")
	require.NoError(t, err)
	listing.Suspend(time.Now())
	require.NoError(t, repo.Save(context.Background(), listing))

	result, err := repo.Search(context.Background(), domainlistings.SearchParams{OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
}

func TestSaveRejectsStaleVersion(t *testing.T) {
	repo := NewListingRepository()
	seedCatalog(t, repo)

	first, err := repo.ByID(context.Background(), "lst-a")
	require.NoError(t, err)
	second, err := repo.ByID(context.Background(), "lst-a")
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), first))
	require.ErrorIs(t, repo.Save(context.Background(), second), ErrConcurrentUpdate)
}
