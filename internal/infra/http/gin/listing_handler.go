package ginserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	listingapp "stayhub/internal/app/handlers/listings"
	"stayhub/internal/app/queries"
	favoritesapp "stayhub/internal/app/services/favorites"
	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
	"stayhub/internal/infra/obs"
)

// ListingHandler wires the catalog, overview and quote queries to HTTP.
type ListingHandler struct {
	Queries   queries.Bus
	Favorites *favoritesapp.Registry
	Metrics   *obs.Metrics
}

// Catalog responds with a filtered, favorite-annotated page of listings.
func (h ListingHandler) Catalog(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	favorited := h.favoritePredicate(c)
	query := listingapp.SearchCatalogQuery{
		City:      c.Query("city"),
		Country:   c.Query("country"),
		Category:  c.Query("category"),
		MinGuests: parseInt(c.Query("min_guests")),
		PriceMin:  parseInt64(c.Query("price_min")),
		PriceMax:  parseInt64(c.Query("price_max")),
		Sort:      c.Query("sort"),
		Limit:     parseInt(c.Query("limit")),
		Offset:    parseInt(c.Query("offset")),
		Favorited: favorited,
	}
	result, err := queries.Ask[listingapp.SearchCatalogQuery, dto.ListingCatalog](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Overview(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	listingID := c.Param("id")
	if listingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing id is required"})
		return
	}
	favorited := h.favoritePredicate(c)
	query := listingapp.GetOverviewQuery{
		ListingID: listingID,
		Favorited: favorited(domainlistings.ListingID(listingID)),
	}
	result, err := queries.Ask[listingapp.GetOverviewQuery, dto.ListingOverview](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Quote prices a stay. Partial date selections are allowed and come back as a
// 422 so the widget can show "select dates" instead of a zero total.
func (h ListingHandler) Quote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "listing handler unavailable"})
		return
	}
	listingID := c.Param("id")
	if listingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing id is required"})
		return
	}
	checkIn, _ := parseFlexibleTime(c.Query("check_in"))
	checkOut, _ := parseFlexibleTime(c.Query("check_out"))
	query := listingapp.GetQuoteQuery{
		ListingID: listingID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    parseInt(c.Query("guests")),
		PromoCode: strings.TrimSpace(c.Query("promo_code")),
	}
	result, err := queries.Ask[listingapp.GetQuoteQuery, dto.QuoteBreakdown](c.Request.Context(), h.Queries, query)
	if err != nil {
		h.countQuote(quoteOutcome(err))
		respondError(c, err)
		return
	}
	h.countQuote("priced")
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) favoritePredicate(c *gin.Context) func(domainlistings.ListingID) bool {
	if h.Favorites == nil {
		return func(domainlistings.ListingID) bool { return false }
	}
	var s interface{ IsFavorite(domainlistings.ListingID) bool }
	if p, ok := currentPrincipal(c); ok {
		// Hydration failures degrade to "not favorited" instead of failing
		// the whole catalog request.
		s, _ = h.Favorites.ForUser(c.Request.Context(), domainuser.ID(p.ID))
	} else {
		s = h.Favorites.ForGuest(guestSessionID(c))
	}
	return s.IsFavorite
}

func (h ListingHandler) countQuote(outcome string) {
	if h.Metrics != nil {
		h.Metrics.CountQuote(outcome)
	}
}

func quoteOutcome(err error) string {
	if fault.Is(err, fault.QuoteUndefined) {
		return "undefined"
	}
	return "error"
}

var _ ListingHTTP = ListingHandler{}

func parseFlexibleTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func parseInt(raw string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(raw))
	if value < 0 {
		return 0
	}
	return value
}

func parseInt64(raw string) int64 {
	value, _ := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if value < 0 {
		return 0
	}
	return value
}
