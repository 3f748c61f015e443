package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	favoritesapp "stayhub/internal/app/services/favorites"
	domainfavorites "stayhub/internal/domain/favorites"
	domainlistings "stayhub/internal/domain/listings"
	domainuser "stayhub/internal/domain/user"
)

// FavoritesHandler exposes the per-session favorite set. Anonymous visitors
// get a session-local set identified by a guest cookie; it is discarded with
// the session and never merged into an account.
type FavoritesHandler struct {
	Registry *favoritesapp.Registry
}

// Toggle flips one listing's membership and returns the resulting state. The
// response reflects the optimistic local state; on remote failure the flip is
// already rolled back and the error kind says why.
func (h FavoritesHandler) Toggle(c *gin.Context) {
	if h.Registry == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "favorites unavailable"})
		return
	}
	listingID := domainlistings.ListingID(c.Param("listingID"))
	if listingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing id is required"})
		return
	}
	s := h.synchronizer(c)
	favorited, err := s.Toggle(c.Request.Context(), listingID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":     err.Error(),
			"favorited": favorited,
		})
		return
	}
	c.JSON(http.StatusOK, dto.MapFavoriteState(string(listingID), s.State(listingID)))
}

// List returns the session's current favorite set.
func (h FavoritesHandler) List(c *gin.Context) {
	if h.Registry == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "favorites unavailable"})
		return
	}
	s := h.synchronizer(c)
	ids := s.All()
	items := make([]dto.FavoriteState, 0, len(ids))
	for _, id := range ids {
		items = append(items, dto.MapFavoriteState(string(id), s.State(id)))
	}
	c.JSON(http.StatusOK, dto.FavoriteCollection{Items: items})
}

func (h FavoritesHandler) synchronizer(c *gin.Context) *domainfavorites.Synchronizer {
	if p, ok := currentPrincipal(c); ok {
		s, _ := h.Registry.ForUser(c.Request.Context(), domainuser.ID(p.ID))
		return s
	}
	return h.Registry.ForGuest(guestSessionID(c))
}

var _ FavoritesHTTP = FavoritesHandler{}
