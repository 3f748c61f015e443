package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"stayhub/internal/app/dto"
	meapp "stayhub/internal/app/handlers/me"
	"stayhub/internal/app/queries"
	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
)

// MeHandler serves the signed-in guest's own data.
type MeHandler struct {
	Queries queries.Bus
	Wallets domainwallet.Repository
}

func (h MeHandler) ListBookings(c *gin.Context) {
	user, ok := requireAuth(c)
	if !ok {
		return
	}
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	result, err := queries.Ask[meapp.ListGuestBookingsQuery, dto.GuestBookingCollection](
		c.Request.Context(), h.Queries, meapp.ListGuestBookingsQuery{GuestID: user.ID})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Wallet returns the guest's balance and recent transactions. A guest without
// a wallet yet sees an empty summary, not an error.
func (h MeHandler) Wallet(c *gin.Context) {
	user, ok := requireAuth(c)
	if !ok {
		return
	}
	if h.Wallets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "wallets unavailable"})
		return
	}
	wallet, err := h.Wallets.ByOwner(c.Request.Context(), domainuser.ID(user.ID))
	if err != nil {
		if errors.Is(err, domainwallet.ErrNotFound) {
			c.JSON(http.StatusOK, dto.WalletSummary{Transactions: []dto.WalletTransaction{}})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapWallet(wallet))
}

var _ MeHTTP = MeHandler{}
