package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	domainbooking "stayhub/internal/domain/booking"
	domainchat "stayhub/internal/domain/chat"
	domainlistings "stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/fault"
	domainuser "stayhub/internal/domain/user"
	domainwallet "stayhub/internal/domain/wallet"
)

// statusFor maps failure classifications to HTTP statuses. Not-found cases
// are matched explicitly because the domain packages classify them as
// validation failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainlistings.ErrNotFound),
		errors.Is(err, domainbooking.ErrNotFound),
		errors.Is(err, domainuser.ErrNotFound),
		errors.Is(err, domainwallet.ErrNotFound),
		errors.Is(err, domainchat.ErrNotFound):
		return http.StatusNotFound
	}
	switch fault.KindOf(err) {
	case fault.Validation:
		return http.StatusBadRequest
	case fault.PermissionDenied:
		return http.StatusForbidden
	case fault.Payment:
		return http.StatusPaymentRequired
	case fault.QuoteUndefined:
		return http.StatusUnprocessableEntity
	case fault.Transient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": err.Error(),
		"kind":  fault.KindOf(err).String(),
	})
}
