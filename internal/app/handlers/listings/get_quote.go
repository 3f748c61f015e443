package listings

import (
	"context"
	"time"

	"stayhub/internal/app/dto"
	handlersupport "stayhub/internal/app/handlers/support"
	"stayhub/internal/app/queries"
	"stayhub/internal/app/uow"
	domainlistings "stayhub/internal/domain/listings"
	domainpricing "stayhub/internal/domain/pricing"
	"stayhub/internal/domain/shared/daterange"
)

const getQuoteKey = "listings.quote"

// GetQuoteQuery prices a stay for a listing. Dates may be partial; the quote
// is then undefined and the caller receives ErrQuoteUndefined rather than a
// zero total. The promo code is re-validated on every call.
type GetQuoteQuery struct {
	ListingID string
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
	PromoCode string
	Now       time.Time
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

type GetQuoteHandler struct {
	UoWFactory uow.Factory
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.QuoteBreakdown, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.QuoteBreakdown{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	listing, err := unit.Listings().ByID(execCtx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.QuoteBreakdown{}, err
	}

	stay := daterange.Partial(q.CheckIn, q.CheckOut)

	var promo *domainpricing.PromoOutcome
	applied := false
	if q.PromoCode != "" {
		outcome := domainpricing.ValidatePromo(listing.PromoCode, q.PromoCode)
		promo = &outcome
		applied = outcome.Applied()
	}

	quote, err := domainpricing.Compute(domainpricing.QuoteInput{
		Rate:            listing.NightlyRate,
		Stay:            stay,
		DiscountPercent: listing.DiscountPercent,
		PromoApplied:    applied,
	})
	if err != nil {
		return dto.QuoteBreakdown{}, err
	}

	return dto.MapQuote(quote, promo), nil
}

var _ queries.Handler[GetQuoteQuery, dto.QuoteBreakdown] = (*GetQuoteHandler)(nil)
