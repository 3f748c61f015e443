package pricing

import (
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
)

// ErrQuoteUndefined blocks the booking flow instead of silently showing zero.
var ErrQuoteUndefined = fault.New(fault.QuoteUndefined, "pricing: quote cannot be derived")

// QuoteInput carries already-fetched listing data; Compute is pure.
type QuoteInput struct {
	Rate            money.Money
	Stay            daterange.Stay
	DiscountPercent int
	PromoApplied    bool
}

// Quote is the derived price for a stay, never persisted by this package.
type Quote struct {
	Nights          int
	Subtotal        money.Money
	DiscountPercent int
	DiscountAmount  money.Money
	Total           money.Money
}

// Compute derives nights, subtotal, discount and total. The discount percent
// only takes effect when the promo was applied; the discount amount rounds
// half-up to the nearest currency unit and the total never goes negative.
func Compute(input QuoteInput) (Quote, error) {
	nights := input.Stay.Nights()
	if nights <= 0 {
		return Quote{}, ErrQuoteUndefined
	}
	if !input.Rate.Defined() || input.Rate.Amount < 0 {
		return Quote{}, ErrQuoteUndefined
	}

	pct := 0
	if input.PromoApplied {
		pct = input.DiscountPercent
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
	}

	subtotal := input.Rate.Multiply(int64(nights))
	discount := subtotal.Percent(pct)
	total, err := subtotal.Sub(discount)
	if err != nil {
		return Quote{}, err
	}

	return Quote{
		Nights:          nights,
		Subtotal:        subtotal,
		DiscountPercent: pct,
		DiscountAmount:  discount,
		Total:           total.FloorZero(),
	}, nil
}
