package dto

import (
	domainpricing "stayhub/internal/domain/pricing"
	"stayhub/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{Amount: value.Amount, Currency: value.Currency}
}

func optionalMoney(value money.Money) *MoneyDTO {
	if !value.Defined() {
		return nil
	}
	m := MapMoney(value)
	return &m
}

// PromoStatus reflects the outcome of promo validation for the UI.
type PromoStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// QuoteBreakdown is the live price summary for a selected stay.
type QuoteBreakdown struct {
	Nights          int          `json:"nights"`
	Subtotal        MoneyDTO     `json:"subtotal"`
	DiscountPercent int          `json:"discount_percent"`
	DiscountAmount  MoneyDTO     `json:"discount_amount"`
	Total           MoneyDTO     `json:"total"`
	Promo           *PromoStatus `json:"promo,omitempty"`
}

func MapQuote(quote domainpricing.Quote, promo *domainpricing.PromoOutcome) QuoteBreakdown {
	out := QuoteBreakdown{
		Nights:          quote.Nights,
		Subtotal:        MapMoney(quote.Subtotal),
		DiscountPercent: quote.DiscountPercent,
		DiscountAmount:  MapMoney(quote.DiscountAmount),
		Total:           MapMoney(quote.Total),
	}
	if promo != nil {
		out.Promo = &PromoStatus{
			Status:  promoStatusName(*promo),
			Message: promo.Message(),
		}
	}
	return out
}

func promoStatusName(outcome domainpricing.PromoOutcome) string {
	switch outcome {
	case domainpricing.PromoApplied:
		return "applied"
	case domainpricing.PromoRejected:
		return "rejected"
	case domainpricing.PromoEmpty:
		return "empty"
	case domainpricing.PromoNotConfigured:
		return "not_configured"
	default:
		return "unknown"
	}
}
