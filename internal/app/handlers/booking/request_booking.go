package booking

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/app/commands"
	"stayhub/internal/app/middleware"
	"stayhub/internal/app/outbox"
	"stayhub/internal/app/policies"
	"stayhub/internal/app/uow"
	domainbooking "stayhub/internal/domain/booking"
	domainlistings "stayhub/internal/domain/listings"
	domainpricing "stayhub/internal/domain/pricing"
	"stayhub/internal/domain/shared/daterange"
	domainuser "stayhub/internal/domain/user"
)

const requestBookingKey = "booking.request"

// RequestBookingCommand carries the submitted booking form. The promo code is
// re-validated here; a client-side "applied" flag is never trusted.
type RequestBookingCommand struct {
	CommandID       string
	ListingID       string
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	PromoCode       string
	PaymentMethod   string
	IdempotencyKeyV string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &RequestBookingResult{} }

type RequestBookingResult struct {
	BookingID string `json:"booking_id"`
	Total     int64  `json:"total"`
	Currency  string `json:"currency"`
	Paid      bool   `json:"paid"`
}

type RequestBookingHandler struct {
	UoWFactory uow.Factory
	Cards      policies.CardProcessor
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

var (
	ErrUnitOfWorkRequired   = errors.New("booking: unit of work required")
	ErrPaymentMethodUnknown = errors.New("booking: unknown payment method")
	ErrCardsUnavailable     = errors.New("booking: card processor unavailable")
)

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkRequired
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	method, err := parsePaymentMethod(cmd.PaymentMethod)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stay := daterange.Partial(cmd.CheckIn, cmd.CheckOut)

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if err := domainbooking.ValidateSubmission(listing, stay, cmd.Guests, now); err != nil {
		return nil, err
	}
	guests := listing.ClampGuests(cmd.Guests)

	applied := false
	if cmd.PromoCode != "" {
		applied = domainpricing.ValidatePromo(listing.PromoCode, cmd.PromoCode).Applied()
	}

	quote, err := domainpricing.Compute(domainpricing.QuoteInput{
		Rate:            listing.NightlyRate,
		Stay:            stay,
		DiscountPercent: listing.DiscountPercent,
		PromoApplied:    applied,
	})
	if err != nil {
		return nil, err
	}

	paid := false
	paymentRef := ""
	switch method {
	case domainbooking.PayWithWallet:
		wallet, err := unit.Wallets().ByOwner(ctx, domainuser.ID(cmd.GuestID))
		if err != nil {
			return nil, err
		}
		if err := wallet.Debit(quote.Total, cmd.CommandID, now); err != nil {
			return nil, err
		}
		if err := unit.Wallets().Save(ctx, wallet); err != nil {
			return nil, err
		}
		paid = true
		paymentRef = "wallet:" + cmd.CommandID
	case domainbooking.PayWithCard:
		if h.Cards == nil {
			return nil, ErrCardsUnavailable
		}
		holdID, err := h.Cards.PlaceHold(ctx, cmd.CommandID, quote.Total)
		if err != nil {
			return nil, err
		}
		if err := h.Cards.Capture(ctx, holdID); err != nil {
			return nil, err
		}
		paid = true
		paymentRef = holdID
	}

	booking, err := domainbooking.New(domainbooking.CreateParams{
		ID:            domainbooking.BookingID(cmd.CommandID),
		ListingID:     listing.ID,
		HostID:        listing.Host,
		GuestID:       cmd.GuestID,
		Stay:          stay,
		Guests:        guests,
		Quote:         quote,
		PromoCode:     cmd.PromoCode,
		PromoApplied:  applied,
		PaymentMethod: method,
		Paid:          paid,
		PaymentRef:    paymentRef,
		CreatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, booking); err != nil {
		return nil, err
	}

	pending := booking.PendingEvents()
	booking.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &RequestBookingResult{
		BookingID: string(booking.ID),
		Total:     booking.Total.Amount,
		Currency:  booking.Total.Currency,
		Paid:      booking.Paid,
	}, nil
}

func (h *RequestBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func parsePaymentMethod(raw string) (domainbooking.PaymentMethod, error) {
	switch domainbooking.PaymentMethod(raw) {
	case domainbooking.PayWithWallet, "":
		return domainbooking.PayWithWallet, nil
	case domainbooking.PayWithCard:
		return domainbooking.PayWithCard, nil
	default:
		return "", ErrPaymentMethodUnknown
	}
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = RequestBookingCommand{}
