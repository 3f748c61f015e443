package booking

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/pricing"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/events"
	"stayhub/internal/domain/shared/money"
)

var (
	ErrNotFound      = errors.New("booking: not found")
	ErrGuestRequired = errors.New("booking: guest id required")
	ErrTotalRequired = errors.New("booking: total must be derived from a quote")
)

type BookingID string

type Status string

// Bookings are created pending; host acceptance and later transitions are
// driven by other services consuming the outbox events.
const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

type PaymentMethod string

const (
	PayWithWallet PaymentMethod = "wallet"
	PayWithCard   PaymentMethod = "card"
)

type Booking struct {
	ID        BookingID
	ListingID listings.ListingID
	HostID    listings.HostID
	GuestID   string
	Stay      daterange.Stay
	Guests    int
	Nights    int
	Total     money.Money

	PromoCode       string
	PromoApplied    bool
	DiscountPercent int

	PaymentMethod PaymentMethod
	Paid          bool
	PaymentRef    string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	ListByGuest(ctx context.Context, guestID string) ([]*Booking, error)
}

type CreateParams struct {
	ID            BookingID
	ListingID     listings.ListingID
	HostID        listings.HostID
	GuestID       string
	Stay          daterange.Stay
	Guests        int
	Quote         pricing.Quote
	PromoCode     string
	PromoApplied  bool
	PaymentMethod PaymentMethod
	Paid          bool
	PaymentRef    string
	CreatedAt     time.Time
}

// New builds a pending booking from an already-validated submission and a
// computed quote. It never recomputes the price.
func New(params CreateParams) (*Booking, error) {
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	if params.Guests < 1 {
		return nil, ErrGuestCount
	}
	if !params.Stay.Complete() {
		return nil, ErrStayIncomplete
	}
	if params.Quote.Nights <= 0 || !params.Quote.Total.Defined() {
		return nil, ErrTotalRequired
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:              params.ID,
		ListingID:       params.ListingID,
		HostID:          params.HostID,
		GuestID:         params.GuestID,
		Stay:            params.Stay,
		Guests:          params.Guests,
		Nights:          params.Quote.Nights,
		Total:           params.Quote.Total,
		PromoCode:       params.PromoCode,
		PromoApplied:    params.PromoApplied,
		DiscountPercent: params.Quote.DiscountPercent,
		PaymentMethod:   params.PaymentMethod,
		Paid:            params.Paid,
		PaymentRef:      params.PaymentRef,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	b.Record(BookingRequested{
		BookingID: b.ID,
		ListingID: b.ListingID,
		GuestID:   b.GuestID,
		Stay:      b.Stay,
		Guests:    b.Guests,
		Total:     b.Total,
		At:        now,
	})
	return b, nil
}

func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return errors.New("booking: only pending bookings can be confirmed")
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, ListingID: b.ListingID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	switch b.Status {
	case StatusPending, StatusConfirmed:
	default:
		return errors.New("booking: cannot cancel in state " + string(b.Status))
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, Reason: reason, At: b.UpdatedAt})
	return nil
}
