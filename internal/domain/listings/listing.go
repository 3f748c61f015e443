package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

var (
	ErrNotFound        = errors.New("listings: not found")
	ErrTitleRequired   = errors.New("listings: title is required")
	ErrHostRequired    = errors.New("listings: host is required")
	ErrNegativeRate    = errors.New("listings: nightly rate must be non-negative")
	ErrDiscountPercent = errors.New("listings: discount percent must be between 0 and 100")
	ErrGuestsLimit     = errors.New("listings: guests limit must be positive when set")
)

type ListingID string
type HostID string

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// Listing is the customer-facing read model: enough to browse, price a stay
// and open a conversation. Host-side editing happens elsewhere.
type Listing struct {
	ID          ListingID
	Host        HostID
	Title       string
	Description string
	City        string
	Country     string
	Category    string

	NightlyRate     money.Money // undefined currency = rate unknown, quote blocked
	DiscountPercent int         // 0..100, unlocked by the promo code
	PromoCode       string      // at most one active code, "" = none configured

	GuestsLimit    int       // 0 = unlimited
	AvailableFrom  time.Time // zero = bookable immediately
	AvailableUntil time.Time // zero = unbounded

	Amenities    []string
	ThumbnailURL string
	Rating       float64
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int64
}

// Repository is the listing store contract (fetch-by-id, fetch-by-filter).
type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
	Save(ctx context.Context, listing *Listing) error
}

type CreateParams struct {
	ID              ListingID
	Host            HostID
	Title           string
	Description     string
	City            string
	Country         string
	Category        string
	NightlyRate     money.Money
	DiscountPercent int
	PromoCode       string
	GuestsLimit     int
	AvailableFrom   time.Time
	AvailableUntil  time.Time
	Amenities       []string
	ThumbnailURL    string
	Rating          float64
	Now             time.Time
}

func New(params CreateParams) (*Listing, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("listings: id is required")
	}
	if strings.TrimSpace(string(params.Host)) == "" {
		return nil, ErrHostRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.NightlyRate.Defined() && params.NightlyRate.Amount < 0 {
		return nil, ErrNegativeRate
	}
	if params.DiscountPercent < 0 || params.DiscountPercent > 100 {
		return nil, ErrDiscountPercent
	}
	if params.GuestsLimit < 0 {
		return nil, ErrGuestsLimit
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Listing{
		ID:              params.ID,
		Host:            params.Host,
		Title:           strings.TrimSpace(params.Title),
		Description:     params.Description,
		City:            params.City,
		Country:         params.Country,
		Category:        params.Category,
		NightlyRate:     params.NightlyRate,
		DiscountPercent: params.DiscountPercent,
		PromoCode:       strings.TrimSpace(params.PromoCode),
		GuestsLimit:     params.GuestsLimit,
		AvailableFrom:   params.AvailableFrom,
		AvailableUntil:  params.AvailableUntil,
		Amenities:       append([]string(nil), params.Amenities...),
		ThumbnailURL:    params.ThumbnailURL,
		Rating:          params.Rating,
		Status:          StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// HasRate reports whether a nightly rate is known for this listing.
func (l *Listing) HasRate() bool {
	return l.NightlyRate.Defined()
}

// SelectableWindow bounds the date picker: the earliest selectable day is
// max(today, AvailableFrom); the latest is AvailableUntil when set.
func (l *Listing) SelectableWindow(now time.Time) (from time.Time, until time.Time, bounded bool) {
	from = daterange.Day(now)
	if !l.AvailableFrom.IsZero() && l.AvailableFrom.After(from) {
		from = daterange.Day(l.AvailableFrom)
	}
	if l.AvailableUntil.IsZero() {
		return from, time.Time{}, false
	}
	return from, daterange.Day(l.AvailableUntil), true
}

// WithinWindow reports whether a complete stay fits the selectable window.
func (l *Listing) WithinWindow(stay daterange.Stay, now time.Time) bool {
	if !stay.Complete() {
		return false
	}
	from, until, bounded := l.SelectableWindow(now)
	if daterange.Day(stay.CheckIn).Before(from) {
		return false
	}
	if bounded && daterange.Day(stay.CheckOut).After(until) {
		return false
	}
	return true
}

// ClampGuests forces a requested guest count into [1, GuestsLimit].
func (l *Listing) ClampGuests(requested int) int {
	if requested < 1 {
		return 1
	}
	if l.GuestsLimit > 0 && requested > l.GuestsLimit {
		return l.GuestsLimit
	}
	return requested
}

// Suspend takes the listing out of the catalog.
func (l *Listing) Suspend(now time.Time) {
	l.Status = StatusSuspended
	l.UpdatedAt = now.UTC()
}
