package booking

import (
	"time"

	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
)

// Submission failures are validation errors surfaced inline, never silent
// corrections.
var (
	ErrDatesMissing   = fault.New(fault.Validation, "booking: check-in and check-out are required")
	ErrStayIncomplete = fault.New(fault.Validation, "booking: check-out must be after check-in")
	ErrRateMissing    = fault.New(fault.Validation, "booking: listing has no nightly rate")
	ErrGuestCount     = fault.New(fault.Validation, "booking: guest count must be at least 1")
	ErrOutsideWindow  = fault.New(fault.Validation, "booking: dates are outside the bookable window")
)

// ValidateSubmission gates a booking request before any quote or payment.
func ValidateSubmission(listing *listings.Listing, stay daterange.Stay, guests int, now time.Time) error {
	if !stay.HasCheckIn() || !stay.HasCheckOut() {
		return ErrDatesMissing
	}
	if !stay.Complete() {
		return ErrStayIncomplete
	}
	if !listing.HasRate() {
		return ErrRateMissing
	}
	if guests < 1 {
		return ErrGuestCount
	}
	if !listing.WithinWindow(stay, now) {
		return ErrOutsideWindow
	}
	return nil
}
