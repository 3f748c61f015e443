package policies

import (
	"context"

	"stayhub/internal/domain/shared/money"
)

// CardProcessor fronts the external card payment provider. Capture failures
// surface to the guest as payment faults; the booking is not created.
type CardProcessor interface {
	PlaceHold(ctx context.Context, bookingID string, amount money.Money) (string, error)
	Capture(ctx context.Context, holdID string) error
	Refund(ctx context.Context, bookingID string, amount money.Money) error
}
