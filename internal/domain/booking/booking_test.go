package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/listings"
	"stayhub/internal/domain/pricing"
	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
)

var testNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func testListing(t *testing.T) *listings.Listing {
	t.Helper()
	l, err := listings.New(listings.CreateParams{
		ID:          "lst-1",
		Host:        "host-1",
		Title:       "Beach house",
		NightlyRate: money.Must(2000, "USD"),
		GuestsLimit: 6,
		Now:         testNow,
	})
	require.NoError(t, err)
	return l
}

func completeStay(t *testing.T) daterange.Stay {
	t.Helper()
	s, err := daterange.New(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return s
}

func TestValidateSubmission(t *testing.T) {
	l := testListing(t)

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, ValidateSubmission(l, completeStay(t), 2, testNow))
	})

	t.Run("missing dates", func(t *testing.T) {
		err := ValidateSubmission(l, daterange.Stay{}, 2, testNow)
		require.ErrorIs(t, err, ErrDatesMissing)
		assert.True(t, fault.Is(err, fault.Validation))
	})

	t.Run("checkout equals checkin", func(t *testing.T) {
		day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		err := ValidateSubmission(l, daterange.Partial(day, day), 2, testNow)
		require.ErrorIs(t, err, ErrStayIncomplete)
	})

	t.Run("rate missing", func(t *testing.T) {
		noRate := *l
		noRate.NightlyRate = money.Money{}
		err := ValidateSubmission(&noRate, completeStay(t), 2, testNow)
		require.ErrorIs(t, err, ErrRateMissing)
	})

	t.Run("guest count below one", func(t *testing.T) {
		err := ValidateSubmission(l, completeStay(t), 0, testNow)
		require.ErrorIs(t, err, ErrGuestCount)
	})

	t.Run("before availability", func(t *testing.T) {
		windowed := *l
		windowed.AvailableFrom = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		err := ValidateSubmission(&windowed, completeStay(t), 2, testNow)
		require.ErrorIs(t, err, ErrOutsideWindow)
	})
}

func TestNewBookingRecordsEvent(t *testing.T) {
	quote, err := pricing.Compute(pricing.QuoteInput{
		Rate: money.Must(2000, "USD"),
		Stay: completeStay(t),
	})
	require.NoError(t, err)

	b, err := New(CreateParams{
		ID:            "bkg-1",
		ListingID:     "lst-1",
		HostID:        "host-1",
		GuestID:       "guest-1",
		Stay:          completeStay(t),
		Guests:        2,
		Quote:         quote,
		PaymentMethod: PayWithWallet,
		Paid:          true,
		CreatedAt:     testNow,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, int64(6000), b.Total.Amount)
	assert.True(t, b.Paid)

	evs := b.PendingEvents()
	require.Len(t, evs, 1)
	assert.Equal(t, "booking.requested", evs[0].EventName())
	assert.Equal(t, "bkg-1", evs[0].AggregateID())
}

func TestNewBookingRejectsMissingGuest(t *testing.T) {
	quote, _ := pricing.Compute(pricing.QuoteInput{Rate: money.Must(100, "USD"), Stay: completeStay(t)})
	_, err := New(CreateParams{ID: "b", ListingID: "l", Stay: completeStay(t), Guests: 1, Quote: quote, CreatedAt: testNow})
	require.ErrorIs(t, err, ErrGuestRequired)
}

func TestConfirmAndCancelTransitions(t *testing.T) {
	quote, _ := pricing.Compute(pricing.QuoteInput{Rate: money.Must(100, "USD"), Stay: completeStay(t)})
	b, err := New(CreateParams{
		ID: "b", ListingID: "l", HostID: "h", GuestID: "g",
		Stay: completeStay(t), Guests: 1, Quote: quote, CreatedAt: testNow,
	})
	require.NoError(t, err)

	require.NoError(t, b.Confirm(testNow))
	require.Error(t, b.Confirm(testNow))
	require.NoError(t, b.Cancel("guest request", testNow))
	require.Error(t, b.Cancel("again", testNow))
}
