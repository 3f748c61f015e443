package listings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/money"
)

func sampleListing(t *testing.T) *Listing {
	t.Helper()
	l, err := New(CreateParams{
		ID:          "lst-1",
		Host:        "host-1",
		Title:       "Garden loft",
		NightlyRate: money.Must(2000, "USD"),
		GuestsLimit: 4,
		Now:         time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return l
}

func TestClampGuests(t *testing.T) {
	l := sampleListing(t)

	assert.Equal(t, 1, l.ClampGuests(0))
	assert.Equal(t, 1, l.ClampGuests(-3))
	assert.Equal(t, 4, l.ClampGuests(9))
	assert.Equal(t, 3, l.ClampGuests(3))

	l.GuestsLimit = 0
	assert.Equal(t, 12, l.ClampGuests(12))
}

func TestSelectableWindowStartsAtToday(t *testing.T) {
	l := sampleListing(t)
	now := time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC)

	from, _, bounded := l.SelectableWindow(now)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), from)
	assert.False(t, bounded)

	l.AvailableFrom = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	l.AvailableUntil = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	from, until, bounded := l.SelectableWindow(now)
	assert.Equal(t, l.AvailableFrom, from)
	assert.Equal(t, l.AvailableUntil, until)
	assert.True(t, bounded)
}

func TestWithinWindow(t *testing.T) {
	l := sampleListing(t)
	l.AvailableFrom = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	l.AvailableUntil = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	inWindow, _ := daterange.New(
		time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC),
	)
	early, _ := daterange.New(
		time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 25, 0, 0, 0, 0, time.UTC),
	)
	late, _ := daterange.New(
		time.Date(2024, 7, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
	)

	assert.True(t, l.WithinWindow(inWindow, now))
	assert.False(t, l.WithinWindow(early, now))
	assert.False(t, l.WithinWindow(late, now))
	assert.False(t, l.WithinWindow(daterange.Partial(inWindow.CheckIn, time.Time{}), now))
}

func TestNewValidation(t *testing.T) {
	_, err := New(CreateParams{ID: "x", Host: "h", Title: " ", NightlyRate: money.Must(100, "USD")})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = New(CreateParams{ID: "x", Host: "h", Title: "t", NightlyRate: money.Must(100, "USD"), DiscountPercent: 120})
	require.ErrorIs(t, err, ErrDiscountPercent)
}
