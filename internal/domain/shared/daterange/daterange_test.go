package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRejectsUnorderedEndpoints(t *testing.T) {
	_, err := New(date(2024, 6, 4), date(2024, 6, 1))
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(date(2024, 6, 1), date(2024, 6, 1))
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestNightsIsDayDifference(t *testing.T) {
	s, err := New(date(2024, 6, 1), date(2024, 6, 4))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Nights())
}

func TestNightsRoundsPartialDaysUp(t *testing.T) {
	in := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	out := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	s, err := New(in, out)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Nights())
}

func TestPartialStayIsNotComplete(t *testing.T) {
	s := Partial(date(2024, 6, 1), time.Time{})
	assert.True(t, s.HasCheckIn())
	assert.False(t, s.HasCheckOut())
	assert.False(t, s.Complete())
	assert.Equal(t, 0, s.Nights())
}

func TestOverlaps(t *testing.T) {
	a, _ := New(date(2024, 6, 1), date(2024, 6, 5))
	b, _ := New(date(2024, 6, 4), date(2024, 6, 8))
	c, _ := New(date(2024, 6, 5), date(2024, 6, 8))
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
}
