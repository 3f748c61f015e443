package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/internal/domain/shared/daterange"
	"stayhub/internal/domain/shared/fault"
	"stayhub/internal/domain/shared/money"
)

func stay(t *testing.T, inDay, outDay int) daterange.Stay {
	t.Helper()
	s, err := daterange.New(
		time.Date(2024, 6, inDay, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, outDay, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return s
}

func TestComputeQuoteScenario(t *testing.T) {
	// rate=2000, 2024-06-01 -> 2024-06-04, 10% promo applied
	q, err := Compute(QuoteInput{
		Rate:            money.Must(2000, "USD"),
		Stay:            stay(t, 1, 4),
		DiscountPercent: 10,
		PromoApplied:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, int64(6000), q.Subtotal.Amount)
	assert.Equal(t, int64(600), q.DiscountAmount.Amount)
	assert.Equal(t, int64(5400), q.Total.Amount)
}

func TestComputeQuoteWithoutPromoIgnoresDiscount(t *testing.T) {
	q, err := Compute(QuoteInput{
		Rate:            money.Must(2000, "USD"),
		Stay:            stay(t, 1, 4),
		DiscountPercent: 10,
		PromoApplied:    false,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, q.DiscountPercent)
	assert.Equal(t, int64(0), q.DiscountAmount.Amount)
	assert.Equal(t, int64(6000), q.Total.Amount)
}

func TestApplyThenRemovePromoRestoresTotal(t *testing.T) {
	base := QuoteInput{
		Rate:            money.Must(1750, "EUR"),
		Stay:            stay(t, 10, 15),
		DiscountPercent: 25,
	}
	before, err := Compute(base)
	require.NoError(t, err)

	base.PromoApplied = true
	_, err = Compute(base)
	require.NoError(t, err)

	base.PromoApplied = false
	after, err := Compute(base)
	require.NoError(t, err)
	assert.Equal(t, before.Total, after.Total)
}

func TestTotalMonotonicInDiscountAndNonNegative(t *testing.T) {
	prev := int64(1 << 62)
	for pct := 0; pct <= 100; pct++ {
		q, err := Compute(QuoteInput{
			Rate:            money.Must(999, "USD"),
			Stay:            stay(t, 1, 8),
			DiscountPercent: pct,
			PromoApplied:    true,
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, q.Total.Amount, prev, "pct=%d", pct)
		assert.GreaterOrEqual(t, q.Total.Amount, int64(0), "pct=%d", pct)
		prev = q.Total.Amount
	}
}

func TestQuoteUndefinedWhenNightsZero(t *testing.T) {
	sameDay := daterange.Partial(
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	_, err := Compute(QuoteInput{Rate: money.Must(2000, "USD"), Stay: sameDay})
	require.ErrorIs(t, err, ErrQuoteUndefined)
	assert.True(t, fault.Is(err, fault.QuoteUndefined))
}

func TestQuoteUndefinedWhenRateMissing(t *testing.T) {
	_, err := Compute(QuoteInput{Stay: stay(t, 1, 4)})
	require.ErrorIs(t, err, ErrQuoteUndefined)
}

func TestDiscountRoundsHalfUp(t *testing.T) {
	// subtotal 1001 at 5% = 50.05 -> 50; at 15% = 150.15 -> 150; 999 at 5% = 49.95 -> 50
	q, err := Compute(QuoteInput{
		Rate:            money.Must(999, "USD"),
		Stay:            stay(t, 1, 2),
		DiscountPercent: 5,
		PromoApplied:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), q.DiscountAmount.Amount)
	assert.Equal(t, int64(949), q.Total.Amount)
}
