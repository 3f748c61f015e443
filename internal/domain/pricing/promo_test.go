package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePromo(t *testing.T) {
	cases := []struct {
		name       string
		configured string
		entered    string
		want       PromoOutcome
	}{
		{"normalized match", "SUMMER10", " summer10 ", PromoApplied},
		{"exact match", "SUMMER10", "SUMMER10", PromoApplied},
		{"mismatch", "SUMMER10", "winter20", PromoRejected},
		{"empty entry", "SUMMER10", "   ", PromoEmpty},
		{"no code configured", "", "summer10", PromoNotConfigured},
		{"empty entry beats missing config", "", "", PromoEmpty},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidatePromo(tc.configured, tc.entered)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want == PromoApplied, got.Applied())
			assert.NotEmpty(t, got.Message())
		})
	}
}

func TestRevalidationAfterEditIsFresh(t *testing.T) {
	assert.Equal(t, PromoApplied, ValidatePromo("SUMMER10", "summer10"))
	// editing the input must re-run the comparison, not reuse the old result
	assert.Equal(t, PromoRejected, ValidatePromo("SUMMER10", "summer1"))
	assert.Equal(t, PromoApplied, ValidatePromo("SUMMER10", "summer10"))
}
