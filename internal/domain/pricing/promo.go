package pricing

import "strings"

// PromoOutcome is the result of checking an entered code against the single
// code a listing may configure. Validation always runs from scratch; callers
// must not cache a stale outcome across input edits.
type PromoOutcome int

const (
	PromoApplied PromoOutcome = iota
	PromoRejected
	PromoEmpty
	PromoNotConfigured
)

func (o PromoOutcome) Applied() bool { return o == PromoApplied }

// Message is the inline text the views surface for each outcome.
func (o PromoOutcome) Message() string {
	switch o {
	case PromoApplied:
		return "promo applied"
	case PromoRejected:
		return "promo code not recognized"
	case PromoEmpty:
		return "enter a code"
	case PromoNotConfigured:
		return "no promo configured for this listing"
	default:
		return ""
	}
}

// ValidatePromo compares case-insensitively with whitespace trimmed on both
// sides. An empty entry and a listing without a code are distinct outcomes.
func ValidatePromo(configured, entered string) PromoOutcome {
	entered = normalizeCode(entered)
	configured = normalizeCode(configured)
	if entered == "" {
		return PromoEmpty
	}
	if configured == "" {
		return PromoNotConfigured
	}
	if entered == configured {
		return PromoApplied
	}
	return PromoRejected
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
