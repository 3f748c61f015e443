package daterange

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidRange = errors.New("daterange: check-out must be after check-in")

// Stay is a half-open interval [checkIn, checkOut). Either endpoint may be
// unset (zero time): a stay with only check-in picked is a valid in-progress
// selection, not an error. A quote is only computable for a complete stay.
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New builds a complete stay, rejecting unordered endpoints.
func New(checkIn, checkOut time.Time) (Stay, error) {
	s := Stay{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}
	if !s.Complete() {
		return Stay{}, ErrInvalidRange
	}
	return s, nil
}

// Partial builds an in-progress stay without ordering checks.
func Partial(checkIn, checkOut time.Time) Stay {
	s := Stay{}
	if !checkIn.IsZero() {
		s.CheckIn = checkIn.UTC()
	}
	if !checkOut.IsZero() {
		s.CheckOut = checkOut.UTC()
	}
	return s
}

func (s Stay) HasCheckIn() bool  { return !s.CheckIn.IsZero() }
func (s Stay) HasCheckOut() bool { return !s.CheckOut.IsZero() }

// Complete reports both endpoints set with check-out strictly after check-in.
func (s Stay) Complete() bool {
	return s.HasCheckIn() && s.HasCheckOut() && s.CheckOut.After(s.CheckIn)
}

// Nights is the ceiling of the day difference; 0 when the stay is not
// complete, so an equal-date or partial selection never yields a price.
func (s Stay) Nights() int {
	if !s.Complete() {
		return 0
	}
	hours := s.CheckOut.Sub(s.CheckIn).Hours()
	return int(math.Ceil(hours / 24))
}

// Overlaps reports interval intersection for two complete stays.
func (s Stay) Overlaps(other Stay) bool {
	if !s.Complete() || !other.Complete() {
		return false
	}
	return s.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(s.CheckOut)
}

// ContainsDate reports whether t falls inside the interval.
func (s Stay) ContainsDate(t time.Time) bool {
	if !s.Complete() {
		return false
	}
	t = t.UTC()
	return !t.Before(s.CheckIn) && t.Before(s.CheckOut)
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
