package booking

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/suitespot/service-booking/internal/pkg/apperror"
)

// CancellationNotice is how long before check-in a booking can still be cancelled.
const CancellationNotice = 24 * time.Hour

const dateLayout = "2006-01-02"

// StayPeriod is an immutable value object holding a check-in and check-out instant.
type StayPeriod struct {
	CheckIn  time.Time `json:"check_in_date"`
	CheckOut time.Time `json:"check_out_date"`
}

// NewStayPeriod validates that checkIn comes strictly before checkOut.
func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return StayPeriod{}, apperror.NewValidationError("check-in and check-out dates are required")
	}
	if !checkIn.Before(checkOut) {
		return StayPeriod{}, apperror.NewValidationError("check-in date must be before check-out date")
	}
	return StayPeriod{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}, nil
}

// Overlaps reports whether two stays share any instant, boundaries included:
// [a1,a2] and [b1,b2] overlap iff a1 <= b2 && a2 >= b1. A stay ending on the
// day another one starts therefore overlaps it.
//
// This is the only overlap predicate in the service; availability checks and
// room filtering both go through it.
func (s StayPeriod) Overlaps(other StayPeriod) bool {
	return !s.CheckIn.After(other.CheckOut) && !s.CheckOut.Before(other.CheckIn)
}

// Nights returns the number of started 24h periods in the stay, at least one.
func (s StayPeriod) Nights() int {
	n := int(math.Ceil(s.CheckOut.Sub(s.CheckIn).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}

// CancellationDeadline is the last instant at which the stay may be cancelled.
func (s StayPeriod) CancellationDeadline() time.Time {
	return s.CheckIn.Add(-CancellationNotice)
}

// ParseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD calendar date (UTC midnight).
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperror.NewValidationError("date is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.NewValidationError(fmt.Sprintf("invalid date %q: use YYYY-MM-DD or RFC 3339", value))
}
