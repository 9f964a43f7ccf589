package daterange

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates across the API.
	DateLayout = "2006-01-02"
)

var (
	ErrStartNotBeforeEnd = errors.New("start date must be before end date")
	ErrInvalidDate       = errors.New("invalid calendar date")
)

// DateRange is a half-open interval [Start, End) over calendar dates.
// Both bounds are midnight-normalized in UTC; the End date itself is never
// occupied (checkout-day turnover).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// New builds a DateRange from two dates, normalizing both to midnight UTC.
// Start must be strictly before End.
func New(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: Truncate(start), End: Truncate(end)}

	if !r.Start.Before(r.End) {
		return DateRange{}, ErrStartNotBeforeEnd
	}

	return r, nil
}

// FromInclusive builds a DateRange from bounds where the end date itself is
// occupied (blocked-range storage convention). The inclusive end is converted
// to the exclusive convention by extending it one day, so a block covering a
// single day still spans one night.
func FromInclusive(start, endInclusive time.Time) (DateRange, error) {
	endInclusive = Truncate(endInclusive)

	if Truncate(start).After(endInclusive) {
		return DateRange{}, ErrStartNotBeforeEnd
	}

	return New(start, endInclusive.AddDate(0, 0, 1))
}

// Parse builds a DateRange from two YYYY-MM-DD strings.
func Parse(start, end string) (DateRange, error) {
	startDate, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}

	endDate, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}

	return New(startDate, endDate)
}

// ParseDate parses a single YYYY-MM-DD date in UTC.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}

	return date, nil
}

// Truncate drops the time-of-day component, keeping the calendar date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether the two ranges share at least one occupied night.
// Ranges that only touch at a boundary do not overlap: a stay ending on a date
// and another starting on that same date is a legal same-day turnover.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether the given date falls on an occupied night.
func (r DateRange) Contains(day time.Time) bool {
	day = Truncate(day)

	return !day.Before(r.Start) && day.Before(r.End)
}

// Nights returns the number of occupied nights in the range.
func (r DateRange) Nights() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// EndInclusive returns the last occupied date of the range.
func (r DateRange) EndInclusive() time.Time {
	return r.End.AddDate(0, 0, -1)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + "/" + r.End.Format(DateLayout)
}
