// Package dates provides a calendar-date type for fields that carry a day
// without a time of day: transaction dates and goal deadlines. It marshals to
// and from the "2006-01-02" JSON form the API exposes and converts cleanly to
// the midnight-UTC time.Time values a DATE column round-trips through pgx.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Date is a calendar date with no time-of-day or zone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New constructs a Date from its components.
func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// FromTime extracts the calendar date from a time.Time, discarding the
// time-of-day. Used when scanning DATE columns, which pgx returns as
// midnight-UTC timestamps.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse parses a date in the Layout form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// Time returns the date as midnight UTC, the representation pgx expects for
// DATE parameters.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String returns the date in the Layout form.
func (d Date) String() string {
	return d.Time().Format(Layout)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d falls after other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// MarshalJSON encodes the date as a JSON string in the Layout form.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a JSON string in the Layout form.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
