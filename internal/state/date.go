package state

import (
	"fmt"
	"strconv"
	"time"
)

// Date is a calendar day. It marshals as "YYYY-MM-DD" and carries no time of
// day or zone, matching the persisted document format.
type Date struct {
	t time.Time
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return Date{t: t}, nil
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) String() string {
	return d.t.Format(time.DateOnly)
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is a later day than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("unquoting date: %w", err)
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
