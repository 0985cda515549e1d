package domain

import (
	"errors"
	"time"
)

// dayKeyLayout is the canonical calendar-date layout used for day keys.
const dayKeyLayout = "2006-01-02"

// ErrInvalidDayKey is returned when a string is not a YYYY-MM-DD date.
var ErrInvalidDayKey = errors.New("invalid day key")

// DayKey identifies a calendar day as "YYYY-MM-DD".
// Lexicographic order of keys equals chronological order.
type DayKey string

// DayOf returns the key of the local calendar day containing t.
func DayOf(t time.Time) DayKey {
	return DayKey(t.Format(dayKeyLayout))
}

// ParseDayKey validates s and returns it as a DayKey.
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(dayKeyLayout, s)
	if err != nil {
		return "", ErrInvalidDayKey
	}
	// Round-trip rejects inputs such as "2024-1-5" that time.Parse tolerates elsewhere.
	if t.Format(dayKeyLayout) != s {
		return "", ErrInvalidDayKey
	}
	return DayKey(s), nil
}

// String implements fmt.Stringer.
func (k DayKey) String() string {
	return string(k)
}

// IsZero reports whether k is the empty key.
func (k DayKey) IsZero() bool {
	return k == ""
}

// Before reports whether k is strictly earlier than other.
func (k DayKey) Before(other DayKey) bool {
	return k < other
}

// utc parses the key as midnight UTC. Day arithmetic is done in UTC so
// daylight-saving transitions never produce 23 or 25 hour days.
func (k DayKey) utc() time.Time {
	t, err := time.Parse(dayKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Time returns local midnight of the day in loc.
func (k DayKey) Time(loc *time.Location) time.Time {
	t := k.utc()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// AddDays returns the key n calendar days after k (n may be negative).
func (k DayKey) AddDays(n int) DayKey {
	return DayKey(k.utc().AddDate(0, 0, n).Format(dayKeyLayout))
}

// DaysUntil returns the number of calendar days from k to other.
// It is positive when other is later than k.
func (k DayKey) DaysUntil(other DayKey) int {
	return int(other.utc().Sub(k.utc()).Hours() / 24)
}

// Weekday returns the day of the week of k.
func (k DayKey) Weekday() time.Weekday {
	return k.utc().Weekday()
}
