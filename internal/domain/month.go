package domain

import (
	"fmt"
	"sort"
	"time"
)

// MonthKey identifies a calendar month, the grouping unit for rate
// resolution and sales aggregation.
type MonthKey struct {
	// Year is the calendar year.
	Year int
	// Month is the calendar month.
	Month time.Month
}

// MonthKeyOf derives the month key from a point in time.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// ParseMonthKey parses a month key in YYYY-MM form.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return MonthKey{}, fmt.Errorf("invalid month key %q: %w", s, err)
	}
	return MonthKey{Year: t.Year(), Month: t.Month()}, nil
}

// String returns the YYYY-MM representation.
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// FirstDay returns the first day of the month in UTC.
func (m MonthKey) FirstDay() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Before reports whether m is earlier than other.
func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// SortMonthKeys sorts keys ascending in place.
func SortMonthKeys(keys []MonthKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
}
