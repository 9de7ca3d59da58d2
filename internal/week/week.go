// Package week holds the calendar arithmetic shared by every weekly component.
// All boundaries are computed in a single configured location so that the
// server and its clients agree on when a week (or day) starts.
package week

import (
	"fmt"
	"time"
)

// DefaultTimezone is used when no timezone is configured.
const DefaultTimezone = "America/New_York"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Clock returns the current instant.
type Clock func() time.Time

// Calculator computes Monday-first week and calendar-day boundaries.
type Calculator struct {
	loc *time.Location
	now Clock
}

// NewCalculator returns a Calculator pinned to loc. A nil clock means time.Now.
func NewCalculator(loc *time.Location, now Clock) *Calculator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Calculator{loc: loc, now: now}
}

// NewCalculatorForZone loads the named IANA zone and builds a Calculator.
func NewCalculatorForZone(zone string, now Clock) (*Calculator, error) {
	if zone == "" {
		zone = DefaultTimezone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", zone, err)
	}
	return NewCalculator(loc, now), nil
}

// Location returns the calendar location.
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the calculator's location.
func (c *Calculator) Now() time.Time {
	return c.now().In(c.loc)
}

// StartOfDay returns midnight of the calendar day containing t.
func (c *Calculator) StartOfDay(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// StartOfWeek returns midnight on the Monday on or before ref.
// Sunday counts as the last day of the week.
func (c *Calculator) StartOfWeek(ref time.Time) time.Time {
	day := c.StartOfDay(ref)
	// Monday=0 ... Sunday=6
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// AddWeeks shifts d by n*7 calendar days.
func (c *Calculator) AddWeeks(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, 7*n)
}

// AddDays shifts d by n calendar days.
func (c *Calculator) AddDays(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, n)
}

// CurrentWeek is StartOfWeek(Now()).
func (c *Calculator) CurrentWeek() time.Time {
	return c.StartOfWeek(c.Now())
}

// Today is StartOfDay(Now()).
func (c *Calculator) Today() time.Time {
	return c.StartOfDay(c.Now())
}

// WeekDays returns the day starts of the current week from Monday through
// today, inclusive.
func (c *Calculator) WeekDays() []time.Time {
	start := c.CurrentWeek()
	today := c.Today()
	days := make([]time.Time, 0, 7)
	for d := start; !d.After(today) && len(days) < 7; d = c.AddDays(d, 1) {
		days = append(days, d)
	}
	return days
}

// SameDay reports whether a and b fall on the same calendar day.
func (c *Calculator) SameDay(a, b time.Time) bool {
	return c.StartOfDay(a).Equal(c.StartOfDay(b))
}

// ParseDate parses a DateLayout date as midnight in the calculator's location.
func (c *Calculator) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, c.loc)
}

// FormatDate renders t as a DateLayout date in the calculator's location.
func (c *Calculator) FormatDate(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}
