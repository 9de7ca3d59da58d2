package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quiz-league/internal/week"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

// calcAt returns a calculator in New York whose clock is frozen at the given
// local time.
func calcAt(t *testing.T, year int, month time.Month, day, hour int) *week.Calculator {
	t.Helper()
	loc := newYork(t)
	now := time.Date(year, month, day, hour, 0, 0, 0, loc)
	return week.NewCalculator(loc, func() time.Time { return now })
}

func sameInstant(want time.Time) interface{} {
	return mock.MatchedBy(func(got time.Time) bool { return got.Equal(want) })
}
