package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayTruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	in := time.Date(2024, time.March, 15, 2, 30, 0, 0, loc) // 2024-03-14 19:30 UTC

	got := Day(in)
	assert.True(t, got.Equal(time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, got.Location())
}

func TestDayStringAndParseRoundTrip(t *testing.T) {
	in := time.Date(2024, time.February, 29, 18, 45, 0, 0, time.UTC)
	s := DayString(in)
	assert.Equal(t, "2024-02-29", s)

	parsed, err := ParseDay(s)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(Day(in)))

	_, err = ParseDay("29/02/2024")
	assert.Error(t, err)
}

func TestAddDaysCrossesMonthAndYear(t *testing.T) {
	d := time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)
	assert.True(t, AddDays(d, 3).Equal(time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, AddDays(d, -40).Equal(time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC)))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.June, 1, 0, 1, 0, 0, time.UTC)
	b := time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 29, DaysBetween(a, b), "leap February has 29 days")
	assert.Equal(t, -29, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestStartAndEndOfMonth(t *testing.T) {
	mid := time.Date(2024, time.February, 14, 12, 0, 0, 0, time.UTC)
	assert.True(t, StartOfMonth(mid).Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, EndOfMonth(mid).Equal(time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)))

	nonLeap := time.Date(2023, time.February, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, EndOfMonth(nonLeap).Equal(time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)))

	dec := time.Date(2025, time.December, 5, 0, 0, 0, 0, time.UTC)
	assert.True(t, EndOfMonth(dec).Equal(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
