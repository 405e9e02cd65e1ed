package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrecisions(t *testing.T) {
	full, ok := Parse("1842-05-17")
	require.True(t, ok)
	assert.Equal(t, time.Date(1842, time.May, 17, 0, 0, 0, 0, time.UTC), full)

	// Year-month and year-only snap to the first day of the period.
	ym, ok := Parse("1820-06")
	require.True(t, ok)
	assert.Equal(t, time.Date(1820, time.June, 1, 0, 0, 0, 0, time.UTC), ym)

	year, ok := Parse("1842")
	require.True(t, ok)
	assert.Equal(t, time.Date(1842, time.January, 1, 0, 0, 0, 0, time.UTC), year)
}

func TestParseTrimsWhitespace(t *testing.T) {
	got, ok := Parse("  1850  ")
	require.True(t, ok)
	assert.Equal(t, 1850, got.Year())
}

func TestParseNoDate(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"Spring 1842",
		"Year 12 – Sepia Age",
		"1999-13",    // invalid month
		"2001-02-29", // not a leap year
		"1842-05-17T12:00:00",
	} {
		_, ok := Parse(in)
		assert.False(t, ok, "input %q should not parse", in)
	}
}

func TestParseLeapDay(t *testing.T) {
	got, ok := Parse("2000-02-29")
	require.True(t, ok)
	assert.Equal(t, time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC), got)
}

func TestOrSentinel(t *testing.T) {
	assert.Equal(t, Sentinel, OrSentinel("not a date"))
	assert.True(t, OrSentinel("1850").Before(Sentinel))
}
