package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	require.NoError(t, err)
	return c
}

func iv(t *testing.T, start, end string) Interval {
	t.Helper()
	return Interval{Start: mustClock(t, start), End: mustClock(t, end)}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"08:00", 480, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"8:00", 0, false},
		{"12:60", 0, false},
		{"12-30", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		c, err := ParseClock(tc.in)
		if tc.ok {
			require.NoError(t, err, tc.in)
			assert.Equal(t, Clock(tc.minutes), c, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "09:05", Clock(9*60+5).String())
	assert.Equal(t, "00:00", Clock(0).String())
	assert.Equal(t, "23:59", Clock(1439).String())
}

func TestOverlapsSymmetry(t *testing.T) {
	pairs := [][2]Interval{
		{iv(t, "09:00", "11:00"), iv(t, "10:00", "12:00")},
		{iv(t, "09:00", "10:00"), iv(t, "10:00", "11:00")},
		{iv(t, "08:00", "09:00"), iv(t, "13:00", "14:00")},
		{iv(t, "08:00", "22:00"), iv(t, "09:00", "09:30")},
	}
	for _, p := range pairs {
		assert.Equal(t, p[0].Overlaps(p[1]), p[1].Overlaps(p[0]), "%v vs %v", p[0], p[1])
	}
}

func TestOverlapsSelf(t *testing.T) {
	a := iv(t, "09:00", "10:00")
	assert.True(t, a.Overlaps(a))
}

func TestTouchingIntervalsDoNotOverlap(t *testing.T) {
	a := iv(t, "09:00", "10:00")
	b := iv(t, "10:00", "11:00")
	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
}

func TestOverlapContainment(t *testing.T) {
	outer := iv(t, "08:00", "12:00")
	inner := iv(t, "09:00", "10:00")
	assert.True(t, outer.Overlaps(inner))
	assert.True(t, inner.Overlaps(outer))
}

func TestNewIntervalRejectsInverted(t *testing.T) {
	_, err := NewInterval(mustClock(t, "10:00"), mustClock(t, "10:00"))
	assert.Error(t, err)
	_, err = NewInterval(mustClock(t, "11:00"), mustClock(t, "10:00"))
	assert.Error(t, err)

	got, err := NewInterval(mustClock(t, "09:00"), mustClock(t, "17:00"))
	require.NoError(t, err)
	assert.Equal(t, 480, got.Minutes())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", FormatDate(d))

	_, err = ParseDate("01/03/2026")
	assert.Error(t, err)
	_, err = ParseDate("2026-13-01")
	assert.Error(t, err)
}
