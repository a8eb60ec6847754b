package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// Clock is a time of day with minute precision, stored as minutes since
// midnight. It has no date or timezone attached.
type Clock int

var clockPattern = regexp.MustCompile(`^([0-1]\d|2[0-3]):[0-5]\d$`)

// ParseClock parses a 24-hour "HH:mm" string.
func ParseClock(s string) (Clock, error) {
	if !clockPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return Clock(h*60 + m), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add returns the clock advanced by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

const dateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date ("2006-01-02") as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// FormatDate renders a date as an ISO calendar date string.
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// Today returns the current calendar day as UTC midnight.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
