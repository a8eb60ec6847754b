package timeutil

import "fmt"

// Interval is a half-open time-of-day interval [Start, End).
type Interval struct {
	Start Clock
	End   Clock
}

// NewInterval builds an interval, rejecting empty or inverted ones.
func NewInterval(start, end Clock) (Interval, error) {
	if end <= start {
		return Interval{}, fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect: each must
// start before the other ends. Touching endpoints do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// Minutes returns the interval duration in minutes.
func (iv Interval) Minutes() int {
	return int(iv.End - iv.Start)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start, iv.End)
}
