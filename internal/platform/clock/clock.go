package clock

import "time"

// Clock abstracts time so load timings stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

// Now keeps the monotonic reading; durations are measured from it.
func (SystemClock) Now() time.Time {
	return time.Now()
}

func Elapsed(c Clock, start time.Time) time.Duration {
	d := c.Now().Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
