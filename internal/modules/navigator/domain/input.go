package domain

import "math"

// DefaultSwipeThreshold is the horizontal travel a swipe needs, in device
// independent pixels.
const DefaultSwipeThreshold = 50

// DirectionForKey maps arrow keys onto navigation.
func DirectionForKey(key string) (Direction, bool) {
	switch key {
	case "left", "ArrowLeft":
		return Previous, true
	case "right", "ArrowRight":
		return Next, true
	}
	return 0, false
}

type Swipe struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// DirectionForSwipe recognizes a swipe when the horizontal displacement
// exceeds threshold. Moving left reveals the next page. Vertical travel is
// ignored.
func DirectionForSwipe(s Swipe, threshold float64) (Direction, bool) {
	diff := s.StartX - s.EndX
	if math.Abs(diff) <= threshold {
		return 0, false
	}
	if diff > 0 {
		return Next, true
	}
	return Previous, true
}
