package domain

import "fmt"

type Phase int

const (
	Idle Phase = iota
	Transitioning
)

func (p Phase) String() string {
	if p == Transitioning {
		return "transitioning"
	}
	return "idle"
}

type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// ViewerState is the navigation state read by the presentation layer.
type ViewerState struct {
	Current int
	Total   int
	Phase   Phase
}

func (s ViewerState) Transitioning() bool {
	return s.Phase == Transitioning
}

// Indicator renders the page indicator text, "current / total".
func (s ViewerState) Indicator() string {
	return fmt.Sprintf("%d / %d", s.Current, s.Total)
}

func (s ViewerState) CanPrevious() bool {
	return s.Current > 1
}

func (s ViewerState) CanNext() bool {
	return s.Current < s.Total
}

// Offset is the viewport offset of the current page in percent of the
// viewport width.
func (s ViewerState) Offset() float64 {
	return Offset(s.Current)
}

// Target returns the page a move in dir would land on, or false at a bound.
func (s ViewerState) Target(dir Direction) (int, bool) {
	target := s.Current + int(dir)
	if target < 1 || target > s.Total {
		return 0, false
	}
	return target, true
}

// Offset places page index in the sliding viewport: -(index-1) * 100%.
func Offset(index int) float64 {
	return -float64(index-1) * 100
}

// Window lists the indices in [current-radius, current+radius] that exist.
func Window(current, radius, total int) []int {
	lo := max(current-radius, 1)
	hi := min(current+radius, total)
	if lo > hi {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
