package dto

import "folio/internal/modules/navigator/domain"

type StateOutput struct {
	Current       int
	Total         int
	Transitioning bool
	Indicator     string
	CanPrevious   bool
	CanNext       bool
	Offset        float64
}

// NewStateOutput flattens a viewer state with its derived fields.
func NewStateOutput(s domain.ViewerState) StateOutput {
	return StateOutput{
		Current:       s.Current,
		Total:         s.Total,
		Transitioning: s.Transitioning(),
		Indicator:     s.Indicator(),
		CanPrevious:   s.CanPrevious(),
		CanNext:       s.CanNext(),
		Offset:        s.Offset(),
	}
}

type MoveOutput struct {
	Moved bool
	State StateOutput
}

type KeyInput struct {
	Key string
}

type SwipeInput struct {
	StartX, StartY float64
	EndX, EndY     float64
}
