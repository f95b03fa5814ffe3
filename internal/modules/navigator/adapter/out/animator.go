package out

import (
	"context"
	"math"
	"sync"
	"time"

	navout "folio/internal/modules/navigator/port/out"
)

// InstantAnimator jumps straight to the target. Headless runs use it.
type InstantAnimator struct {
	mu     sync.Mutex
	offset float64
}

func NewInstantAnimator() *InstantAnimator {
	return &InstantAnimator{}
}

var _ navout.Animator = (*InstantAnimator)(nil)

func (a *InstantAnimator) Animate(_ context.Context, target float64, _ time.Duration) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.offset = target
	return nil
}

func (a *InstantAnimator) Offset() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

const DefaultFrameInterval = time.Second / 30

// TweenAnimator eases the viewport offset from its last value to the target
// with a cubic in-out curve and streams every frame to sink. The final frame
// is always exactly target.
type TweenAnimator struct {
	sink  func(offset float64)
	frame time.Duration

	mu     sync.Mutex
	offset float64
}

func NewTweenAnimator(sink func(offset float64), frame time.Duration) *TweenAnimator {
	if sink == nil {
		sink = func(float64) {}
	}
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &TweenAnimator{sink: sink, frame: frame}
}

var _ navout.Animator = (*TweenAnimator)(nil)

func (a *TweenAnimator) Animate(ctx context.Context, target float64, d time.Duration) error {
	a.mu.Lock()
	from := a.offset
	a.mu.Unlock()
	defer a.finish(target)

	if d <= 0 || from == target {
		return nil
	}

	ticker := time.NewTicker(a.frame)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			t := float64(now.Sub(start)) / float64(d)
			if t >= 1 {
				return nil
			}
			a.set(from + (target-from)*EaseInOutCubic(t))
		}
	}
}

func (a *TweenAnimator) Offset() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

func (a *TweenAnimator) set(offset float64) {
	a.mu.Lock()
	a.offset = offset
	a.mu.Unlock()
	a.sink(offset)
}

func (a *TweenAnimator) finish(target float64) {
	a.set(target)
}

// EaseInOutCubic maps t in [0, 1] onto the power2.inOut curve.
func EaseInOutCubic(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	case t < 0.5:
		return 4 * t * t * t
	default:
		return 1 - math.Pow(-2*t+2, 3)/2
	}
}
