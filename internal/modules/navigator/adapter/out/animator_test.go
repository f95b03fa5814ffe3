package out_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	navout "folio/internal/modules/navigator/adapter/out"
)

func TestEaseInOutCubic(t *testing.T) {
	t.Parallel()
	cases := []struct {
		t, want float64
	}{
		{-1, 0}, {0, 0}, {0.25, 0.0625}, {0.5, 0.5}, {0.75, 0.9375}, {1, 1}, {2, 1},
	}
	for _, tc := range cases {
		if got := navout.EaseInOutCubic(tc.t); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("ease(%v) = %v, want %v", tc.t, got, tc.want)
		}
	}
}

func TestTweenAnimatorEndsOnTarget(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var frames []float64
	anim := navout.NewTweenAnimator(func(v float64) {
		mu.Lock()
		defer mu.Unlock()
		frames = append(frames, v)
	}, time.Millisecond)

	if err := anim.Animate(context.Background(), -100, 20*time.Millisecond); err != nil {
		t.Fatalf("animate: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(frames) == 0 || frames[len(frames)-1] != -100 {
		t.Fatalf("expected last frame at -100, got %v", frames)
	}
	for i := 1; i < len(frames); i++ {
		if frames[i] > frames[i-1] {
			t.Fatalf("frames must move monotonically toward the target: %v", frames)
		}
	}
	if anim.Offset() != -100 {
		t.Fatalf("offset not tracked: %v", anim.Offset())
	}
}

func TestTweenAnimatorCanceledStillSettles(t *testing.T) {
	t.Parallel()
	anim := navout.NewTweenAnimator(nil, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := anim.Animate(ctx, -200, time.Hour)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if anim.Offset() != -200 {
		t.Fatalf("canceled animation must still land on the target, got %v", anim.Offset())
	}
}

func TestInstantAnimatorJumps(t *testing.T) {
	t.Parallel()
	anim := navout.NewInstantAnimator()
	if err := anim.Animate(context.Background(), -300, time.Second); err != nil {
		t.Fatalf("animate: %v", err)
	}
	if anim.Offset() != -300 {
		t.Fatalf("unexpected offset %v", anim.Offset())
	}
}
