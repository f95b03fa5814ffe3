package out

import (
	"context"
	"time"

	"folio/internal/modules/navigator/domain"
)

// PageStore is what the controller needs from page materialization. Page
// failures are never reported as errors; EnsureLoaded only says whether the
// page ended up loaded.
type PageStore interface {
	DiscoverTotal(ctx context.Context) (int, error)
	Preload(ctx context.Context, count int, progress func(done, want int)) error
	EnsureLoaded(ctx context.Context, index int) bool
	IsLoaded(index int) bool
}

// Animator moves the viewport to target over d and returns once the
// animation completed. Callers never overlap calls.
type Animator interface {
	Animate(ctx context.Context, target float64, d time.Duration) error
}

// Presenter receives every committed viewer state and advisory preload
// progress.
type Presenter interface {
	Present(state domain.ViewerState)
	Progress(done, want int)
}
