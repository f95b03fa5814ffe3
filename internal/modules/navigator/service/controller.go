package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"folio/internal/modules/navigator/domain"
	navout "folio/internal/modules/navigator/port/out"
	apperrors "folio/internal/platform/errors"
	"folio/internal/platform/metrics"
)

type Config struct {
	// Eager is how many leading pages Start materializes before showing
	// the first page.
	Eager int
	// Window is the prefetch radius around the current page.
	Window         int
	Transition     time.Duration
	SwipeThreshold float64
}

func DefaultConfig() Config {
	return Config{
		Eager:          5,
		Window:         2,
		Transition:     600 * time.Millisecond,
		SwipeThreshold: domain.DefaultSwipeThreshold,
	}
}

// Controller owns the viewer state. The Transitioning phase is the
// navigation lock: requests arriving while it is held are dropped.
type Controller struct {
	pages     navout.PageStore
	animator  navout.Animator
	presenter navout.Presenter
	cfg       Config
	logger    zerolog.Logger

	mu       sync.Mutex
	starting bool
	started  bool
	state    domain.ViewerState

	prefetch sync.WaitGroup
}

func NewController(pages navout.PageStore, animator navout.Animator, presenter navout.Presenter, cfg Config, logger zerolog.Logger) *Controller {
	if cfg.Eager < 0 {
		cfg.Eager = 0
	}
	if cfg.Window < 0 {
		cfg.Window = 0
	}
	if cfg.SwipeThreshold <= 0 {
		cfg.SwipeThreshold = domain.DefaultSwipeThreshold
	}
	return &Controller{pages: pages, animator: animator, presenter: presenter, cfg: cfg, logger: logger}
}

// Start discovers the page count, materializes the leading pages and shows
// page 1. A discovery failure is fatal and returned as is.
func (c *Controller) Start(ctx context.Context) (domain.ViewerState, error) {
	c.mu.Lock()
	if c.starting || c.started {
		c.mu.Unlock()
		return domain.ViewerState{}, fmt.Errorf("%w: viewer already started", apperrors.ErrInvalidInput)
	}
	c.starting = true
	c.mu.Unlock()

	total, err := c.pages.DiscoverTotal(ctx)
	if err == nil {
		err = c.pages.Preload(ctx, c.cfg.Eager, c.presenter.Progress)
		if err != nil {
			err = fmt.Errorf("preload pages: %w", err)
		}
	}
	if err != nil {
		c.mu.Lock()
		c.starting = false
		c.mu.Unlock()
		c.logger.Error().Err(err).Msg("viewer start failed")
		return domain.ViewerState{}, err
	}

	c.mu.Lock()
	c.starting = false
	c.started = true
	c.state = domain.ViewerState{Current: 1, Total: total, Phase: domain.Idle}
	state := c.state
	c.mu.Unlock()

	metrics.CurrentPage.Set(1)
	c.logger.Info().Int("total", total).Int("eager", min(c.cfg.Eager, total)).Msg("viewer started")
	c.presenter.Present(state)
	c.prefetchAround(ctx, state.Current, state.Total)
	return state, nil
}

func (c *Controller) GoNext(ctx context.Context) bool {
	return c.Go(ctx, domain.Next)
}

func (c *Controller) GoPrevious(ctx context.Context) bool {
	return c.Go(ctx, domain.Previous)
}

// Go moves one page in dir. It reports false without touching the state at
// a bound, before Start, or while another transition is in flight. A page
// that fails to load does not stop the move.
func (c *Controller) Go(ctx context.Context, dir domain.Direction) bool {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return false
	}
	if c.state.Transitioning() {
		c.mu.Unlock()
		metrics.NavigationDropped.WithLabelValues("transitioning").Inc()
		c.logger.Debug().Str("direction", dir.String()).Msg("navigation dropped during transition")
		return false
	}
	target, ok := c.state.Target(dir)
	if !ok {
		c.mu.Unlock()
		metrics.NavigationDropped.WithLabelValues("boundary").Inc()
		return false
	}
	c.state.Phase = domain.Transitioning
	total := c.state.Total
	c.mu.Unlock()

	if !c.pages.EnsureLoaded(ctx, target) {
		c.logger.Warn().Int("page", target).Msg("showing page without a loaded artifact")
	}
	if err := c.animator.Animate(ctx, domain.Offset(target), c.cfg.Transition); err != nil {
		c.logger.Warn().Err(err).Int("page", target).Msg("transition animation interrupted")
	}

	c.mu.Lock()
	c.state.Current = target
	c.state.Phase = domain.Idle
	state := c.state
	c.mu.Unlock()

	metrics.Transitions.WithLabelValues(dir.String()).Inc()
	metrics.CurrentPage.Set(float64(target))
	c.logger.Debug().Int("page", target).Str("direction", dir.String()).Msg("transition complete")
	c.presenter.Present(state)
	c.prefetchAround(ctx, target, total)
	return true
}

// HandleKey maps arrow keys onto Go. Other keys are ignored.
func (c *Controller) HandleKey(ctx context.Context, key string) bool {
	dir, ok := domain.DirectionForKey(key)
	if !ok {
		return false
	}
	return c.Go(ctx, dir)
}

func (c *Controller) HandleSwipe(ctx context.Context, swipe domain.Swipe) bool {
	dir, ok := domain.DirectionForSwipe(swipe, c.cfg.SwipeThreshold)
	if !ok {
		return false
	}
	return c.Go(ctx, dir)
}

func (c *Controller) State() domain.ViewerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every prefetch task spawned so far has finished.
func (c *Controller) Wait() {
	c.prefetch.Wait()
}

// prefetchAround spawns one background load per missing page in the window.
// The tasks outlive ctx and their failures stay in the page store.
func (c *Controller) prefetchAround(ctx context.Context, current, total int) {
	bg := context.WithoutCancel(ctx)
	for _, index := range domain.Window(current, c.cfg.Window, total) {
		if c.pages.IsLoaded(index) {
			continue
		}
		c.prefetch.Add(1)
		go func() {
			defer c.prefetch.Done()
			c.pages.EnsureLoaded(bg, index)
		}()
	}
}
