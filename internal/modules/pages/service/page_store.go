package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"folio/internal/modules/pages/domain"
	pagesout "folio/internal/modules/pages/port/out"
	"folio/internal/platform/clock"
	apperrors "folio/internal/platform/errors"
	"folio/internal/platform/metrics"
)

// PageStore materializes pages by index, at most once each. Concurrent
// callers for the same index share one in-flight load.
type PageStore struct {
	discoverer pagesout.Discoverer
	loader     pagesout.Loader
	surface    pagesout.DisplaySurface
	locate     domain.Locator
	clock      clock.Clock
	logger     zerolog.Logger

	discoverMu sync.Mutex

	mu         sync.RWMutex
	discovered bool
	total      int
	pages      map[int]*domain.Page

	inflight singleflight.Group
}

func NewPageStore(
	discoverer pagesout.Discoverer,
	loader pagesout.Loader,
	surface pagesout.DisplaySurface,
	locate domain.Locator,
	clk clock.Clock,
	logger zerolog.Logger,
) *PageStore {
	return &PageStore{
		discoverer: discoverer,
		loader:     loader,
		surface:    surface,
		locate:     locate,
		clock:      clk,
		logger:     logger,
		pages:      map[int]*domain.Page{},
	}
}

// DiscoverTotal runs the discovery strategy once; later calls return the
// cached total.
func (s *PageStore) DiscoverTotal(ctx context.Context) (int, error) {
	s.discoverMu.Lock()
	defer s.discoverMu.Unlock()

	s.mu.RLock()
	if s.discovered {
		total := s.total
		s.mu.RUnlock()
		return total, nil
	}
	s.mu.RUnlock()

	total, err := s.discoverer.Discover(ctx)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.total = total
	s.discovered = true
	s.mu.Unlock()

	s.logger.Info().Int("total", total).Msg("pages discovered")
	return total, nil
}

func (s *PageStore) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

func (s *PageStore) Locator(index int) string {
	return s.locate(index)
}

// EnsureLoaded makes page index available. It never returns a load error:
// failures are recorded on the page and reported through the outcome.
// A canceled ctx stops the wait, not the load.
func (s *PageStore) EnsureLoaded(ctx context.Context, index int) domain.Outcome {
	s.mu.Lock()
	if !s.discovered {
		s.mu.Unlock()
		return domain.Outcome{Index: index, State: domain.Failed, Err: apperrors.ErrNotDiscovered}
	}
	if index < 1 || index > s.total {
		total := s.total
		s.mu.Unlock()
		return domain.Outcome{Index: index, State: domain.Failed, Err: fmt.Errorf("%w: %d not in [1, %d]", apperrors.ErrPageOutOfRange, index, total)}
	}
	page := s.pageLocked(index)
	if page.State.Settled() {
		out := outcomeOf(page)
		s.mu.Unlock()
		return out
	}
	joined := page.State == domain.Loading
	page.State = domain.Loading
	s.mu.Unlock()

	if joined {
		metrics.PageLoadCoalesced.Inc()
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(strconv.Itoa(index), func() (any, error) {
		return s.materialize(loadCtx, index), nil
	})
	select {
	case res := <-ch:
		return res.Val.(domain.Outcome)
	case <-ctx.Done():
		return domain.Outcome{Index: index, State: domain.Loading, Err: ctx.Err()}
	}
}

// materialize runs inside the single-flight group. A page that settled
// between the caller's check and this call is not loaded again.
func (s *PageStore) materialize(ctx context.Context, index int) domain.Outcome {
	s.mu.Lock()
	page := s.pageLocked(index)
	if page.State.Settled() {
		out := outcomeOf(page)
		s.mu.Unlock()
		return out
	}
	page.State = domain.Loading
	locator := page.Locator
	s.mu.Unlock()

	start := s.clock.Now()
	artifact, err := s.loader.Load(ctx, index, locator)
	elapsed := clock.Elapsed(s.clock, start)
	metrics.PageLoadDuration.Observe(elapsed.Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	el := domain.Element{Index: index}
	if err != nil {
		page.State = domain.Failed
		page.Err = fmt.Errorf("%w: page %d: %w", apperrors.ErrPageLoad, index, err)
		el.Failed = true
		el.Reason = err.Error()
		metrics.PageLoads.WithLabelValues("failed").Inc()
		s.logger.Warn().Err(err).Int("page", index).Str("locator", locator).Msg("page load failed")
	} else {
		page.State = domain.Loaded
		page.Artifact = &artifact
		el.Artifact = page.Artifact
		metrics.PageLoads.WithLabelValues("loaded").Inc()
		s.logger.Debug().Int("page", index).Dur("duration", elapsed).Msg("page loaded")
	}
	if err := s.insertLocked(el); err != nil {
		s.logger.Error().Err(err).Int("page", index).Msg("insert page element")
	}
	return outcomeOf(page)
}

// insertLocked keeps the surface in ascending index order even when loads
// complete out of order.
func (s *PageStore) insertLocked(el domain.Element) error {
	if _, exists := s.surface.Element(el.Index); exists {
		return nil
	}
	if before, ok := domain.InsertBefore(s.surface.Indices(), el.Index); ok {
		return s.surface.InsertBefore(el, before)
	}
	s.surface.Append(el)
	return nil
}

func (s *PageStore) IsLoaded(index int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[index]
	return ok && page.State == domain.Loaded
}

func (s *PageStore) State(index int) domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if page, ok := s.pages[index]; ok {
		return page.State
	}
	return domain.Unknown
}

// Preload materializes pages 1..min(count, total) concurrently and reports
// advisory progress after each one settles. Reports are serialized, so done
// never decreases between calls.
func (s *PageStore) Preload(ctx context.Context, count int, progress func(done, want int)) error {
	total := s.Total()
	if total == 0 {
		return apperrors.ErrNotDiscovered
	}
	want := min(count, total)
	if want <= 0 {
		return nil
	}
	if progress != nil {
		progress(0, want)
	}

	var (
		reportMu sync.Mutex
		done     int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(want)
	for index := 1; index <= want; index++ {
		g.Go(func() error {
			s.EnsureLoaded(gctx, index)
			reportMu.Lock()
			defer reportMu.Unlock()
			done++
			if progress != nil {
				progress(done, want)
			}
			return nil
		})
	}
	return g.Wait()
}

// Snapshot lists every discovered page in index order.
func (s *PageStore) Snapshot() []domain.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Page, 0, s.total)
	for index := 1; index <= s.total; index++ {
		if page, ok := s.pages[index]; ok {
			out = append(out, *page)
			continue
		}
		out = append(out, domain.Page{Index: index, Locator: s.locate(index), State: domain.Unknown})
	}
	return out
}

func (s *PageStore) Element(index int) (domain.Element, bool) {
	return s.surface.Element(index)
}

func (s *PageStore) pageLocked(index int) *domain.Page {
	page, ok := s.pages[index]
	if !ok {
		page = &domain.Page{Index: index, Locator: s.locate(index), State: domain.Unknown}
		s.pages[index] = page
	}
	return page
}

func outcomeOf(page *domain.Page) domain.Outcome {
	return domain.Outcome{Index: page.Index, State: page.State, Err: page.Err}
}
