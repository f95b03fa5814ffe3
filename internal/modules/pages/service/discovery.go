package service

import (
	"context"
	"fmt"

	"folio/internal/modules/pages/domain"
	pagesout "folio/internal/modules/pages/port/out"
	apperrors "folio/internal/platform/errors"
)

// FixedDiscoverer reports a configured page count.
type FixedDiscoverer struct {
	total int
}

func NewFixedDiscoverer(total int) *FixedDiscoverer {
	return &FixedDiscoverer{total: total}
}

func (d *FixedDiscoverer) Discover(context.Context) (int, error) {
	if d.total <= 0 {
		return 0, fmt.Errorf("%w: fixed total must be positive, got %d", apperrors.ErrDiscovery, d.total)
	}
	return d.total, nil
}

// ProbeDiscoverer checks pages 1, 2, ... and stops at the first missing one.
// At most maxProbe pages are checked.
type ProbeDiscoverer struct {
	prober   pagesout.Prober
	locate   domain.Locator
	maxProbe int
}

func NewProbeDiscoverer(prober pagesout.Prober, locate domain.Locator, maxProbe int) *ProbeDiscoverer {
	return &ProbeDiscoverer{prober: prober, locate: locate, maxProbe: maxProbe}
}

func (d *ProbeDiscoverer) Discover(ctx context.Context) (int, error) {
	if d.maxProbe <= 0 {
		return 0, fmt.Errorf("%w: max probe must be positive", apperrors.ErrDiscovery)
	}
	count := 0
	for index := 1; index <= d.maxProbe; index++ {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("%w: %w", apperrors.ErrDiscovery, err)
		}
		ok, err := d.prober.Exists(ctx, d.locate(index))
		if err != nil {
			return 0, fmt.Errorf("%w: probe page %d: %w", apperrors.ErrDiscovery, index, err)
		}
		if !ok {
			break
		}
		count = index
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: no page found at %s", apperrors.ErrDiscovery, d.locate(1))
	}
	return count, nil
}

// DocumentDiscoverer reads the page count off a decoded document.
type DocumentDiscoverer struct {
	doc pagesout.DocumentHandle
}

func NewDocumentDiscoverer(doc pagesout.DocumentHandle) *DocumentDiscoverer {
	return &DocumentDiscoverer{doc: doc}
}

func (d *DocumentDiscoverer) Discover(ctx context.Context) (int, error) {
	total, err := d.doc.NumPages(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrDiscovery, err)
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: document has no pages", apperrors.ErrDiscovery)
	}
	return total, nil
}
