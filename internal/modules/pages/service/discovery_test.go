package service_test

import (
	"context"
	"errors"
	"testing"

	"folio/internal/modules/pages/domain"
	"folio/internal/modules/pages/service"
	apperrors "folio/internal/platform/errors"
)

type setProber struct {
	present map[string]bool
	failOn  string
	checked []string
}

func (p *setProber) Exists(_ context.Context, locator string) (bool, error) {
	p.checked = append(p.checked, locator)
	if locator == p.failOn {
		return false, errors.New("connection reset")
	}
	return p.present[locator], nil
}

func presentPages(locate domain.Locator, indices ...int) map[string]bool {
	out := map[string]bool{}
	for _, i := range indices {
		out[locate(i)] = true
	}
	return out
}

func TestProbeStopsAtFirstMissingPage(t *testing.T) {
	t.Parallel()
	locate := domain.NewPatternLocator("assets/images", "page-%02d.png")
	prober := &setProber{present: presentPages(locate, 1, 2, 3, 5, 6)}
	total, err := service.NewProbeDiscoverer(prober, locate, 100).Discover(context.Background())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected 3 pages, got %d", total)
	}
	if len(prober.checked) != 4 {
		t.Fatalf("expected probing to stop after the first miss, checked %v", prober.checked)
	}
}

func TestProbeIsCappedAtMaxProbe(t *testing.T) {
	t.Parallel()
	locate := domain.NewPatternLocator("", "page-%02d.png")
	prober := &setProber{present: presentPages(locate, 1, 2, 3, 4, 5, 6, 7, 8)}
	total, err := service.NewProbeDiscoverer(prober, locate, 5).Discover(context.Background())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if total != 5 || len(prober.checked) != 5 {
		t.Fatalf("expected cap at 5, got total=%d checked=%d", total, len(prober.checked))
	}
}

func TestProbeFailures(t *testing.T) {
	t.Parallel()
	locate := domain.NewPatternLocator("", "page-%02d.png")
	_, err := service.NewProbeDiscoverer(&setProber{}, locate, 10).Discover(context.Background())
	if !errors.Is(err, apperrors.ErrDiscovery) {
		t.Fatalf("expected discovery failure for empty source, got %v", err)
	}
	prober := &setProber{present: presentPages(locate, 1, 2), failOn: locate(2)}
	_, err = service.NewProbeDiscoverer(prober, locate, 10).Discover(context.Background())
	if !errors.Is(err, apperrors.ErrDiscovery) {
		t.Fatalf("expected discovery failure on probe error, got %v", err)
	}
}

type fakeDocument struct {
	pages int
	err   error
}

func (d fakeDocument) NumPages(context.Context) (int, error) { return d.pages, d.err }

func TestFixedAndDocumentDiscovery(t *testing.T) {
	t.Parallel()
	if total, err := service.NewFixedDiscoverer(65).Discover(context.Background()); err != nil || total != 65 {
		t.Fatalf("fixed: %d %v", total, err)
	}
	if _, err := service.NewFixedDiscoverer(0).Discover(context.Background()); !errors.Is(err, apperrors.ErrDiscovery) {
		t.Fatalf("expected fixed zero to fail, got %v", err)
	}
	if total, err := service.NewDocumentDiscoverer(fakeDocument{pages: 12}).Discover(context.Background()); err != nil || total != 12 {
		t.Fatalf("document: %d %v", total, err)
	}
	if _, err := service.NewDocumentDiscoverer(fakeDocument{err: errors.New("bad xref")}).Discover(context.Background()); !errors.Is(err, apperrors.ErrDiscovery) {
		t.Fatalf("expected document error to be a discovery failure, got %v", err)
	}
	if _, err := service.NewDocumentDiscoverer(fakeDocument{}).Discover(context.Background()); !errors.Is(err, apperrors.ErrDiscovery) {
		t.Fatalf("expected empty document to fail, got %v", err)
	}
}
