package out

import (
	"context"

	"folio/internal/modules/pages/domain"
)

// Loader materializes one page. Each call completes exactly once, with an
// artifact or an error.
type Loader interface {
	Load(ctx context.Context, index int, locator string) (domain.Artifact, error)
}

// Discoverer determines how many pages the document has.
type Discoverer interface {
	Discover(ctx context.Context) (int, error)
}

// Prober checks whether the asset behind a locator exists.
type Prober interface {
	Exists(ctx context.Context, locator string) (bool, error)
}

// DocumentHandle is a decoded document that knows its own page count.
type DocumentHandle interface {
	NumPages(ctx context.Context) (int, error)
}

// DisplaySurface holds the materialized page elements in display order. It
// only grows.
type DisplaySurface interface {
	Indices() []int
	Append(el domain.Element)
	InsertBefore(el domain.Element, before int) error
	Element(index int) (domain.Element, bool)
}
