package domain

import (
	"fmt"
	"image"
	"sort"
	"strings"
)

type State int

const (
	Unknown State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Settled reports whether a page reached a final state. Failed pages are
// not retried.
func (s State) Settled() bool {
	return s == Loaded || s == Failed
}

// Artifact is the decoded, displayable form of a page. Image sources fill
// Image, document sources fill Lines.
type Artifact struct {
	Image image.Image
	Lines []string
}

type Page struct {
	Index    int
	Locator  string
	State    State
	Artifact *Artifact
	Err      error
}

// Outcome is what a caller of EnsureLoaded observes.
type Outcome struct {
	Index int
	State State
	Err   error
}

// Element is the display surface entry for a materialized page. Failed pages
// get a placeholder element so the failure stays in that page's slot.
type Element struct {
	Index    int
	Artifact *Artifact
	Failed   bool
	Reason   string
}

// Locator maps a 1-based page index to the asset it is read from.
type Locator func(index int) string

// NewPatternLocator formats index with a printf pattern (page-%02d.png) and
// joins it onto base. URL bases keep their scheme intact.
func NewPatternLocator(base, pattern string) Locator {
	base = strings.TrimRight(base, "/")
	return func(index int) string {
		name := fmt.Sprintf(pattern, index)
		if base == "" {
			return name
		}
		return base + "/" + name
	}
}

// DocumentLocator names pages of a single document file.
func DocumentLocator(path string) Locator {
	return func(index int) string {
		return fmt.Sprintf("%s#page=%d", path, index)
	}
}

// InsertBefore returns the first displayed index strictly greater than index.
// ok is false when the element belongs at the end.
func InsertBefore(displayed []int, index int) (before int, ok bool) {
	for _, d := range displayed {
		if d > index {
			return d, true
		}
	}
	return 0, false
}

// Ascending reports whether indices are strictly increasing.
func Ascending(indices []int) bool {
	return sort.SliceIsSorted(indices, func(i, j int) bool { return indices[i] < indices[j] }) && unique(indices)
}

func unique(indices []int) bool {
	for i := 1; i < len(indices); i++ {
		if indices[i] == indices[i-1] {
			return false
		}
	}
	return true
}
