package out

import (
	"fmt"
	"slices"
	"sync"

	"folio/internal/modules/pages/domain"
	pagesout "folio/internal/modules/pages/port/out"
)

// MemorySurface is an in-process display surface. The TUI reads from it.
type MemorySurface struct {
	mu       sync.RWMutex
	elements []domain.Element
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

var _ pagesout.DisplaySurface = (*MemorySurface)(nil)

func (s *MemorySurface) Indices() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.elements))
	for i, el := range s.elements {
		out[i] = el.Index
	}
	return out
}

func (s *MemorySurface) Append(el domain.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = append(s.elements, el)
}

func (s *MemorySurface) InsertBefore(el domain.Element, before int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos := slices.IndexFunc(s.elements, func(e domain.Element) bool { return e.Index == before })
	if pos < 0 {
		return fmt.Errorf("insert page %d: no element for page %d", el.Index, before)
	}
	s.elements = slices.Insert(s.elements, pos, el)
	return nil
}

func (s *MemorySurface) Element(index int) (domain.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, el := range s.elements {
		if el.Index == index {
			return el, true
		}
	}
	return domain.Element{}, false
}

func (s *MemorySurface) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}
