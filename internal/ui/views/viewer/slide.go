package viewer

import "math"

type gridKey struct {
	index, w, h int
}

// gridCache keeps rendered pages per size. Loaded pages never change, so
// entries only go stale on resize.
type gridCache struct {
	entries map[gridKey]grid
}

func newGridCache() *gridCache {
	return &gridCache{entries: map[gridKey]grid{}}
}

func (c *gridCache) get(k gridKey) (grid, bool) {
	g, ok := c.entries[k]
	return g, ok
}

func (c *gridCache) put(k gridKey, g grid) {
	c.entries[k] = g
}

func (c *gridCache) reset() {
	clear(c.entries)
}

// visiblePages returns the pages overlapping the viewport at offset, where
// offset is in percent of the viewport width and page i sits at
// (i-1)*100 + offset.
func visiblePages(offset float64, total int) []int {
	if total <= 0 {
		return nil
	}
	first := int(math.Floor(-offset/100)) + 1
	var out []int
	for _, i := range []int{first, first + 1} {
		if i < 1 || i > total {
			continue
		}
		left := float64(i-1)*100 + offset
		if left < 100 && left+100 > 0 {
			out = append(out, i)
		}
	}
	return out
}

// compose copies the visible columns of each page into a w x h frame.
func compose(offset float64, total, w, h int, page func(index int) grid) grid {
	frame := blankGrid(w, h)
	for _, index := range visiblePages(offset, total) {
		g := page(index)
		left := int(math.Round((float64(index-1)*100 + offset) * float64(w) / 100))
		for y := 0; y < h && y < len(g); y++ {
			for x := 0; x < w; x++ {
				src := x - left
				if src < 0 || src >= len(g[y]) {
					continue
				}
				frame[y][x] = g[y][src]
			}
		}
	}
	return frame
}
