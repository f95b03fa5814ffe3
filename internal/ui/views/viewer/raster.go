package viewer

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	pagesdto "folio/internal/modules/pages/dto"
	"folio/internal/ui/theme"
)

// cell is one terminal cell. Image cells draw the upper half block with the
// top pixel as foreground and the bottom pixel as background.
type cell struct {
	r  rune
	fg lipgloss.Color
	bg lipgloss.Color
}

type grid [][]cell

func blankGrid(w, h int) grid {
	g := make(grid, h)
	for y := range g {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: ' ', fg: theme.Text, bg: theme.Base}
		}
		g[y] = row
	}
	return g
}

// rasterize scales img to fit w x h cells, keeping its aspect ratio, and
// centres it on the base colour.
func rasterize(img image.Image, w, h int) grid {
	g := blankGrid(w, h)
	if img == nil || w <= 0 || h <= 0 {
		return g
	}
	src := img.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 {
		return g
	}
	pw, ph := w, h*2
	dw, dh := pw, src.Dy()*pw/src.Dx()
	if dh > ph {
		dh = ph
		dw = src.Dx() * ph / src.Dy()
	}
	dw, dh = max(dw, 1), max(dh, 1)

	canvas := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(hexColor(string(theme.Base))), image.Point{}, draw.Src)
	x0, y0 := (pw-dw)/2, (ph-dh)/2
	draw.ApproxBiLinear.Scale(canvas, image.Rect(x0, y0, x0+dw, y0+dh), img, src, draw.Over, nil)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g[y][x] = cell{
				r:  '▀',
				fg: colorOf(canvas.RGBAAt(x, 2*y)),
				bg: colorOf(canvas.RGBAAt(x, 2*y+1)),
			}
		}
	}
	return g
}

// textGrid lays out lines top-aligned with a one-cell margin, truncating
// what does not fit.
func textGrid(lines []string, w, h int) grid {
	g := blankGrid(w, h)
	for i, line := range lines {
		y := i + 1
		if y >= h-1 {
			break
		}
		x := 2
		for _, r := range line {
			if x >= w-2 {
				break
			}
			g[y][x].r = r
			x++
		}
	}
	return g
}

// centeredGrid writes msg in the middle of an otherwise blank page.
func centeredGrid(msg string, fg lipgloss.Color, w, h int) grid {
	g := blankGrid(w, h)
	if h == 0 {
		return g
	}
	runes := []rune(msg)
	if len(runes) > w {
		runes = runes[:w]
	}
	y := h / 2
	x := (w - len(runes)) / 2
	for i, r := range runes {
		g[y][x+i] = cell{r: r, fg: fg, bg: theme.Base}
	}
	return g
}

func pageGrid(el pagesdto.ElementOutput, ok bool, index, w, h int) grid {
	switch {
	case !ok:
		return centeredGrid(fmt.Sprintf("loading page %d", index), theme.Subtext0, w, h)
	case el.Failed:
		return centeredGrid(fmt.Sprintf("page %d could not be loaded", index), theme.Peach, w, h)
	case el.Image != nil:
		return rasterize(el.Image, w, h)
	case len(el.Lines) > 0:
		return textGrid(el.Lines, w, h)
	default:
		return centeredGrid(fmt.Sprintf("page %d is empty", index), theme.Subtext0, w, h)
	}
}

// render turns cells into styled text, one style per run of equal colours.
func (g grid) render() string {
	var b strings.Builder
	for y, row := range g {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].fg == row[start].fg && row[x].bg == row[start].bg {
				continue
			}
			var run strings.Builder
			for _, c := range row[start:x] {
				run.WriteRune(c.r)
			}
			style := lipgloss.NewStyle().Foreground(row[start].fg).Background(row[start].bg)
			b.WriteString(style.Render(run.String()))
			start = x
		}
	}
	return b.String()
}

func colorOf(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func hexColor(hex string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
