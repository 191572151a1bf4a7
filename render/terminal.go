package render

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/gizmo"
)

// CellScreen is the part of tcell.Screen the terminal rasterizer writes to.
type CellScreen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// TerminalRasterizer plots segments as runes, one cell per step.
// Terminal cells are about twice as tall as wide, so projectors for it are
// built with the cell grid height doubled and rows are halved on output.
type TerminalRasterizer struct {
	Rune rune
}

func (r TerminalRasterizer) Draw(scr CellScreen, p *Projector, segs []gizmo.Segment) {
	if scr == nil || p == nil {
		return
	}
	cols, rows := scr.Size()
	ch := r.Rune
	if ch == 0 {
		ch = '*'
	}
	for _, s := range segs {
		a, b, _, ok := p.ProjectSegment(s.Start, s.End, s.Thickness)
		if !ok {
			continue
		}
		a = mgl32.Vec2{a.X(), a.Y() / 2}
		b = mgl32.Vec2{b.X(), b.Y() / 2}
		a, b, ok = clipRect(a, b, float32(cols), float32(rows))
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(cellColor(s.Color))
		plot(int(math32.Floor(a.X())), int(math32.Floor(a.Y())), int(math32.Floor(b.X())), int(math32.Floor(b.Y())), func(x, y int) {
			if x >= 0 && y >= 0 && x < cols && y < rows {
				scr.SetContent(x, y, ch, nil, style)
			}
		})
	}
}

func cellColor(c color.Color) tcell.Color {
	if c == nil {
		return tcell.ColorDefault
	}
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// clipRect is Liang-Barsky against [0,w) x [0,h).
func clipRect(a, b mgl32.Vec2, w, h float32) (mgl32.Vec2, mgl32.Vec2, bool) {
	d := b.Sub(a)
	t0, t1 := float32(0), float32(1)
	edges := [4][2]float32{
		{-d.X(), a.X()},
		{d.X(), w - 1e-3 - a.X()},
		{-d.Y(), a.Y()},
		{d.Y(), h - 1e-3 - a.Y()},
	}
	for _, e := range edges {
		pp, q := e[0], e[1]
		if pp == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / pp
		if pp < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}
	return a.Add(d.Mul(t0)), a.Add(d.Mul(t1)), true
}

// plot walks a Bresenham line from (x0,y0) to (x1,y1) inclusive.
func plot(x0, y0, x1, y1 int, fn func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		fn(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
