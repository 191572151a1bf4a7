package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/vecarrows/gizmo"
)

// EbitenRasterizer strokes segments onto an ebiten image.
type EbitenRasterizer struct {
	Antialias bool
}

func (r EbitenRasterizer) Draw(dst *ebiten.Image, p *Projector, segs []gizmo.Segment) {
	if dst == nil || p == nil {
		return
	}
	for _, s := range segs {
		a, b, width, ok := p.ProjectSegment(s.Start, s.End, s.Thickness)
		if !ok || s.Color == nil {
			continue
		}
		vector.StrokeLine(dst, a.X(), a.Y(), b.X(), b.Y(), width, s.Color, r.Antialias)
	}
}
