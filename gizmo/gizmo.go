// Package gizmo is the immediate-mode line layer debug systems draw into.
// Nothing submitted here survives past the frame it was drawn in.
package gizmo

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Drawer accepts world-space line segments.
type Drawer interface {
	DrawSegment(start, end mgl32.Vec3, c color.Color, thickness float32)
}

// DrawerFunc adapts a function to Drawer.
type DrawerFunc func(start, end mgl32.Vec3, c color.Color, thickness float32)

func (f DrawerFunc) DrawSegment(start, end mgl32.Vec3, c color.Color, thickness float32) {
	f(start, end, c, thickness)
}

// Segment is one submitted draw call.
type Segment struct {
	Start     mgl32.Vec3
	End       mgl32.Vec3
	Color     color.Color
	Thickness float32
}

// Multi fans every segment out to each drawer in order.
type Multi []Drawer

func (m Multi) DrawSegment(start, end mgl32.Vec3, c color.Color, thickness float32) {
	for _, d := range m {
		if d != nil {
			d.DrawSegment(start, end, c, thickness)
		}
	}
}
