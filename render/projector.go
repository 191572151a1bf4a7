// Package render turns world-space gizmo segments into pixels or terminal cells.
package render

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/ecs/component"
)

const minStrokePixels = 1

// Projector maps world positions onto a width x height viewport.
type Projector struct {
	viewProj mgl32.Mat4
	width    float32
	height   float32
	// pixels per world unit at clip w == 1
	focal float32
}

func NewProjector(cam component.Camera, width, height int) (*Projector, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid viewport %dx%d", width, height)
	}
	if cam.FOV <= 0 || cam.FOV >= 180 {
		return nil, fmt.Errorf("render: invalid fov %v", cam.FOV)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return nil, fmt.Errorf("render: invalid clip range [%v, %v]", cam.Near, cam.Far)
	}
	up := cam.Up
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	if cam.Target.Sub(cam.Eye).Cross(up).Len() == 0 {
		return nil, fmt.Errorf("render: camera up is parallel to view direction")
	}

	fovy := mgl32.DegToRad(cam.FOV)
	aspect := float32(width) / float32(height)
	proj := mgl32.Perspective(fovy, aspect, cam.Near, cam.Far)
	view := mgl32.LookAtV(cam.Eye, cam.Target, up)
	return &Projector{
		viewProj: proj.Mul4(view),
		width:    float32(width),
		height:   float32(height),
		focal:    float32(height) / (2 * math32.Tan(fovy/2)),
	}, nil
}

func (p *Projector) Size() (int, int) {
	return int(p.width), int(p.height)
}

func (p *Projector) clip(v mgl32.Vec3) mgl32.Vec4 {
	return p.viewProj.Mul4x1(v.Vec4(1))
}

func (p *Projector) toScreen(c mgl32.Vec4) mgl32.Vec2 {
	x := c.X() / c.W()
	y := c.Y() / c.W()
	return mgl32.Vec2{
		(x + 1) * 0.5 * p.width,
		(1 - y) * 0.5 * p.height,
	}
}

// Project returns the screen position of v. ok is false behind the near plane.
func (p *Projector) Project(v mgl32.Vec3) (mgl32.Vec2, bool) {
	c := p.clip(v)
	if c.Z()+c.W() < 0 || c.W() <= 0 {
		return mgl32.Vec2{}, false
	}
	return p.toScreen(c), true
}

// ProjectSegment clips the segment against the near plane and returns its
// screen endpoints plus the stroke width for a world-space thickness.
func (p *Projector) ProjectSegment(start, end mgl32.Vec3, thickness float32) (a, b mgl32.Vec2, width float32, ok bool) {
	ca, cb := p.clip(start), p.clip(end)
	da, db := ca.Z()+ca.W(), cb.Z()+cb.W()
	if da < 0 && db < 0 {
		return a, b, 0, false
	}
	if da < 0 {
		ca = lerp4(ca, cb, da/(da-db))
	} else if db < 0 {
		cb = lerp4(ca, cb, da/(da-db))
	}
	if ca.W() <= 0 || cb.W() <= 0 {
		return a, b, 0, false
	}

	mid := (ca.W() + cb.W()) / 2
	width = max(thickness*p.focal/mid, minStrokePixels)
	return p.toScreen(ca), p.toScreen(cb), width, true
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}
