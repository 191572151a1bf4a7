package arrow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/gizmo"
)

// Head returns the far ends of the two arrowhead wings. Both wings start at
// a.End, lean back along -Direction by cfg.HeadAngle and lie in the plane
// spanned by Direction and perpendicular(Direction). Wing length is
// a.HeadLength when set, else the configured fraction of the shaft.
func (a Arrow) Head(cfg Config) (left, right mgl32.Vec3) {
	dir := a.Direction.Mul(1 / a.Length)
	side := perpendicular(dir)

	size := a.HeadLength
	if size <= 0 {
		size = math32.Max(a.Length*cfg.HeadFraction, cfg.HeadMinLength)
	}
	back := dir.Mul(-math32.Cos(cfg.HeadAngle) * size)
	off := side.Mul(math32.Sin(cfg.HeadAngle) * size)

	base := a.End.Add(back)
	return base.Add(off), base.Sub(off)
}

// Segments returns shaft, left wing and right wing in draw order.
func (a Arrow) Segments(cfg Config) [3]gizmo.Segment {
	left, right := a.Head(cfg)
	return [3]gizmo.Segment{
		{Start: a.Start, End: a.End, Color: a.Color, Thickness: a.Thickness},
		{Start: a.End, End: left, Color: a.Color, Thickness: a.Thickness},
		{Start: a.End, End: right, Color: a.Color, Thickness: a.Thickness},
	}
}

// Emit submits the arrow to d.
func Emit(d gizmo.Drawer, a Arrow, cfg Config) {
	for _, s := range a.Segments(cfg) {
		d.DrawSegment(s.Start, s.End, s.Color, s.Thickness)
	}
}

// perpendicular picks a unit vector orthogonal to the unit vector dir. World
// up is used unless dir is nearly vertical, so the choice is stable frame to
// frame.
func perpendicular(dir mgl32.Vec3) mgl32.Vec3 {
	ref := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Dot(ref)) > 0.99 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	return dir.Cross(ref).Normalize()
}
