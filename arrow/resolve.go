// Package arrow turns VecArrow annotations into world-space arrow geometry.
// Everything here is a pure function of the annotation, the entity's world
// transform and the Config.
package arrow

import (
	"errors"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/ecs/component"
)

var (
	// ErrMalformed covers non-finite transforms or directions and unknown spaces.
	ErrMalformed = errors.New("arrow: malformed input")
	// ErrDegenerate is returned for directions that resolve to zero length.
	ErrDegenerate = errors.New("arrow: zero-length direction")
)

// Arrow is the resolved geometry for one entity in one frame.
type Arrow struct {
	Start      mgl32.Vec3
	End        mgl32.Vec3
	Direction  mgl32.Vec3
	Length     float32
	Color      color.Color
	Thickness  float32
	// HeadLength overrides the configured head size when > 0.
	HeadLength float32
}

// Resolve places a in world space. A non-nil error means nothing should be
// drawn for this entity this frame.
func Resolve(t component.GlobalTransform, a component.VecArrow, cfg Config) (Arrow, error) {
	if !Finite(t) {
		return Arrow{}, ErrMalformed
	}
	if a.Space != component.Local && a.Space != component.World {
		return Arrow{}, ErrMalformed
	}

	dir := ResolveDirection(a.Direction, a.Space, t, cfg.LocalScale)
	if !finiteVec(dir) {
		return Arrow{}, ErrMalformed
	}
	length := dir.Len()
	if length <= cfg.Epsilon {
		return Arrow{}, ErrDegenerate
	}

	end := t.Translation.Add(dir)
	if !finite(length) || !finiteVec(end) {
		return Arrow{}, ErrMalformed
	}

	out := Arrow{
		Start:     t.Translation,
		End:       end,
		Direction: dir,
		Length:    length,
		Color:     cfg.DefaultColor,
		Thickness: cfg.DefaultThickness,
	}
	if a.Color != nil {
		out.Color = a.Color
	}
	// non-finite or non-positive overrides fall back to the defaults
	if a.Thickness != nil && finite(*a.Thickness) && *a.Thickness > 0 {
		out.Thickness = *a.Thickness
	}
	if a.HeadLength != nil && finite(*a.HeadLength) && *a.HeadLength > 0 {
		out.HeadLength = *a.HeadLength
	}
	if left, right := out.Head(cfg); !finiteVec(left) || !finiteVec(right) {
		return Arrow{}, ErrMalformed
	}
	return out, nil
}

// ResolveDirection maps direction into world space. World directions come
// back unchanged; Local ones pick up the transform's rotation and scale.
func ResolveDirection(direction mgl32.Vec3, space component.CoordinateSpace, t component.GlobalTransform, mode ScaleMode) mgl32.Vec3 {
	switch space {
	case component.Local:
		switch mode {
		case ScaleAfterRotation:
			return component.MulVec3(t.Rotation.Rotate(direction), t.Scale)
		case ScaleIgnored:
			return t.Rotation.Rotate(direction)
		default:
			return t.Rotation.Rotate(component.MulVec3(direction, t.Scale))
		}
	default:
		return direction
	}
}

// Finite reports whether every component of t is a finite number.
func Finite(t component.GlobalTransform) bool {
	return finiteVec(t.Translation) &&
		finiteVec(t.Scale) &&
		finiteVec(t.Rotation.V) &&
		finite(t.Rotation.W)
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

func finiteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
