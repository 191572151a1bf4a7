package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is an entity's translation, rotation and scale relative to its parent.
// Points are scaled, then rotated, then translated.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

var TransformComponent = NewComponent[Transform]()

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// TransformFromTranslation returns an identity transform moved to (x, y, z).
func TransformFromTranslation(x, y, z float32) Transform {
	t := NewTransform()
	t.Translation = mgl32.Vec3{x, y, z}
	return t
}

// GlobalTransform is the world-space transform of an entity after hierarchy
// propagation. Only the transform system writes it.
type GlobalTransform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

var GlobalTransformComponent = NewComponent[GlobalTransform]()

// Mul places local, expressed in g's frame, into world space.
func (g GlobalTransform) Mul(local Transform) GlobalTransform {
	rot := rotationOrIdent(g.Rotation)
	return GlobalTransform{
		Translation: g.Translation.Add(rot.Rotate(MulVec3(g.Scale, local.Translation))),
		Rotation:    rot.Mul(rotationOrIdent(local.Rotation)),
		Scale:       MulVec3(g.Scale, local.Scale),
	}
}

// MulVec3 multiplies two vectors per axis.
func MulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// A zero quaternion is what an unset Rotation field holds; treat it as no rotation.
func rotationOrIdent(q mgl32.Quat) mgl32.Quat {
	if q.W == 0 && q.V == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return q
}
