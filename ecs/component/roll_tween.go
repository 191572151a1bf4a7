package component

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RollTween eases an entity's rotation from From to To over Frames updates.
type RollTween struct {
	From   mgl32.Quat
	To     mgl32.Quat
	Frame  int
	Frames int
}

var RollTweenComponent = NewComponent[RollTween]()

// RandomRotation draws a unit quaternion uniformly over all orientations.
func RandomRotation(rng *rand.Rand) mgl32.Quat {
	u, v, w := rng.Float32(), rng.Float32(), rng.Float32()
	su, snu := math32.Sqrt(u), math32.Sqrt(1-u)
	return mgl32.Quat{
		W: su * math32.Cos(2*math32.Pi*w),
		V: mgl32.Vec3{
			snu * math32.Sin(2*math32.Pi*v),
			snu * math32.Cos(2*math32.Pi*v),
			su * math32.Sin(2*math32.Pi*w),
		},
	}
}
