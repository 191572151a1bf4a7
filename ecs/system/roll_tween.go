package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
)

// RollTweenSystem advances RollTweens and drops them once they finish.
type RollTweenSystem struct {
	done []ecs.Entity
}

func NewRollTweenSystem() *RollTweenSystem {
	return &RollTweenSystem{}
}

func (s *RollTweenSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.done = s.done[:0]
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.RollTweenComponent.Kind(), func(e ecs.Entity, t *component.Transform, r *component.RollTween) {
		r.Frame++
		if r.Frames <= 0 || r.Frame >= r.Frames {
			t.Rotation = r.To.Normalize()
			s.done = append(s.done, e)
			return
		}
		t.Rotation = mgl32.QuatSlerp(r.From, r.To, easeInOut(float32(r.Frame)/float32(r.Frames)))
	})
	for _, e := range s.done {
		ecs.Remove(w, e, component.RollTweenComponent.Kind())
	}
}

// easeInOut is quadratic ease-in-out on [0, 1].
func easeInOut(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - 2*(1-t)*(1-t)
}
