package system

import (
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
)

// maxHierarchyDepth bounds parent walks so a Parent cycle cannot hang a frame.
const maxHierarchyDepth = 64

// TransformSystem writes GlobalTransform for every entity with a Transform,
// composing it with its Parent chain.
type TransformSystem struct{}

func NewTransformSystem() *TransformSystem {
	return &TransformSystem{}
}

func (s *TransformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		g := worldTransform(w, e, *t, 0)
		if existing, ok := ecs.Get(w, e, component.GlobalTransformComponent.Kind()); ok {
			*existing = g
			return
		}
		_ = ecs.Add(w, e, component.GlobalTransformComponent.Kind(), &g)
	})
}

func worldTransform(w *ecs.World, e ecs.Entity, local component.Transform, depth int) component.GlobalTransform {
	root := component.GlobalTransform{Rotation: component.NewTransform().Rotation, Scale: component.NewTransform().Scale}
	p, ok := ecs.Get(w, e, component.ParentComponent.Kind())
	if !ok || depth >= maxHierarchyDepth {
		return root.Mul(local)
	}
	parent := ecs.Entity(p.Entity)
	pt, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
	if !ok {
		return root.Mul(local)
	}
	return worldTransform(w, parent, *pt, depth+1).Mul(local)
}
