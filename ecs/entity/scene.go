package entity

import (
	"fmt"

	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
	"github.com/milk9111/vecarrows/prefabs"
)

// Scene is what BuildScene spawned. Entities holds every entity in spec
// order, named or not; Names indexes the named ones.
type Scene struct {
	Names    map[string]ecs.Entity
	Entities []ecs.Entity
}

// LoadScene reads a scene prefab and spawns it into w.
func LoadScene(w *ecs.World, filename string) (*Scene, error) {
	spec, err := prefabs.LoadScene(filename)
	if err != nil {
		return nil, err
	}
	return BuildScene(w, spec)
}

// BuildScene spawns every entity in spec. On error nothing it created is
// left behind in w.
func BuildScene(w *ecs.World, spec prefabs.SceneSpec) (*Scene, error) {
	if w == nil {
		return nil, fmt.Errorf("build scene: world is nil")
	}

	ctx := &buildContext{Scene: spec.Name, Names: make(map[string]ecs.Entity, len(spec.Entities))}
	created := make([]ecs.Entity, 0, len(spec.Entities))
	for _, es := range spec.Entities {
		e := ecs.CreateEntity(w)
		created = append(created, e)
		if es.Name != "" {
			ctx.Names[es.Name] = e
			if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: es.Name}); err != nil {
				destroyAll(w, created)
				return nil, err
			}
		}
	}

	for i, es := range spec.Entities {
		if err := buildComponents(w, created[i], es, ctx); err != nil {
			destroyAll(w, created)
			return nil, fmt.Errorf("build scene %q: entity %q: %w", spec.Name, es.Name, err)
		}
	}
	return &Scene{Names: ctx.Names, Entities: created}, nil
}

// Despawn destroys every entity of the scene.
func (s *Scene) Despawn(w *ecs.World) {
	if s == nil {
		return
	}
	destroyAll(w, s.Entities)
	s.Entities = nil
	s.Names = nil
}

func destroyAll(w *ecs.World, ents []ecs.Entity) {
	for _, e := range ents {
		ecs.DestroyEntity(w, e)
	}
}
