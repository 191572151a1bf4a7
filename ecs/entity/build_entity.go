package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
	"github.com/milk9111/vecarrows/prefabs"
)

type buildContext struct {
	Scene string
	Names map[string]ecs.Entity
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":       addTransform,
	"parent":          addParent,
	"vec_arrow":       addVecArrow,
	"camera":          addCamera,
	"cube_tag":        addCubeTag,
	"turntable_tag":   addTurntableTag,
	"scripted_motion": addScriptedMotion,
}

var componentBuildOrder = []string{
	"transform",
	"parent",
	"cube_tag",
	"turntable_tag",
	"camera",
	"vec_arrow",
	"scripted_motion",
}

func buildComponents(w *ecs.World, e ecs.Entity, spec prefabs.EntityBuildSpec, ctx *buildContext) error {
	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			return fmt.Errorf("add %q: %w", name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("no builder for component %q", names[0])
	}
	return nil
}

func vec3(v []float32, fallback mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return fallback, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	default:
		return mgl32.Vec3{}, fmt.Errorf("expected [x, y, z], got %d values", len(v))
	}
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.NewTransform()
	if t.Translation, err = vec3(spec.Translation, t.Translation); err != nil {
		return fmt.Errorf("translation: %w", err)
	}
	if t.Scale, err = vec3(spec.Scale, t.Scale); err != nil {
		return fmt.Errorf("scale: %w", err)
	}
	deg, err := vec3(spec.RotationDeg, mgl32.Vec3{})
	if err != nil {
		return fmt.Errorf("rotation_deg: %w", err)
	}
	t.Rotation = mgl32.QuatRotate(mgl32.DegToRad(deg.Y()), mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(mgl32.DegToRad(deg.X()), mgl32.Vec3{1, 0, 0})).
		Mul(mgl32.QuatRotate(mgl32.DegToRad(deg.Z()), mgl32.Vec3{0, 0, 1}))
	return ecs.Add(w, e, component.TransformComponent.Kind(), &t)
}

type parentSpec = prefabs.ParentComponentSpec

func addParent(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[parentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode parent spec: %w", err)
	}
	parent, ok := ctx.Names[spec.Name]
	if !ok {
		return fmt.Errorf("unknown parent %q", spec.Name)
	}
	if parent == e {
		return fmt.Errorf("entity cannot parent itself")
	}
	return ecs.Add(w, e, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(parent)})
}

type vecArrowSpec = prefabs.VecArrowComponentSpec

func addVecArrow(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[vecArrowSpec](raw)
	if err != nil {
		return fmt.Errorf("decode vec arrow spec: %w", err)
	}
	dir, err := vec3(spec.Direction, mgl32.Vec3{})
	if err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	space, err := component.ParseCoordinateSpace(spec.Space)
	if err != nil {
		return err
	}
	a := component.NewVecArrow(dir, space)
	if spec.Color != nil && spec.Color.Color != nil {
		a = a.WithColor(spec.Color.Color)
	}
	if spec.Thickness != nil {
		a = a.WithThickness(*spec.Thickness)
	}
	if spec.HeadLength != nil {
		a = a.WithHeadLength(*spec.HeadLength)
	}
	return ecs.Add(w, e, component.VecArrowComponent.Kind(), &a)
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	cam := component.Camera{FOV: spec.FOV, Near: spec.Near, Far: spec.Far}
	if cam.Eye, err = vec3(spec.Eye, mgl32.Vec3{0, 0, 10}); err != nil {
		return fmt.Errorf("eye: %w", err)
	}
	if cam.Target, err = vec3(spec.Target, mgl32.Vec3{}); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	if cam.Up, err = vec3(spec.Up, mgl32.Vec3{0, 1, 0}); err != nil {
		return fmt.Errorf("up: %w", err)
	}
	if cam.FOV <= 0 {
		cam.FOV = 45
	}
	if cam.Near <= 0 {
		cam.Near = 0.1
	}
	if cam.Far <= cam.Near {
		cam.Far = 100
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &cam)
}

func addCubeTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CubeTagComponent.Kind(), &component.CubeTag{})
}

func addTurntableTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TurntableTagComponent.Kind(), &component.TurntableTag{})
}

type scriptedMotionSpec = prefabs.ScriptedMotionComponentSpec

func addScriptedMotion(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptedMotionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scripted motion spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("scripted motion needs a script")
	}
	return ecs.Add(w, e, component.ScriptedMotionComponent.Kind(), &component.ScriptedMotion{Script: spec.Script})
}
