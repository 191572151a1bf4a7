package system

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scripts(src map[string]string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		s, ok := src[name]
		if !ok {
			return nil, errors.New("missing script")
		}
		return []byte(s), nil
	}
}

func TestScriptMotionAppliesOffsetsOnTopOfBase(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := component.TransformFromTranslation(1, 2, 3)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &tr))
	require.NoError(t, ecs.Add(w, e, component.ScriptedMotionComponent.Kind(), &component.ScriptedMotion{Script: "bob.tengo"}))

	s := NewScriptMotionSystem(scripts(map[string]string{"bob.tengo": "y := frame * 0.5"}))
	s.Update(w)
	s.Update(w)

	got, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 3, got.Translation.Y(), 1e-6)
	assert.InDelta(t, 1, got.Translation.X(), 1e-6)

	m, _ := ecs.Get(w, e, component.ScriptedMotionComponent.Kind())
	assert.Equal(t, 2, m.Frame)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, m.Base.Translation)
}

func TestScriptMotionYaw(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &tr))
	require.NoError(t, ecs.Add(w, e, component.ScriptedMotionComponent.Kind(), &component.ScriptedMotion{Script: "spin"}))

	s := NewScriptMotionSystem(scripts(map[string]string{"spin": `math := import("math")
yaw := math.pi / 2`}))
	s.Update(w)

	got, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	v := got.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0, v.X(), 1e-5)
	assert.InDelta(t, -1, v.Z(), 1e-5)
}

func TestScriptMotionLeavesEntityOnError(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := component.TransformFromTranslation(5, 5, 5)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &tr))
	require.NoError(t, ecs.Add(w, e, component.ScriptedMotionComponent.Kind(), &component.ScriptedMotion{Script: "missing"}))

	s := NewScriptMotionSystem(scripts(nil))
	s.Update(w)

	got, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, got.Translation)
}

func TestScriptMotionInvalidateReloads(t *testing.T) {
	src := map[string]string{"s": "x := 1"}
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := component.NewTransform()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &tr))
	require.NoError(t, ecs.Add(w, e, component.ScriptedMotionComponent.Kind(), &component.ScriptedMotion{Script: "s"}))

	s := NewScriptMotionSystem(scripts(src))
	s.Update(w)
	src["s"] = "x := 4"
	s.Update(w)
	got, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 1, got.Translation.X(), 1e-6, "compiled script is cached")

	s.Invalidate("s")
	s.Update(w)
	got, _ = ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 4, got.Translation.X(), 1e-6)
}
