package system

import (
	"fmt"
	"log/slog"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
	"github.com/milk9111/vecarrows/prefabs"
)

// ScriptMotionSystem animates entities from tengo scripts. Each frame the
// script sees `frame` and may define `yaw`, `pitch`, `roll` (radians) and
// `x`, `y`, `z` offsets, all applied on top of the entity's starting Transform.
type ScriptMotionSystem struct {
	load   func(string) ([]byte, error)
	cache  map[string]*tengo.Compiled
	logger *slog.Logger
}

func NewScriptMotionSystem(load func(string) ([]byte, error)) *ScriptMotionSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &ScriptMotionSystem{
		load:   load,
		cache:  make(map[string]*tengo.Compiled),
		logger: slog.Default(),
	}
}

// Invalidate drops the compiled script for path so the next frame reloads it.
func (s *ScriptMotionSystem) Invalidate(path string) {
	delete(s.cache, path)
}

func (s *ScriptMotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ScriptedMotionComponent.Kind(), func(e ecs.Entity, t *component.Transform, m *component.ScriptedMotion) {
		compiled, err := s.compiled(m.Script)
		if err != nil {
			s.logger.Warn("scripted motion: load failed", "entity", e.String(), "script", m.Script, "err", err)
			return
		}
		if !m.HasBase {
			m.Base = *t
			m.HasBase = true
		}
		m.Frame++

		if err := compiled.Set("frame", m.Frame); err != nil {
			s.logger.Warn("scripted motion: set frame", "entity", e.String(), "err", err)
			return
		}
		if err := compiled.Run(); err != nil {
			s.logger.Warn("scripted motion: run failed", "entity", e.String(), "script", m.Script, "err", err)
			return
		}

		yaw := scriptFloat(compiled, "yaw")
		pitch := scriptFloat(compiled, "pitch")
		roll := scriptFloat(compiled, "roll")
		offset := mgl32.Vec3{scriptFloat(compiled, "x"), scriptFloat(compiled, "y"), scriptFloat(compiled, "z")}

		spin := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).
			Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0})).
			Mul(mgl32.QuatRotate(roll, mgl32.Vec3{0, 0, 1}))

		t.Translation = m.Base.Translation.Add(offset)
		t.Rotation = m.Base.Rotation.Mul(spin).Normalize()
	})
}

func (s *ScriptMotionSystem) compiled(path string) (*tengo.Compiled, error) {
	if c, ok := s.cache[path]; ok {
		return c, nil
	}
	src, err := s.load(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	if err := script.Add("frame", 0); err != nil {
		return nil, fmt.Errorf("scripted motion: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap("math"))
	c, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scripted motion: compile %s: %w", path, err)
	}
	s.cache[path] = c
	return c, nil
}

func scriptFloat(c *tengo.Compiled, name string) float32 {
	if !c.IsDefined(name) {
		return 0
	}
	return float32(c.Get(name).Float())
}
