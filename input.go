package main

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
)

const (
	moveSpeed = 0.05
	turnSpeed = 0.03
	// 0.2s at ebiten's default 60 ticks per second
	rollFrames = 12
)

// Input collects this frame's key state and applies it to the scene.
type Input struct {
	toggle bool
	move   mgl32.Vec3
	turn   float32
	roll   bool

	space component.CoordinateSpace
	rng   *rand.Rand
}

func NewInput() *Input {
	return &Input{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (i *Input) Space() component.CoordinateSpace {
	return i.space
}

func (i *Input) Update() {
	i.toggle = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	i.roll = inpututil.IsKeyJustPressed(ebiten.KeySpace)

	axis := func(neg, pos ebiten.Key) float32 {
		var v float32
		if ebiten.IsKeyPressed(neg) {
			v--
		}
		if ebiten.IsKeyPressed(pos) {
			v++
		}
		return v
	}
	i.move = mgl32.Vec3{
		axis(ebiten.KeyA, ebiten.KeyD),
		axis(ebiten.KeyQ, ebiten.KeyE),
		axis(ebiten.KeyW, ebiten.KeyS),
	}.Mul(moveSpeed)
	i.turn = axis(ebiten.KeyO, ebiten.KeyP) * turnSpeed
}

func (i *Input) Apply(w *ecs.World) {
	if i.toggle {
		i.space = i.space.Toggle()
		ecs.ForEach(w, component.VecArrowComponent.Kind(), func(_ ecs.Entity, a *component.VecArrow) {
			a.Space = i.space
		})
	}

	if cube, ok := ecs.First(w, component.CubeTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, cube, component.TransformComponent.Kind()); ok {
			t.Translation = t.Translation.Add(i.move)
			if i.roll {
				_ = ecs.Add(w, cube, component.RollTweenComponent.Kind(), &component.RollTween{
					From:   t.Rotation,
					To:     component.RandomRotation(i.rng),
					Frames: rollFrames,
				})
			}
		}
	}

	if i.turn != 0 {
		if table, ok := ecs.First(w, component.TurntableTagComponent.Kind()); ok {
			if t, ok := ecs.Get(w, table, component.TransformComponent.Kind()); ok {
				t.Rotation = t.Rotation.Mul(mgl32.QuatRotate(i.turn, mgl32.Vec3{0, 1, 0})).Normalize()
			}
		}
	}
}

