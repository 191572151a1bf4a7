package system

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/arrow"
	"github.com/milk9111/vecarrows/ecs"
	"github.com/milk9111/vecarrows/ecs/component"
	"github.com/milk9111/vecarrows/gizmo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func spawnArrow(t *testing.T, w *ecs.World, tr component.Transform, a component.VecArrow) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &tr))
	require.NoError(t, ecs.Add(w, e, component.VecArrowComponent.Kind(), &a))
	return e
}

func runFrame(t *testing.T, w *ecs.World, opts ...VecArrowOption) []gizmo.Segment {
	t.Helper()
	buf := gizmo.NewBuffer(0)
	s := ecs.NewScheduler()
	_, err := AddVecArrowPlugin(s, buf, arrow.DefaultConfig(), opts...)
	require.NoError(t, err)
	s.Update(w)
	return append([]gizmo.Segment(nil), buf.Segments()...)
}

func TestVecArrowSystemDrawsShaftAndHead(t *testing.T) {
	w := ecs.NewWorld()
	spawnArrow(t, w, component.TransformFromTranslation(1, 0, 0), component.NewVecArrow(mgl32.Vec3{0, 2, 0}, component.World))

	segs := runFrame(t, w)
	require.Len(t, segs, 3)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, segs[0].Start)
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, segs[0].End)
	assert.Equal(t, arrow.DefaultConfig().DefaultThickness, segs[0].Thickness)
}

func TestVecArrowSystemSkipsBadEntitiesOnly(t *testing.T) {
	w := ecs.NewWorld()
	nan := component.NewTransform()
	nan.Translation = mgl32.Vec3{math32.NaN(), 0, 0}

	spawnArrow(t, w, nan, component.NewVecArrow(mgl32.Vec3{1, 0, 0}, component.Local))
	spawnArrow(t, w, component.NewTransform(), component.NewVecArrow(mgl32.Vec3{}, component.Local))
	spawnArrow(t, w, component.NewTransform(), component.NewVecArrow(mgl32.Vec3{}, component.World))
	good := spawnArrow(t, w, component.TransformFromTranslation(0, 0, 5), component.NewVecArrow(mgl32.Vec3{0, 0, 1}, component.World))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	for _, workers := range []int{1, 3} {
		logs.Reset()
		segs := runFrame(t, w, WithWorkers(workers), WithLogger(logger))
		require.Len(t, segs, 3, "workers=%d", workers)
		assert.Equal(t, mgl32.Vec3{0, 0, 5}, segs[0].Start)
		assert.Contains(t, logs.String(), "vec arrow skipped")
		assert.NotContains(t, logs.String(), "entity="+good.String())
	}
}

func TestVecArrowSystemOverridesAndDefaults(t *testing.T) {
	w := ecs.NewWorld()
	spawnArrow(t, w, component.NewTransform(), component.NewVecArrow(mgl32.Vec3{1, 0, 0}, component.World).WithColor(colornames.Red))
	spawnArrow(t, w, component.NewTransform(), component.NewVecArrow(mgl32.Vec3{0, 1, 0}, component.World).WithThickness(0.5))

	buf := gizmo.NewBuffer(0)
	cfg := arrow.DefaultConfig()
	cfg.DefaultColor = colornames.Lime
	cfg.DefaultThickness = 0.2
	s := ecs.NewScheduler()
	_, err := AddVecArrowPlugin(s, buf, cfg)
	require.NoError(t, err)
	s.Update(w)

	segs := buf.Segments()
	require.Len(t, segs, 6)
	assert.Equal(t, colornames.Red, segs[0].Color)
	assert.Equal(t, float32(0.2), segs[0].Thickness)
	assert.Equal(t, colornames.Lime, segs[3].Color)
	assert.Equal(t, float32(0.5), segs[3].Thickness)
}

func TestVecArrowSystemFollowsParent(t *testing.T) {
	w := ecs.NewWorld()

	root := ecs.CreateEntity(w)
	rootTr := component.TransformFromTranslation(0, 1, 0)
	rootTr.Rotation = mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 1, 0})
	require.NoError(t, ecs.Add(w, root, component.TransformComponent.Kind(), &rootTr))

	child := spawnArrow(t, w, component.NewTransform(), component.NewVecArrow(mgl32.Vec3{2, 0, 0}, component.Local))
	require.NoError(t, ecs.Add(w, child, component.ParentComponent.Kind(), &component.Parent{Entity: uint64(root)}))

	segs := runFrame(t, w)
	require.Len(t, segs, 3)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, segs[0].Start)
	delta := segs[0].End.Sub(segs[0].Start)
	assert.InDelta(t, 0, delta.X(), 1e-5)
	assert.InDelta(t, -2, delta.Z(), 1e-5)

	// Toggling the space is a plain field write.
	a, ok := ecs.Get(w, child, component.VecArrowComponent.Kind())
	require.True(t, ok)
	a.Space = a.Space.Toggle()

	segs = runFrame(t, w)
	require.Len(t, segs, 3)
	assert.Equal(t, mgl32.Vec3{2, 1, 0}, segs[0].End)
}

func TestVecArrowSystemIsIdempotent(t *testing.T) {
	w := ecs.NewWorld()
	for i := 0; i < 50; i++ {
		tr := component.TransformFromTranslation(float32(i), float32(i%7), -float32(i%3))
		tr.Rotation = mgl32.QuatRotate(float32(i)*0.37, mgl32.Vec3{0.3, 1, 0.2}.Normalize())
		tr.Scale = mgl32.Vec3{1 + float32(i%4), 1, 0.5}
		space := component.Local
		if i%2 == 0 {
			space = component.World
		}
		spawnArrow(t, w, tr, component.NewVecArrow(mgl32.Vec3{float32(i%5) - 2, 1, float32(i % 3)}, space))
	}

	serial := runFrame(t, w)
	again := runFrame(t, w)
	parallel := runFrame(t, w, WithWorkers(4))

	require.NotEmpty(t, serial)
	assert.Equal(t, serial, again)
	assert.Equal(t, serial, parallel)
}

func TestVecArrowSystemReusesScratchAcrossFrames(t *testing.T) {
	w := ecs.NewWorld()
	for i := 0; i < 10; i++ {
		spawnArrow(t, w, component.NewTransform(), component.NewVecArrow(mgl32.Vec3{1, float32(i), 0}, component.World))
	}
	buf := gizmo.NewBuffer(0)
	s, err := NewVecArrowSystem(buf, arrow.DefaultConfig(), WithWorkers(2))
	require.NoError(t, err)
	NewTransformSystem().Update(w)

	s.Update(w)
	first := cap(s.results)
	buf.Reset()
	s.Update(w)

	assert.Equal(t, first, cap(s.results))
	assert.Equal(t, 30, buf.Len())
}

func TestNewVecArrowSystemRejectsBadInput(t *testing.T) {
	_, err := NewVecArrowSystem(nil, arrow.DefaultConfig())
	assert.Error(t, err)

	cfg := arrow.DefaultConfig()
	cfg.DefaultThickness = -1
	_, err = NewVecArrowSystem(gizmo.NewBuffer(0), cfg)
	assert.ErrorIs(t, err, arrow.ErrInvalidConfig)

	_, err = AddVecArrowPlugin(nil, gizmo.NewBuffer(0), arrow.DefaultConfig())
	assert.Error(t, err)
}
