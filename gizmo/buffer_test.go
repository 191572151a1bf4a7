package gizmo

import (
	"image/color"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferCollectsInOrder(t *testing.T) {
	b := NewBuffer(4)
	red := color.NRGBA{R: 255, A: 255}

	b.DrawSegment(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, red, 0.1)
	b.DrawSegment(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 1, 0}, red, 0.2)

	segs := b.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, segs[0].End)
	assert.Equal(t, float32(0.2), segs[1].Thickness)
	assert.Equal(t, red, segs[1].Color)
}

func TestBufferResetKeepsCapacity(t *testing.T) {
	b := NewBuffer(0)
	for i := 0; i < 8; i++ {
		b.DrawSegment(mgl32.Vec3{}, mgl32.Vec3{float32(i), 0, 0}, color.White, 1)
	}
	before := cap(b.Segments())

	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, before, cap(b.Segments()))
}

func TestBufferConcurrentSubmission(t *testing.T) {
	b := NewBuffer(0)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b.DrawSegment(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, color.White, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, b.Len())
}

func TestBufferFlush(t *testing.T) {
	b := NewBuffer(2)
	b.DrawSegment(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, color.White, 1)

	var got int
	b.Flush(func(segs []Segment) { got = len(segs) })

	assert.Equal(t, 1, got)
	assert.Equal(t, 0, b.Len())
}

func TestMultiFansOut(t *testing.T) {
	a, c := NewBuffer(1), NewBuffer(1)
	var calls int
	m := Multi{a, nil, c, DrawerFunc(func(_, _ mgl32.Vec3, _ color.Color, _ float32) { calls++ })}

	m.DrawSegment(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, color.Black, 1)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, calls)
}
