package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/vecarrows/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCamera() component.Camera {
	return component.Camera{
		Eye:    mgl32.Vec3{0, 0, 10},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FOV:    90,
		Near:   1,
		Far:    100,
	}
}

func TestNewProjectorRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		edit func(*component.Camera)
		w, h int
	}{
		{name: "empty_viewport", edit: func(*component.Camera) {}, w: 0, h: 10},
		{name: "zero_fov", edit: func(c *component.Camera) { c.FOV = 0 }, w: 10, h: 10},
		{name: "inverted_clip", edit: func(c *component.Camera) { c.Far = 0.5 }, w: 10, h: 10},
		{name: "up_along_view", edit: func(c *component.Camera) { c.Up = mgl32.Vec3{0, 0, 1} }, w: 10, h: 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := testCamera()
			tc.edit(&cam)
			_, err := NewProjector(cam, tc.w, tc.h)
			assert.Error(t, err)
		})
	}
}

func TestProject(t *testing.T) {
	p, err := NewProjector(testCamera(), 100, 100)
	require.NoError(t, err)

	c, ok := p.Project(mgl32.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 50, c.X(), 1e-3)
	assert.InDelta(t, 50, c.Y(), 1e-3)

	right, ok := p.Project(mgl32.Vec3{5, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 75, right.X(), 1e-2)

	up, ok := p.Project(mgl32.Vec3{0, 5, 0})
	require.True(t, ok)
	assert.InDelta(t, 25, up.Y(), 1e-2)

	_, ok = p.Project(mgl32.Vec3{0, 0, 11})
	assert.False(t, ok)
}

func TestProjectSegmentClipsNearPlane(t *testing.T) {
	p, err := NewProjector(testCamera(), 100, 100)
	require.NoError(t, err)

	a, b, _, ok := p.ProjectSegment(mgl32.Vec3{5, 0, 0}, mgl32.Vec3{5, 0, 20}, 0.1)
	require.True(t, ok)
	assert.InDelta(t, 75, a.X(), 1e-2)
	// the clipped end sits on the near plane, 1 unit in front of the eye
	assert.InDelta(t, 50+50*5, b.X(), 0.5)

	_, _, _, ok = p.ProjectSegment(mgl32.Vec3{0, 0, 12}, mgl32.Vec3{1, 0, 15}, 0.1)
	assert.False(t, ok)
}

func TestProjectSegmentWidth(t *testing.T) {
	p, err := NewProjector(testCamera(), 100, 100)
	require.NoError(t, err)

	_, _, width, ok := p.ProjectSegment(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, 1)
	require.True(t, ok)
	assert.InDelta(t, 5, width, 1e-2)

	_, _, width, ok = p.ProjectSegment(mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0}, 0.001)
	require.True(t, ok)
	assert.Equal(t, float32(minStrokePixels), width)
}
