package component

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// CoordinateSpace tells how a VecArrow's Direction is expressed.
type CoordinateSpace uint8

const (
	// Local directions live in the entity's own rotated and scaled frame.
	Local CoordinateSpace = iota
	// World directions are already in world units; only the entity's
	// position anchors the arrow.
	World
)

func (s CoordinateSpace) String() string {
	switch s {
	case Local:
		return "local"
	case World:
		return "world"
	default:
		return fmt.Sprintf("CoordinateSpace(%d)", uint8(s))
	}
}

// Toggle swaps Local and World.
func (s CoordinateSpace) Toggle() CoordinateSpace {
	if s == Local {
		return World
	}
	return Local
}

// ParseCoordinateSpace accepts "local", "world" and the alias "global".
func ParseCoordinateSpace(v string) (CoordinateSpace, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "local":
		return Local, nil
	case "world", "global":
		return World, nil
	default:
		return Local, fmt.Errorf("unknown coordinate space %q", v)
	}
}

// VecArrow draws a debug arrow from the entity's world position along
// Direction every frame. Color, Thickness and HeadLength fall back to the
// configured defaults when unset. Non-finite or non-positive Thickness and
// HeadLength also fall back.
type VecArrow struct {
	Direction  mgl32.Vec3
	Space      CoordinateSpace
	Color      color.Color
	Thickness  *float32
	HeadLength *float32
}

var VecArrowComponent = NewComponent[VecArrow]()

// NewVecArrow returns an arrow with no style overrides. No validation happens
// here; degenerate directions are dropped when the arrow is resolved.
func NewVecArrow(direction mgl32.Vec3, space CoordinateSpace) VecArrow {
	return VecArrow{Direction: direction, Space: space}
}

func (a VecArrow) WithColor(c color.Color) VecArrow {
	a.Color = c
	return a
}

func (a VecArrow) WithThickness(thickness float32) VecArrow {
	a.Thickness = &thickness
	return a
}

// WithHeadLength fixes the arrowhead wing length instead of sizing it from
// the shaft.
func (a VecArrow) WithHeadLength(length float32) VecArrow {
	a.HeadLength = &length
	return a
}
