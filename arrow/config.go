package arrow

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

var ErrInvalidConfig = errors.New("arrow: invalid config")

// ScaleMode picks how a Local arrow picks up its entity's scale.
type ScaleMode uint8

const (
	// ScaleBeforeRotation scales along the entity's own axes, the same way the
	// transform maps points (scale, rotate, translate).
	ScaleBeforeRotation ScaleMode = iota
	// ScaleAfterRotation rotates first and then scales along world axes.
	ScaleAfterRotation
	// ScaleIgnored applies rotation only.
	ScaleIgnored
)

func (m ScaleMode) String() string {
	switch m {
	case ScaleBeforeRotation:
		return "scale-before-rotation"
	case ScaleAfterRotation:
		return "scale-after-rotation"
	case ScaleIgnored:
		return "scale-ignored"
	default:
		return fmt.Sprintf("ScaleMode(%d)", uint8(m))
	}
}

// Config holds the process-wide arrow settings. It is copied into the arrow
// system when the plugin is added and never changes afterwards.
type Config struct {
	DefaultColor     color.Color
	DefaultThickness float32

	// HeadAngle is the half-angle between the shaft and each head wing, in radians.
	HeadAngle float32
	// HeadFraction sizes the head relative to the shaft length.
	HeadFraction float32
	// HeadMinLength keeps heads of short arrows visible.
	HeadMinLength float32

	// Epsilon is the length under which a resolved direction counts as zero.
	Epsilon float32

	// LocalScale picks how Local arrows pick up scale. The default scales
	// along the entity's own axes before rotating, matching how the transform
	// maps points, rather than rotating first and scaling along world axes
	// (ScaleAfterRotation) or dropping scale (ScaleIgnored).
	LocalScale ScaleMode
}

func DefaultConfig() Config {
	return Config{
		DefaultColor:     colornames.White,
		DefaultThickness: 0.1,
		HeadAngle:        mgl32.DegToRad(22.5),
		HeadFraction:     0.15,
		HeadMinLength:    0.05,
		Epsilon:          1e-6,
		LocalScale:       ScaleBeforeRotation,
	}
}

func (c Config) Validate() error {
	switch {
	case c.DefaultColor == nil:
		return fmt.Errorf("%w: default color is nil", ErrInvalidConfig)
	case !finite(c.DefaultThickness) || c.DefaultThickness <= 0:
		return fmt.Errorf("%w: default thickness %v", ErrInvalidConfig, c.DefaultThickness)
	case !finite(c.HeadAngle) || c.HeadAngle <= 0 || c.HeadAngle >= math32.Pi/2:
		return fmt.Errorf("%w: head angle %v", ErrInvalidConfig, c.HeadAngle)
	case !finite(c.HeadFraction) || c.HeadFraction < 0:
		return fmt.Errorf("%w: head fraction %v", ErrInvalidConfig, c.HeadFraction)
	case !finite(c.HeadMinLength) || c.HeadMinLength < 0:
		return fmt.Errorf("%w: head min length %v", ErrInvalidConfig, c.HeadMinLength)
	case !finite(c.Epsilon) || c.Epsilon < 0:
		return fmt.Errorf("%w: epsilon %v", ErrInvalidConfig, c.Epsilon)
	case c.LocalScale > ScaleIgnored:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.LocalScale)
	}
	return nil
}
