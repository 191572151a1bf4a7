package gizmo

import (
	"image/color"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Buffer collects segments for one frame. DrawSegment may be called from
// several goroutines; Reset keeps the backing array so steady-state frames
// do not allocate.
type Buffer struct {
	mu       sync.Mutex
	segments []Segment
}

func NewBuffer(capacity int) *Buffer {
	return &Buffer{segments: make([]Segment, 0, capacity)}
}

func (b *Buffer) DrawSegment(start, end mgl32.Vec3, c color.Color, thickness float32) {
	b.mu.Lock()
	b.segments = append(b.segments, Segment{Start: start, End: end, Color: c, Thickness: thickness})
	b.mu.Unlock()
}

// Segments returns the segments drawn since the last Reset. The slice is only
// valid until the next Reset.
func (b *Buffer) Segments() []Segment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.segments
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.segments)
}

func (b *Buffer) Reset() {
	b.mu.Lock()
	clear(b.segments)
	b.segments = b.segments[:0]
	b.mu.Unlock()
}

// Flush hands the frame's segments to fn and then resets the buffer.
func (b *Buffer) Flush(fn func([]Segment)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if fn != nil {
		fn(b.segments)
	}
	clear(b.segments)
	b.segments = b.segments[:0]
}
