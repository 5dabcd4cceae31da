// Package fx implements the landing page's two visual-effect engines: the
// ambient ParticleField background and the one-shot confetti BurstEffect.
//
// Both engines are driven entirely through the Host interfaces below, so
// they can run on top of any frame loop (the ebiten window in
// internal/game, or a scripted host in tests). All callbacks delivered by a
// Host are expected to run on a single goroutine.
package fx

import (
	"image/color"
	"time"
)

// Canvas is a drawing surface owned by the host.
type Canvas interface {
	Resize(width, height int)
	Clear()
	// FillCircle draws a filled circle. alpha in [0, 1] scales the colour's
	// own alpha.
	FillCircle(x, y, radius float64, c color.NRGBA, alpha float64)
}

// Surfaces resolves canvases and reports the viewport.
type Surfaces interface {
	// Canvas returns the canvas registered under id, or nil.
	Canvas(id string) Canvas
	Viewport() (width, height int)
	// AddResizeListener registers fn and returns a non-zero handle.
	AddResizeListener(fn func(width, height int)) int
	RemoveResizeListener(handle int)
}

// Scheduler runs callbacks once per display refresh.
type Scheduler interface {
	// RequestFrame schedules fn for the next frame and returns a non-zero
	// handle.
	RequestFrame(fn func()) int
	CancelFrame(handle int)
}

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the timer
	// was still pending.
	Stop() bool
}

// Clock is the monotonic time source.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Layer is the visual tree that burst elements are inserted into.
type Layer interface {
	// Append inserts c. It returns false when the layer refuses the element.
	Append(c *Confetto) bool
	Remove(c *Confetto)
}

// Host bundles everything the engines consume.
type Host interface {
	Surfaces
	Scheduler
	Clock
	Layer
}
