// Package host implements fx.Host for a tick-driven game loop. The owner
// calls Tick once per update and SetViewport whenever the outside size is
// known; every engine callback then runs on the caller's goroutine.
package host

import (
	"slices"
	"sync"
	"time"

	"github.com/iburimskiy/landing-fx/internal/fx"
	"go.uber.org/zap"
)

type timer struct {
	h    *Host
	id   int
	when time.Time
	fn   func()
}

func (t *timer) Stop() bool {
	t.h.mu.Lock()
	defer t.h.mu.Unlock()
	_, ok := t.h.timers[t.id]
	delete(t.h.timers, t.id)
	return ok
}

// Host owns canvases, the frame queue, timers, resize listeners and the
// element layer.
type Host struct {
	mu  sync.Mutex
	log *zap.Logger

	nextID    int
	canvases  map[string]fx.Canvas
	width     int
	height    int
	listeners map[int]func(int, int)
	frames    map[int]func()
	inflight  map[int]func()
	timers    map[int]*timer
	now       time.Time

	elements    []*fx.Confetto
	maxElements int
}

// Option configures a Host.
type Option func(*Host)

// WithMaxElements caps the layer; Append refuses elements beyond n. Zero
// means unlimited.
func WithMaxElements(n int) Option { return func(h *Host) { h.maxElements = n } }

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option { return func(h *Host) { h.log = l } }

// New returns a host whose clock starts at now.
func New(now time.Time, opts ...Option) *Host {
	h := &Host{
		log:       zap.NewNop(),
		canvases:  make(map[string]fx.Canvas),
		listeners: make(map[int]func(int, int)),
		frames:    make(map[int]func()),
		timers:    make(map[int]*timer),
		now:       now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) id() int {
	h.nextID++
	return h.nextID
}

// Register makes c available under id.
func (h *Host) Register(id string, c fx.Canvas) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.canvases[id] = c
}

// Canvas implements fx.Surfaces.
func (h *Host) Canvas(id string) fx.Canvas {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.canvases[id]; ok {
		return c
	}
	return nil
}

// Viewport implements fx.Surfaces.
func (h *Host) Viewport() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// AddResizeListener implements fx.Surfaces.
func (h *Host) AddResizeListener(fn func(int, int)) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.id()
	h.listeners[id] = fn
	return id
}

// RemoveResizeListener implements fx.Surfaces.
func (h *Host) RemoveResizeListener(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.listeners, id)
}

// Listeners returns the number of registered resize listeners.
func (h *Host) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// SetViewport records the viewport size and notifies listeners when it
// changed.
func (h *Host) SetViewport(width, height int) {
	h.mu.Lock()
	if width == h.width && height == h.height {
		h.mu.Unlock()
		return
	}
	h.width, h.height = width, height
	ids := sortedKeys(h.listeners)
	fns := make([]func(int, int), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.listeners[id])
	}
	h.mu.Unlock()

	h.log.Debug("viewport resized", zap.Int("width", width), zap.Int("height", height))
	for _, fn := range fns {
		fn(width, height)
	}
}

// RequestFrame implements fx.Scheduler.
func (h *Host) RequestFrame(fn func()) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.id()
	h.frames[id] = fn
	return id
}

// CancelFrame implements fx.Scheduler. It also cancels a callback from the
// batch currently being run by Tick.
func (h *Host) CancelFrame(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.frames, id)
	delete(h.inflight, id)
}

// PendingFrames returns the number of queued frame callbacks.
func (h *Host) PendingFrames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.frames)
}

// Now implements fx.Clock. It only advances on Tick.
func (h *Host) Now() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

// AfterFunc implements fx.Clock. fn runs on the first Tick at or after
// Now()+d.
func (h *Host) AfterFunc(d time.Duration, fn func()) fx.Timer {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := &timer{h: h, id: h.id(), when: h.now.Add(d), fn: fn}
	h.timers[t.id] = t
	return t
}

// PendingTimers returns the number of armed timers.
func (h *Host) PendingTimers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.timers)
}

// Tick advances the clock to now, fires due timers in deadline order and
// then runs the frame callbacks that were queued before this call.
// Callbacks queued while ticking run on the next Tick.
func (h *Host) Tick(now time.Time) {
	h.mu.Lock()
	if now.After(h.now) {
		h.now = now
	}
	var due []*timer
	for id, t := range h.timers {
		if !t.when.After(h.now) {
			due = append(due, t)
			delete(h.timers, id)
		}
	}
	h.inflight = h.frames
	h.frames = make(map[int]func())
	ids := sortedKeys(h.inflight)
	h.mu.Unlock()

	slices.SortFunc(due, func(a, b *timer) int {
		if c := a.when.Compare(b.when); c != 0 {
			return c
		}
		return a.id - b.id
	})
	for _, t := range due {
		t.fn()
	}
	for _, id := range ids {
		h.mu.Lock()
		fn, ok := h.inflight[id]
		delete(h.inflight, id)
		h.mu.Unlock()
		if ok {
			fn()
		}
	}
}

// Append implements fx.Layer.
func (h *Host) Append(c *fx.Confetto) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.maxElements > 0 && len(h.elements) >= h.maxElements {
		return false
	}
	h.elements = append(h.elements, c)
	return true
}

// Remove implements fx.Layer.
func (h *Host) Remove(c *fx.Confetto) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i := slices.Index(h.elements, c); i >= 0 {
		h.elements = slices.Delete(h.elements, i, i+1)
	}
}

// Elements returns the layer contents in insertion order.
func (h *Host) Elements() []*fx.Confetto {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.elements)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

var _ fx.Host = (*Host)(nil)
