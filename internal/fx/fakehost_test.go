package fx

import (
	"image/color"
	"slices"
	"time"
)

type circle struct {
	x, y, r float64
	c       color.NRGBA
	alpha   float64
}

type fakeCanvas struct {
	w, h    int
	resizes int
	clears  int
	circles []circle
}

func (c *fakeCanvas) Resize(w, h int) { c.w, c.h = w, h; c.resizes++ }
func (c *fakeCanvas) Clear()          { c.clears++; c.circles = c.circles[:0] }
func (c *fakeCanvas) FillCircle(x, y, r float64, col color.NRGBA, alpha float64) {
	c.circles = append(c.circles, circle{x, y, r, col, alpha})
}

type fakeTimer struct {
	when    time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

// fakeHost drives the engines deterministically: frames run only on
// runFrame and timers only on advance.
type fakeHost struct {
	canvases  map[string]*fakeCanvas
	w, h      int
	nextID    int
	listeners map[int]func(int, int)
	frames    map[int]func()
	now       time.Time
	timers    []*fakeTimer
	elements  []*Confetto
	capacity  int // 0 means unlimited
	removed   int
}

func newFakeHost(w, h int, surfaces ...string) *fakeHost {
	fh := &fakeHost{
		canvases:  make(map[string]*fakeCanvas),
		w:         w,
		h:         h,
		listeners: make(map[int]func(int, int)),
		frames:    make(map[int]func()),
		now:       time.Unix(1_700_000_000, 0),
	}
	for _, s := range surfaces {
		fh.canvases[s] = &fakeCanvas{}
	}
	return fh
}

func (h *fakeHost) Canvas(id string) Canvas {
	if c, ok := h.canvases[id]; ok {
		return c
	}
	return nil
}

func (h *fakeHost) Viewport() (int, int) { return h.w, h.h }

func (h *fakeHost) AddResizeListener(fn func(int, int)) int {
	h.nextID++
	h.listeners[h.nextID] = fn
	return h.nextID
}

func (h *fakeHost) RemoveResizeListener(id int) { delete(h.listeners, id) }

func (h *fakeHost) RequestFrame(fn func()) int {
	h.nextID++
	h.frames[h.nextID] = fn
	return h.nextID
}

func (h *fakeHost) CancelFrame(id int) { delete(h.frames, id) }

func (h *fakeHost) Now() time.Time { return h.now }

func (h *fakeHost) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{when: h.now.Add(d), fn: fn}
	h.timers = append(h.timers, t)
	return t
}

func (h *fakeHost) Append(c *Confetto) bool {
	if h.capacity > 0 && len(h.elements) >= h.capacity {
		return false
	}
	h.elements = append(h.elements, c)
	return true
}

func (h *fakeHost) Remove(c *Confetto) {
	if i := slices.Index(h.elements, c); i >= 0 {
		h.elements = slices.Delete(h.elements, i, i+1)
		h.removed++
	}
}

// runFrame runs every callback pending at call time.
func (h *fakeHost) runFrame() int {
	pending := h.frames
	h.frames = make(map[int]func())
	ids := make([]int, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		pending[id]()
	}
	return len(ids)
}

func (h *fakeHost) resize(w, hh int) {
	h.w, h.h = w, hh
	for _, fn := range h.listeners {
		fn(w, hh)
	}
}

func (h *fakeHost) advance(d time.Duration) {
	h.now = h.now.Add(d)
	for _, t := range h.timers {
		if t.stopped || t.fired || t.when.After(h.now) {
			continue
		}
		t.fired = true
		t.fn()
	}
}

func (h *fakeHost) pendingTimers() int {
	n := 0
	for _, t := range h.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// scriptRand replays vals in a loop.
type scriptRand struct {
	vals []float64
	i    int
}

func (r *scriptRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}
