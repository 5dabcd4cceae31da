package host

import (
	"sync"
	"time"
)

// FrameTap records the last N frame intervals into a ring buffer so the
// debug overlay can show frame pacing.
type FrameTap struct {
	buffer    []time.Duration
	nextIndex int
	filled    bool
	last      time.Time
	mu        sync.RWMutex
}

// NewFrameTap returns a tap holding up to ringSize intervals.
func NewFrameTap(ringSize int) *FrameTap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &FrameTap{buffer: make([]time.Duration, ringSize)}
}

// Mark records the interval since the previous Mark. The first call only
// sets the reference point.
func (t *FrameTap) Mark(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last.IsZero() {
		t.last = now
		return
	}
	t.buffer[t.nextIndex] = now.Sub(t.last)
	t.last = now
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
		t.filled = true
	}
}

func (t *FrameTap) size() int {
	if t.filled {
		return len(t.buffer)
	}
	return t.nextIndex
}

// Snapshot returns up to the last n intervals, oldest first.
func (t *FrameTap) Snapshot(n int) []time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = max(min(n, t.size()), 0)
	out := make([]time.Duration, n)
	idx := t.nextIndex - 1
	for i := n - 1; i >= 0; i-- {
		if idx < 0 {
			idx = len(t.buffer) - 1
		}
		out[i] = t.buffer[idx]
		idx--
	}
	return out
}

// FPS is the mean frame rate over the recorded intervals.
func (t *FrameTap) FPS() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := t.size()
	if n == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < n; i++ {
		sum += t.buffer[i]
	}
	if sum <= 0 {
		return 0
	}
	return float64(n) / sum.Seconds()
}
