package fx

import (
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Confetto is one ephemeral burst element. Every field is fixed at creation.
type Confetto struct {
	X, Y     float64 // origin
	DX, DY   float64 // displacement reached at the end of the animation
	Color    color.NRGBA
	Size     float64
	Born     time.Time
	Duration time.Duration
	Easing   Easing
	Burst    string
}

// Sample returns the element's position and opacity at now. After the
// animation completes it holds the final state and done is true.
func (c *Confetto) Sample(now time.Time) (x, y, opacity float64, done bool) {
	t := 1.0
	if c.Duration > 0 {
		t = clamp01(float64(now.Sub(c.Born)) / float64(c.Duration))
	}
	ease := c.Easing
	if ease == nil {
		ease = Linear
	}
	e := ease(t)
	return c.X + c.DX*e, c.Y + c.DY*e, 1 - e, t >= 1
}

// BurstEffect fires confetti bursts into the host layer. Burst, Active and
// Shutdown may be called from any goroutine; removals run on the host's
// loop goroutine.
type BurstEffect struct {
	host Host
	cfg  BurstConfig
	log  *zap.Logger

	mu     sync.Mutex // guards rnd and active
	rnd    Rand
	active map[*Confetto]Timer
}

// NewBurstEffect returns an effect using o.Burst as the per-call defaults.
func NewBurstEffect(host Host, opts ...Option) *BurstEffect {
	o := newOptions(opts)
	return &BurstEffect{
		host:   host,
		cfg:    o.Burst,
		rnd:    o.Rand,
		log:    o.Logger.Named("burst"),
		active: make(map[*Confetto]Timer),
	}
}

// Burst spawns the configured number of elements at (x, y) and returns
// immediately. opts override the effect's defaults for this call only;
// Rand and Logger options are ignored here.
func (b *BurstEffect) Burst(x, y float64, opts ...Option) {
	cfg := b.cfg
	if len(opts) > 0 {
		o := Options{Burst: cfg}
		for _, opt := range opts {
			opt(&o)
		}
		cfg = o.Burst
	}

	id := uuid.NewString()
	now := b.host.Now()
	cleanup := cfg.cleanup()

	added := 0
	b.mu.Lock()
	for i := 0; i < cfg.Count; i++ {
		c := b.spawn(cfg, x, y, now, id)
		if !b.host.Append(c) {
			continue
		}
		added++
		b.active[c] = b.host.AfterFunc(cleanup, func() { b.remove(c) })
	}
	b.mu.Unlock()

	if added < cfg.Count {
		b.log.Warn("layer refused elements",
			zap.String("burst", id),
			zap.Int("requested", cfg.Count),
			zap.Int("added", added))
	}
	b.log.Debug("burst",
		zap.String("burst", id),
		zap.Float64("x", x),
		zap.Float64("y", y),
		zap.Int("count", added),
		zap.Duration("cleanup", cleanup))
}

// Active returns the number of inserted elements not yet removed.
func (b *BurstEffect) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.active)
}

// Shutdown cancels every pending removal and removes the elements now.
func (b *BurstEffect) Shutdown() {
	b.mu.Lock()
	pending := b.active
	b.active = make(map[*Confetto]Timer)
	b.mu.Unlock()

	for c, t := range pending {
		t.Stop()
		b.host.Remove(c)
	}
	if n := len(pending); n > 0 {
		b.log.Debug("shutdown", zap.Int("removed", n))
	}
}

func (b *BurstEffect) remove(c *Confetto) {
	b.mu.Lock()
	_, ok := b.active[c]
	delete(b.active, c)
	b.mu.Unlock()
	if ok {
		b.host.Remove(c)
	}
}

// spawn must be called with b.mu held.
func (b *BurstEffect) spawn(cfg BurstConfig, x, y float64, now time.Time, id string) *Confetto {
	col := cfg.Colors.Pick(b.rnd)
	angle := b.rnd.Float64() * 2 * math.Pi
	dist := between(b.rnd, cfg.MinDistance, cfg.MaxDistance)
	dur := cfg.MinDuration + time.Duration(b.rnd.Float64()*float64(cfg.MaxDuration-cfg.MinDuration))
	return &Confetto{
		X:        x,
		Y:        y,
		DX:       math.Cos(angle) * dist,
		DY:       math.Sin(angle) * dist,
		Color:    col,
		Size:     cfg.Size,
		Born:     now,
		Duration: dur,
		Easing:   cfg.Easing,
		Burst:    id,
	}
}
