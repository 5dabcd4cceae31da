package fx

import (
	"image/color"

	"go.uber.org/zap"
)

// Particle is one ambient dot. Speed is fixed for its lifetime; only the
// sign of each velocity component changes.
type Particle struct {
	X, Y   float64
	DX, DY float64
	Radius float64
	Color  color.NRGBA
}

// ParticleField is the ambient background simulation. It is not safe for
// concurrent use; every method and host callback must run on the host's
// loop goroutine.
type ParticleField struct {
	host Host
	cfg  FieldConfig
	rnd  Rand
	log  *zap.Logger

	canvas        Canvas
	particles     []Particle
	width, height float64

	frame   int
	resize  int
	running bool
}

// NewParticleField returns a stopped field. Burst-only options are ignored.
func NewParticleField(host Host, opts ...Option) *ParticleField {
	o := newOptions(opts)
	return &ParticleField{
		host: host,
		cfg:  o.Field,
		rnd:  o.Rand,
		log:  o.Logger.Named("field"),
	}
}

// Start binds the field to the canvas registered as surfaceID, populates it
// and begins the frame loop. A missing canvas leaves the field stopped.
// Starting a running field restarts it with fresh particles.
func (f *ParticleField) Start(surfaceID string) {
	if f.running {
		f.Stop()
	}

	c := f.host.Canvas(surfaceID)
	if c == nil {
		f.log.Debug("surface unavailable", zap.String("surface", surfaceID))
		return
	}
	f.canvas = c
	f.onResize(f.host.Viewport())
	f.resize = f.host.AddResizeListener(f.onResize)

	f.particles = make([]Particle, 0, f.cfg.Particles)
	for i := 0; i < f.cfg.Particles; i++ {
		f.particles = append(f.particles, f.spawn())
	}
	f.running = true

	f.log.Debug("started",
		zap.String("surface", surfaceID),
		zap.Int("particles", len(f.particles)),
		zap.Float64("width", f.width),
		zap.Float64("height", f.height))

	f.tick()
}

// Stop cancels the pending frame and removes the resize listener.
func (f *ParticleField) Stop() {
	if f.frame != 0 {
		f.host.CancelFrame(f.frame)
		f.frame = 0
	}
	if f.resize != 0 {
		f.host.RemoveResizeListener(f.resize)
		f.resize = 0
	}
	if f.running {
		f.log.Debug("stopped")
	}
	f.running = false
}

// Running reports whether the frame loop is active.
func (f *ParticleField) Running() bool { return f.running }

// Particles returns a copy of the current particles.
func (f *ParticleField) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Bounds returns the current simulation extent.
func (f *ParticleField) Bounds() (width, height float64) { return f.width, f.height }

// Step renders the current frame and advances every particle once.
func (f *ParticleField) Step() {
	if f.canvas == nil {
		return
	}
	f.canvas.Clear()
	for i := range f.particles {
		p := &f.particles[i]
		f.canvas.FillCircle(p.X, p.Y, p.Radius, p.Color, f.cfg.Opacity)

		p.X += p.DX
		p.Y += p.DY

		// Only flip when heading further out, so a particle stranded
		// outside a shrunken viewport drifts back instead of jittering.
		// The landing page flipped unconditionally whenever out of bounds;
		// both rules agree for particles inside the viewport.
		if (p.X < 0 && p.DX < 0) || (p.X > f.width && p.DX > 0) {
			p.DX = -p.DX
		}
		if (p.Y < 0 && p.DY < 0) || (p.Y > f.height && p.DY > 0) {
			p.DY = -p.DY
		}
	}
}

func (f *ParticleField) tick() {
	f.frame = 0
	if !f.running {
		return
	}
	f.Step()
	f.frame = f.host.RequestFrame(f.tick)
}

// onResize resizes the canvas only; particles keep their positions.
func (f *ParticleField) onResize(width, height int) {
	f.width, f.height = float64(width), float64(height)
	f.canvas.Resize(width, height)
}

func (f *ParticleField) spawn() Particle {
	s := f.cfg.MaxSpeed
	return Particle{
		X:      f.rnd.Float64() * f.width,
		Y:      f.rnd.Float64() * f.height,
		Radius: between(f.rnd, f.cfg.MinRadius, f.cfg.MaxRadius),
		DX:     between(f.rnd, -s, s),
		DY:     between(f.rnd, -s, s),
		Color:  f.cfg.Colors.Pick(f.rnd),
	}
}
