package fx

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FieldConfig tunes a ParticleField.
type FieldConfig struct {
	Particles int
	MinRadius float64
	MaxRadius float64
	// MaxSpeed bounds each velocity component to [-MaxSpeed, MaxSpeed).
	MaxSpeed float64
	Opacity  float64
	Colors   Palette
}

// DefaultFieldConfig matches the landing page background.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Particles: 60,
		MinRadius: 1,
		MaxRadius: 3,
		MaxSpeed:  0.35,
		Opacity:   0.7,
		Colors:    MustPalette("#facc15", "#fff", "#ff69b4", "#00e1ff"),
	}
}

// Validate reports the first inconsistent setting.
func (c FieldConfig) Validate() error {
	switch {
	case c.Particles < 0:
		return fmt.Errorf("field: particles must not be negative, got %d", c.Particles)
	case c.MinRadius < 0 || c.MaxRadius < c.MinRadius:
		return fmt.Errorf("field: invalid radius range [%g, %g]", c.MinRadius, c.MaxRadius)
	case c.MaxSpeed < 0:
		return fmt.Errorf("field: max speed must not be negative, got %g", c.MaxSpeed)
	case c.Opacity < 0 || c.Opacity > 1:
		return fmt.Errorf("field: opacity %g outside [0, 1]", c.Opacity)
	}
	return nil
}

// BurstConfig tunes a burst.
type BurstConfig struct {
	Count       int
	Colors      Palette
	MinDistance float64
	MaxDistance float64
	MinDuration time.Duration
	MaxDuration time.Duration
	// CleanupDelay is when each element is removed, measured from its
	// insertion. It is raised to MaxDuration when set lower.
	CleanupDelay time.Duration
	// Size is the element diameter.
	Size   float64
	Easing Easing
}

// DefaultBurstConfig matches the download button confetti.
func DefaultBurstConfig() BurstConfig {
	return BurstConfig{
		Count:        30,
		Colors:       MustPalette("#facc15", "#fff", "#ff69b4", "#00e1ff", "#2c5364"),
		MinDistance:  60,
		MaxDistance:  180,
		MinDuration:  1200 * time.Millisecond,
		MaxDuration:  1800 * time.Millisecond,
		CleanupDelay: 1800 * time.Millisecond,
		Size:         10,
		Easing:       CubicBezier(.6, 0, .4, 1),
	}
}

var errNegativeCount = errors.New("burst: count must not be negative")

// Validate reports the first inconsistent setting.
func (c BurstConfig) Validate() error {
	switch {
	case c.Count < 0:
		return errNegativeCount
	case c.MinDistance < 0 || c.MaxDistance < c.MinDistance:
		return fmt.Errorf("burst: invalid distance range [%g, %g]", c.MinDistance, c.MaxDistance)
	case c.MinDuration <= 0 || c.MaxDuration < c.MinDuration:
		return fmt.Errorf("burst: invalid duration range [%s, %s]", c.MinDuration, c.MaxDuration)
	case c.Size < 0:
		return fmt.Errorf("burst: size must not be negative, got %g", c.Size)
	}
	return nil
}

// cleanup returns the effective removal delay.
func (c BurstConfig) cleanup() time.Duration {
	return max(c.CleanupDelay, c.MaxDuration)
}

// Options is the shared construction state of both engines.
type Options struct {
	Field  FieldConfig
	Burst  BurstConfig
	Rand   Rand
	Logger *zap.Logger
}

// Option mutates Options.
type Option func(*Options)

func newOptions(opts []Option) Options {
	o := Options{
		Field: DefaultFieldConfig(),
		Burst: DefaultBurstConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Rand == nil {
		o.Rand = defaultRand()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// WithRand injects the randomness source.
func WithRand(r Rand) Option { return func(o *Options) { o.Rand = r } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithFieldConfig replaces the whole field configuration.
func WithFieldConfig(c FieldConfig) Option { return func(o *Options) { o.Field = c } }

// WithBurstConfig replaces the whole burst configuration.
func WithBurstConfig(c BurstConfig) Option { return func(o *Options) { o.Burst = c } }

// WithParticles sets the field particle count.
func WithParticles(n int) Option { return func(o *Options) { o.Field.Particles = n } }

// WithCount sets the number of elements per burst.
func WithCount(n int) Option { return func(o *Options) { o.Burst.Count = n } }

// WithColors sets the burst palette.
func WithColors(p Palette) Option { return func(o *Options) { o.Burst.Colors = p } }

// WithDistance sets the burst travel range.
func WithDistance(lo, hi float64) Option {
	return func(o *Options) { o.Burst.MinDistance, o.Burst.MaxDistance = lo, hi }
}

// WithDuration sets the burst animation duration range.
func WithDuration(lo, hi time.Duration) Option {
	return func(o *Options) { o.Burst.MinDuration, o.Burst.MaxDuration = lo, hi }
}

// WithCleanupDelay sets the burst removal delay.
func WithCleanupDelay(d time.Duration) Option {
	return func(o *Options) { o.Burst.CleanupDelay = d }
}
