package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/iburimskiy/landing-fx/internal/fx"
)

// fileRoot is the top-level shape of an effects file. Every block and
// attribute is optional; absent values keep their defaults. Unknown blocks
// and attributes are rejected by gohcl.
type fileRoot struct {
	Window *windowBlock `hcl:"window,block"`
	Field  *fieldBlock  `hcl:"field,block"`
	Burst  *burstBlock  `hcl:"burst,block"`
	Log    *logBlock    `hcl:"log,block"`
}

type windowBlock struct {
	Width     *int    `hcl:"width,optional"`
	Height    *int    `hcl:"height,optional"`
	Title     *string `hcl:"title,optional"`
	Resizable *bool   `hcl:"resizable,optional"`
}

type fieldBlock struct {
	Particles *int     `hcl:"particles,optional"`
	MinRadius *float64 `hcl:"min_radius,optional"`
	MaxRadius *float64 `hcl:"max_radius,optional"`
	MaxSpeed  *float64 `hcl:"max_speed,optional"`
	Opacity   *float64 `hcl:"opacity,optional"`
	Colors    []string `hcl:"colors,optional"`
}

type burstBlock struct {
	Count         *int      `hcl:"count,optional"`
	MinDistance   *float64  `hcl:"min_distance,optional"`
	MaxDistance   *float64  `hcl:"max_distance,optional"`
	MinDurationMS *int      `hcl:"min_duration_ms,optional"`
	MaxDurationMS *int      `hcl:"max_duration_ms,optional"`
	CleanupMS     *int      `hcl:"cleanup_ms,optional"`
	Size          *float64  `hcl:"size,optional"`
	Colors        []string  `hcl:"colors,optional"`
	Easing        []float64 `hcl:"easing,optional"`
}

type logBlock struct {
	Level       *string `hcl:"level,optional"`
	Environment *string `hcl:"environment,optional"`
}

// Load reads the HCL file at path over the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source over the defaults. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	cfg := Default()
	if err := root.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", filename, err)
	}
	return cfg, nil
}

func (r *fileRoot) apply(cfg *Config) error {
	if w := r.Window; w != nil {
		set(&cfg.Window.Width, w.Width)
		set(&cfg.Window.Height, w.Height)
		set(&cfg.Window.Title, w.Title)
		set(&cfg.Window.Resizable, w.Resizable)
	}

	if f := r.Field; f != nil {
		set(&cfg.Field.Particles, f.Particles)
		set(&cfg.Field.MinRadius, f.MinRadius)
		set(&cfg.Field.MaxRadius, f.MaxRadius)
		set(&cfg.Field.MaxSpeed, f.MaxSpeed)
		set(&cfg.Field.Opacity, f.Opacity)
		if f.Colors != nil {
			p, err := fx.ParsePalette(f.Colors)
			if err != nil {
				return fmt.Errorf("field: %w", err)
			}
			cfg.Field.Colors = p
		}
	}

	if b := r.Burst; b != nil {
		set(&cfg.Burst.Count, b.Count)
		set(&cfg.Burst.MinDistance, b.MinDistance)
		set(&cfg.Burst.MaxDistance, b.MaxDistance)
		set(&cfg.Burst.Size, b.Size)
		setMillis(&cfg.Burst.MinDuration, b.MinDurationMS)
		setMillis(&cfg.Burst.MaxDuration, b.MaxDurationMS)
		setMillis(&cfg.Burst.CleanupDelay, b.CleanupMS)
		if b.Colors != nil {
			p, err := fx.ParsePalette(b.Colors)
			if err != nil {
				return fmt.Errorf("burst: %w", err)
			}
			cfg.Burst.Colors = p
		}
		if b.Easing != nil {
			if len(b.Easing) != 4 {
				return fmt.Errorf("burst: easing needs 4 control values, got %d", len(b.Easing))
			}
			e := b.Easing
			cfg.Burst.Easing = fx.CubicBezier(e[0], e[1], e[2], e[3])
		}
	}

	if l := r.Log; l != nil {
		set(&cfg.Log.LogLevel, l.Level)
		set(&cfg.Log.Environment, l.Environment)
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setMillis(dst *time.Duration, ms *int) {
	if ms != nil {
		*dst = time.Duration(*ms) * time.Millisecond
	}
}
