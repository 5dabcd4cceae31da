package config

import (
	"fmt"

	"github.com/iburimskiy/landing-fx/internal/fx"
	"github.com/iburimskiy/landing-fx/internal/logger"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "landing-fx - click to burst, D: debug, Esc/Q: quit"

	// CanvasID is the surface the particle field binds to.
	CanvasID = "particle-canvas"

	// Download button, centred horizontally.
	ButtonWidth   = 240
	ButtonHeight  = 64
	ButtonBottom  = 120
	ButtonCaption = "DOWNLOAD"

	// Debug overlay
	FrameRingSize = 120
	SparkWidth    = 120
	SparkHeight   = 32

	// MaxElements caps live confetti in the layer.
	MaxElements = 4096

	ServiceName = "landing-fx"
)

// Window holds the host window settings.
type Window struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
}

// Config is the fully resolved runtime configuration.
type Config struct {
	Window Window
	Field  fx.FieldConfig
	Burst  fx.BurstConfig
	Log    logger.Config
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			Resizable: true,
		},
		Field: fx.DefaultFieldConfig(),
		Burst: fx.DefaultBurstConfig(),
		Log: logger.Config{
			Environment: "development",
			LogLevel:    "info",
			ServiceName: ServiceName,
		},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: invalid size %dx%d", c.Window.Width, c.Window.Height)
	}
	if err := c.Field.Validate(); err != nil {
		return err
	}
	if err := c.Burst.Validate(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.Log.LogLevel); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}
