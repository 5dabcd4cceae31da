// Package game hosts the effect engines in an ebiten window.
package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/landing-fx/internal/config"
	"github.com/iburimskiy/landing-fx/internal/fx"
	"github.com/iburimskiy/landing-fx/internal/host"
	"go.uber.org/zap"
)

var (
	backgroundTop    = color.NRGBA{R: 0x0f, G: 0x20, B: 0x27, A: 0xff}
	backgroundBottom = color.NRGBA{R: 0x2c, G: 0x53, B: 0x64, A: 0xff}
)

// Game implements ebiten.Game.
type Game struct {
	cfg config.Config
	log *zap.Logger

	host   *host.Host
	canvas *canvas
	field  *fx.ParticleField
	burst  *fx.BurstEffect
	tap    *host.FrameTap

	started       time.Time
	width, height int

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	debug bool
}

// New wires both engines onto a fresh host. The field starts on the first
// Update so its canvas is created inside the game loop.
func New(cfg config.Config, log *zap.Logger) *Game {
	now := time.Now()
	h := host.New(now,
		host.WithMaxElements(config.MaxElements),
		host.WithLogger(log.Named("host")))
	h.SetViewport(cfg.Window.Width, cfg.Window.Height)

	c := &canvas{}
	h.Register(config.CanvasID, c)

	opts := []fx.Option{
		fx.WithLogger(log),
		fx.WithFieldConfig(cfg.Field),
		fx.WithBurstConfig(cfg.Burst),
	}
	return &Game{
		cfg:     cfg,
		log:     log,
		host:    h,
		canvas:  c,
		field:   fx.NewParticleField(h, opts...),
		burst:   fx.NewBurstEffect(h, opts...),
		tap:     host.NewFrameTap(config.FrameRingSize),
		started: now,
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
		prevKey: map[ebiten.Key]bool{},
	}
}

// Close stops the field and clears any confetti still in flight.
func (g *Game) Close() {
	g.field.Stop()
	g.burst.Shutdown()
}

func (g *Game) Update() error {
	now := time.Now()
	g.tap.Mark(now)

	g.host.Tick(now)
	// Start draws its first frame itself; starting after Tick keeps the
	// queued second frame for the next update.
	if !g.field.Running() {
		g.field.Start(config.CanvasID)
	}

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	bx, by, bw, bh := g.buttonRect()
	g.buttonHovered = mouseX >= bx && mouseX <= bx+bw &&
		mouseY >= by && mouseY <= by+bh

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.buttonHovered {
			g.buttonPressed = true
		} else {
			g.burst.Burst(float64(mouseX), float64(mouseY))
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			// Button was clicked
			g.burst.Burst(float64(bx)+float64(bw)/2, float64(by)+float64(bh)/2)
		}
		g.buttonPressed = false
	}

	if justPressed(ebiten.KeySpace) {
		g.burst.Burst(float64(g.width)/2, float64(g.height)/2)
	}
	if justPressed(ebiten.KeyD) {
		g.debug = !g.debug
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	if g.canvas.img != nil {
		screen.DrawImage(g.canvas.img, nil)
	}

	g.drawConfetti(screen)
	g.drawButton(screen)

	if g.debug {
		g.drawDebug(screen)
	}
	ebitenutil.DebugPrintAt(screen, "Click for confetti - Space: burst - D: debug - Esc/Q: quit", 12, g.height-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.width, g.height
	}
	g.width, g.height = outsideWidth, outsideHeight
	g.host.SetViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) buttonRect() (x, y, w, h int) {
	w, h = config.ButtonWidth, config.ButtonHeight
	x = (g.width - w) / 2
	y = g.height - config.ButtonBottom - h
	return x, y, w, h
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	for y := 0; y < g.height; y++ {
		ratio := float64(y) / float64(max(g.height-1, 1))
		c := color.NRGBA{
			R: lerp8(backgroundTop.R, backgroundBottom.R, ratio),
			G: lerp8(backgroundTop.G, backgroundBottom.G, ratio),
			B: lerp8(backgroundTop.B, backgroundBottom.B, ratio),
			A: 0xff,
		}
		vector.StrokeLine(screen, 0, float32(y), float32(g.width), float32(y), 1, c, false)
	}
}

func (g *Game) drawConfetti(screen *ebiten.Image) {
	now := g.host.Now()
	for _, c := range g.host.Elements() {
		x, y, op, _ := c.Sample(now)
		col := c.Color
		col.A = scaleAlpha(col.A, op)
		if col.A == 0 {
			continue
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(c.Size/2), col, true)
	}
}

func (g *Game) drawButton(screen *ebiten.Image) {
	x, y, w, h := g.buttonRect()

	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.NRGBA{R: 0xca, G: 0x8a, B: 0x04, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 255} // Hovered
	} else {
		bgColor = color.NRGBA{R: 0xea, G: 0xb3, B: 0x08, A: 255} // Normal
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)

	borderColor := color.NRGBA{R: 0xfe, G: 0xf0, B: 0x8a, A: 255}
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, borderColor, false)

	text := config.ButtonCaption
	textWidth := len(text) * 6 // debug font glyph width
	ebitenutil.DebugPrintAt(screen, text, x+(w-textWidth)/2, y+(h-16)/2)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	status := fmt.Sprintf("FPS %.0f  TPS %.0f  particles %d  confetti %d  up %s",
		g.tap.FPS(), ebiten.ActualTPS(), len(g.field.Particles()), g.burst.Active(),
		formatDuration(g.host.Now().Sub(g.started)))
	ebitenutil.DebugPrintAt(screen, status, 12, 12)

	// Frame interval sparkline, green at 60 Hz shading to red at 20 Hz.
	intervals := g.tap.Snapshot(config.SparkWidth)
	ox, oy := float32(12), float32(34+config.SparkHeight)
	vector.DrawFilledRect(screen, ox, oy-config.SparkHeight, config.SparkWidth, config.SparkHeight,
		color.NRGBA{A: 160}, false)
	for i, d := range intervals {
		ms := float64(d) / float64(time.Millisecond)
		load := clamp01((ms - 16.7) / (50 - 16.7))
		r, gg, b := hsvToRgb(120*(1-load), 0.8, 0.9)
		hgt := float32(clamp01(ms/50) * config.SparkHeight)
		vector.DrawFilledRect(screen, ox+float32(i), oy-hgt, 1, hgt, color.NRGBA{R: r, G: gg, B: b, A: 255}, false)
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*clamp01(t))
}
