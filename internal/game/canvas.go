package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// canvas is the offscreen image the particle field paints into.
type canvas struct {
	img *ebiten.Image
}

func (c *canvas) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if c.img != nil {
		b := c.img.Bounds()
		if b.Dx() == width && b.Dy() == height {
			c.img.Clear()
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(width, height)
}

func (c *canvas) Clear() {
	if c.img != nil {
		c.img.Clear()
	}
}

func (c *canvas) FillCircle(x, y, radius float64, col color.NRGBA, alpha float64) {
	if c.img == nil {
		return
	}
	col.A = scaleAlpha(col.A, alpha)
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(radius), col, true)
}
