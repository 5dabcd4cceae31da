package fx

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette is a fixed set of colours drawn from uniformly.
type Palette []color.NRGBA

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Pick returns a uniformly chosen colour. An empty palette yields white.
func (p Palette) Pick(r Rand) color.NRGBA {
	if len(p) == 0 {
		return white
	}
	i := int(r.Float64() * float64(len(p)))
	if i >= len(p) {
		i = len(p) - 1
	}
	return p[i]
}

// MustPalette is ParsePalette for compile-time constants.
func MustPalette(hex ...string) Palette {
	p, err := ParsePalette(hex)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePalette parses a list of CSS hex colours.
func ParsePalette(hex []string) (Palette, error) {
	p := make(Palette, 0, len(hex))
	for _, h := range hex {
		c, err := ParseHexColor(h)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

// ParseHexColor accepts #rgb, #rgba, #rrggbb and #rrggbbaa.
func ParseHexColor(s string) (color.NRGBA, error) {
	h, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("color %q: missing leading #", s)
	}
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, ch := range h {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		h = b.String()
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("color %q: unsupported length %d", s, len(h))
	}
	if len(h) == 6 {
		h += "ff"
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
