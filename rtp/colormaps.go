// Package rtp renders range-time parameter plots, time series, summary
// panels, field-of-view fans and interactive HTML reports from fitacf
// records.
package rtp

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// Gradient is a color map that interpolates linearly between a list of
// color stops over a [Min, Max] value range. It implements both
// palette.ColorMap and, through Palette, the discrete palette.Palette
// used by heat maps.
type Gradient struct {
	stops []color.NRGBA
	min   float64
	max   float64
	alpha float64
}

// NewGradient builds a gradient over the given stops, evenly spaced
// across the value range. At least two stops are required.
func NewGradient(stops ...color.NRGBA) *Gradient {
	if len(stops) < 2 {
		panic("rtp: gradient needs at least two color stops")
	}
	return &Gradient{stops: stops, alpha: 1}
}

func (g *Gradient) Max() float64     { return g.max }
func (g *Gradient) SetMax(v float64) { g.max = v }
func (g *Gradient) Min() float64     { return g.min }
func (g *Gradient) SetMin(v float64) { g.min = v }
func (g *Gradient) Alpha() float64   { return g.alpha }

func (g *Gradient) SetAlpha(a float64) {
	if a < 0 || a > 1 {
		panic("rtp: alpha out of range")
	}
	g.alpha = a
}

// At returns the color for a value between Min and Max.
func (g *Gradient) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, errors.New("rtp: color requested for NaN")
	}
	if g.min == g.max {
		return nil, errors.New("rtp: color map range is empty")
	}
	if v < g.min || v > g.max {
		return nil, errors.New("rtp: value outside color map range")
	}
	t := (v - g.min) / (g.max - g.min)
	pos := t * float64(len(g.stops)-1)
	i := int(pos)
	if i >= len(g.stops)-1 {
		i = len(g.stops) - 2
	}
	f := pos - float64(i)
	a, b := g.stops[i], g.stops[i+1]
	return color.NRGBA{
		R: lerp(a.R, b.R, f),
		G: lerp(a.G, b.G, f),
		B: lerp(a.B, b.B, f),
		A: uint8(g.alpha * 255),
	}, nil
}

// Palette returns n evenly spaced colors sampled from the gradient.
func (g *Gradient) Palette(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	tmp := *g
	tmp.min, tmp.max = 0, 1
	colors := make([]color.Color, n)
	for i := range colors {
		c, _ := tmp.At(float64(i) / float64(n-1))
		colors[i] = c
	}
	return gradientPalette(colors)
}

type gradientPalette []color.Color

func (p gradientPalette) Colors() []color.Color { return p }

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// Named gradients for the usual fitacf parameters.
var (
	// PowerMap runs dark blue through green to red, for p_l in dB.
	PowerMap = NewGradient(
		color.NRGBA{R: 0x20, G: 0x21, B: 0x47, A: 0xff},
		color.NRGBA{R: 0x28, G: 0x70, B: 0x8e, A: 0xff},
		color.NRGBA{R: 0x35, G: 0xb7, B: 0x79, A: 0xff},
		color.NRGBA{R: 0xcd, G: 0xe1, B: 0x1d, A: 0xff},
		color.NRGBA{R: 0xf4, G: 0x68, B: 0x1d, A: 0xff},
		color.NRGBA{R: 0xc0, G: 0x16, B: 0x13, A: 0xff},
	)

	// VelocityMap diverges red (away) to blue (toward) about zero.
	VelocityMap = NewGradient(
		color.NRGBA{R: 0xb2, G: 0x18, B: 0x2b, A: 0xff},
		color.NRGBA{R: 0xef, G: 0x8a, B: 0x62, A: 0xff},
		color.NRGBA{R: 0xf7, G: 0xf7, B: 0xf7, A: 0xff},
		color.NRGBA{R: 0x67, G: 0xa9, B: 0xcf, A: 0xff},
		color.NRGBA{R: 0x21, G: 0x66, B: 0xac, A: 0xff},
	)

	// WidthMap runs white to purple, for spectral width.
	WidthMap = NewGradient(
		color.NRGBA{R: 0xfc, G: 0xfb, B: 0xfd, A: 0xff},
		color.NRGBA{R: 0x9e, G: 0x9a, B: 0xc8, A: 0xff},
		color.NRGBA{R: 0x3f, G: 0x00, B: 0x7d, A: 0xff},
	)

	// greyMap paints ground scatter cells a flat grey.
	greyMap = NewGradient(
		color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff},
		color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0xff},
	)
)

// fieldGradient picks the conventional gradient for a fitacf parameter.
func fieldGradient(field string) *Gradient {
	switch field {
	case "v":
		return VelocityMap
	case "w_l":
		return WidthMap
	default:
		return PowerMap
	}
}
