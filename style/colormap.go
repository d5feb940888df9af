// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package style turns normalized Evaluations into cell styles.
package style

import (
	"fmt"
	"image/color"
	"math"
	"sort"
)

// RGB is a color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// Hex8 returns the color whose 8-bit channels are given.
func Hex8(r, g, b uint8) RGB {
	return RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// bytes truncates each channel to 8 bits. The small bias keeps
// channels built from 8-bit values exact.
func (c RGB) bytes() (r, g, b uint8) {
	ch := func(x float64) uint8 { return uint8(math.Min(clamp(x)*255+1e-9, 255)) }
	return ch(c.R), ch(c.G), ch(c.B)
}

// Hex returns c as a CSS hex color such as "#f2f2f2".
func (c RGB) Hex() string {
	r, g, b := c.bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// SGR returns the ANSI escape parameters that set c as the terminal
// background color.
func (c RGB) SGR() string {
	r, g, b := c.bytes()
	return fmt.Sprintf("48;2;%d;%d;%d", r, g, b)
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{
		R: uint8(math.Round(clamp(c.R) * 255)),
		G: uint8(math.Round(clamp(c.G) * 255)),
		B: uint8(math.Round(clamp(c.B) * 255)),
		A: 0xff,
	}.RGBA()
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// A Colormap assigns a color to every value in [0, 1].
type Colormap interface {
	At(x float64) RGB
}

// ColormapFunc adapts a function to a Colormap.
type ColormapFunc func(x float64) RGB

func (f ColormapFunc) At(x float64) RGB { return f(x) }

// A Stop pins a color at a position in [0, 1].
type Stop struct {
	Pos   float64
	Color RGB
}

// Linear interpolates linearly between color stops. Stops must be
// sorted by position. Values outside the stops take the nearest
// end color.
type Linear []Stop

func (l Linear) At(x float64) RGB {
	if len(l) == 0 {
		return RGB{}
	}
	x = clamp(x)
	i := sort.Search(len(l), func(i int) bool { return l[i].Pos >= x })
	switch {
	case i == 0:
		return l[0].Color
	case i == len(l):
		return l[len(l)-1].Color
	}
	lo, hi := l[i-1], l[i]
	if hi.Pos == lo.Pos {
		return hi.Color
	}
	t := (x - lo.Pos) / (hi.Pos - lo.Pos)
	mix := func(a, b float64) float64 { return a + (b-a)*t }
	return RGB{mix(lo.Color.R, hi.Color.R), mix(lo.Color.G, hi.Color.G), mix(lo.Color.B, hi.Color.B)}
}

// Diverging returns a colormap that blends from low through center to
// high, holding center over a band of width sep in the middle.
func Diverging(low, center, high RGB, sep float64) Linear {
	half := (1 - sep) / 2
	return Linear{{0, low}, {half, center}, {1 - half, center}, {1, high}}
}

// DefaultDiverging runs from teal for the best values through light
// gray around the baseline to pink for the worst.
var DefaultDiverging = Diverging(Hex8(0x59, 0xc7, 0xbb), Hex8(0xf2, 0xf2, 0xf2), Hex8(0xf0, 0xa0, 0xb1), 100.0/256)
