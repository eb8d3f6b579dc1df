// Package palette holds the named color sets particles and sparks index into.
package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/lumen/config"
)

// Palette is a named, non-empty list of colors.
type Palette struct {
	Name   string
	Colors []colorful.Color
}

// Parse builds a palette from hex color strings.
func Parse(name string, hexColors []string) (Palette, error) {
	if len(hexColors) == 0 {
		return Palette{}, fmt.Errorf("palette %q: no colors", name)
	}
	p := Palette{Name: name, Colors: make([]colorful.Color, 0, len(hexColors))}
	for _, h := range hexColors {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("palette %q: color %q: %w", name, h, err)
		}
		p.Colors = append(p.Colors, c)
	}
	return p, nil
}

// FromConfig parses every configured palette.
func FromConfig(cfgs []config.PaletteConfig) ([]Palette, error) {
	out := make([]Palette, 0, len(cfgs))
	for _, pc := range cfgs {
		p, err := Parse(pc.Name, pc.Colors)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Len returns the number of colors.
func (p Palette) Len() int {
	return len(p.Colors)
}

// At returns color i, wrapping out-of-range indices.
func (p Palette) At(i int) colorful.Color {
	n := len(p.Colors)
	if n == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	i %= n
	if i < 0 {
		i += n
	}
	return p.Colors[i]
}

// RGBA returns color i as 8-bit channels with the given alpha in [0, 1].
func (p Palette) RGBA(i int, alpha float64) (r, g, b, a uint8) {
	r, g, b = p.At(i).Clamped().RGB255()
	return r, g, b, uint8(clamp01(alpha)*255 + 0.5)
}

// Glow returns color i blended toward white by amount in [0, 1].
// Blending happens in HCL so the hue survives.
func (p Palette) Glow(i int, amount float64) colorful.Color {
	white := colorful.Color{R: 1, G: 1, B: 1}
	return p.At(i).BlendHcl(white, clamp01(amount)).Clamped()
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
