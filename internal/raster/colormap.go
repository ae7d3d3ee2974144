package raster

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Colormap is an ordered list of colours from low to high values.
type Colormap []colorful.Color

// MustColormap parses hex colours and panics on a malformed one. It is
// meant for package-level palettes.
func MustColormap(hexes ...string) Colormap {
	cm, err := ParseColormap(hexes...)
	if err != nil {
		panic(err)
	}
	return cm
}

// ParseColormap parses "#rrggbb" colours.
func ParseColormap(hexes ...string) (Colormap, error) {
	cm := make(Colormap, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("parsing colour %q: %w", h, err)
		}
		cm[i] = c
	}
	return cm, nil
}

// At interpolates the colour at t in [0, 1].
func (cm Colormap) At(t float64) colorful.Color {
	switch {
	case len(cm) == 0:
		return colorful.Color{}
	case len(cm) == 1 || t <= 0 || math.IsNaN(t):
		return cm[0]
	case t >= 1:
		return cm[len(cm)-1]
	}
	pos := t * float64(len(cm)-1)
	i := int(pos)
	return cm[i].BlendLab(cm[i+1], pos-float64(i)).Clamped()
}

// Reverse returns the colormap high-to-low.
func (cm Colormap) Reverse() Colormap {
	out := make(Colormap, len(cm))
	for i, c := range cm {
		out[len(cm)-1-i] = c
	}
	return out
}

// Palettes.
var (
	Greys9 = MustColormap("#000000", "#252525", "#525252", "#737373", "#969696", "#bdbdbd", "#d9d9d9", "#f0f0f0", "#ffffff")

	Inferno = MustColormap("#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4")

	Viridis = MustColormap("#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725")

	// Bivariate is the 3x3 land/total palette, land-major from
	// low/low to high/high.
	Bivariate = MustColormap("#e8e8e8", "#dfb0d6", "#be64ac", "#ace4e4", "#a5add3", "#8c62aa", "#5ac8c8", "#5698b9", "#3b4994")
)

// ColormapByName looks up a palette by name.
func ColormapByName(name string) (Colormap, error) {
	switch strings.ToLower(name) {
	case "greys9", "greys":
		return Greys9, nil
	case "inferno", "fire":
		return Inferno, nil
	case "viridis":
		return Viridis, nil
	}
	return nil, fmt.Errorf("unknown colormap %q (greys9|inferno|viridis)", name)
}

// ColorKey maps category levels to colours.
type ColorKey map[string]colorful.Color

// NewColorKey pairs levels with palette colours in order.
func NewColorKey(levels []string, palette Colormap) (ColorKey, error) {
	if len(palette) < len(levels) {
		return nil, fmt.Errorf("palette has %d colours for %d levels", len(palette), len(levels))
	}
	key := make(ColorKey, len(levels))
	for i, l := range levels {
		key[l] = palette[i]
	}
	return key, nil
}
