package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// How selects the scaling from counts to colormap position.
type How int

const (
	// EqHist spreads the colormap evenly over the ranks of the counts.
	EqHist How = iota
	// Linear scales counts linearly between their min and max.
	Linear
	// Log scales log1p(count) linearly.
	Log
)

// ParseHow parses "eq_hist", "linear" or "log".
func ParseHow(s string) (How, error) {
	switch strings.ToLower(s) {
	case "eq_hist", "eqhist", "":
		return EqHist, nil
	case "linear":
		return Linear, nil
	case "log":
		return Log, nil
	}
	return 0, fmt.Errorf("unknown shading %q (eq_hist|linear|log)", s)
}

// minAlpha keeps sparse categorical pixels visible.
const minAlpha = 40

// Shade colours each non-empty pixel by its scaled count. Empty pixels are
// transparent.
func Shade(agg *Agg, cmap Colormap, how How) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, agg.Width, agg.Height))
	scale := scaler(agg.Counts, how)

	for i, c := range agg.Counts {
		if c == 0 {
			continue
		}
		r, g, b := cmap.At(scale(c)).RGB255()
		img.Pix[i*4+0] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = 255
	}
	return img
}

// ShadeCat colours each pixel by the count-weighted mean of its category
// colours. Alpha grows with the pixel's total count, scaled by how.
func ShadeCat(agg *CatAgg, key ColorKey, how How) (*image.NRGBA, error) {
	colors := make([]colorful.Color, len(agg.Levels))
	for i, l := range agg.Levels {
		c, ok := key[l]
		if !ok {
			return nil, fmt.Errorf("no colour for category %q", l)
		}
		colors[i] = c
	}

	img := image.NewNRGBA(image.Rect(0, 0, agg.Width, agg.Height))
	totals := agg.Totals()
	scale := scaler(totals, how)

	for px, total := range totals {
		if total == 0 {
			continue
		}
		var r, g, b float64
		for lvl, counts := range agg.Counts {
			w := float64(counts[px]) / float64(total)
			r += colors[lvl].R * w
			g += colors[lvl].G * w
			b += colors[lvl].B * w
		}
		mixed := colorful.Color{R: r, G: g, B: b}.Clamped()
		cr, cg, cb := mixed.RGB255()
		alpha := minAlpha + (255-minAlpha)*scale(total)

		img.Pix[px*4+0] = cr
		img.Pix[px*4+1] = cg
		img.Pix[px*4+2] = cb
		img.Pix[px*4+3] = uint8(math.Round(alpha))
	}
	return img, nil
}

// scaler returns a function mapping a non-zero count to [0, 1].
func scaler(counts []uint32, how How) func(uint32) float64 {
	var lo, hi uint32 = math.MaxUint32, 0
	var nonzero []uint32
	for _, c := range counts {
		if c == 0 {
			continue
		}
		if c < lo {
			lo = c
		}
		if c > hi {
			hi = c
		}
		if how == EqHist {
			nonzero = append(nonzero, c)
		}
	}
	if hi == 0 || lo == hi {
		return func(uint32) float64 { return 1 }
	}

	switch how {
	case Linear:
		span := float64(hi - lo)
		return func(c uint32) float64 { return float64(c-lo) / span }
	case Log:
		l, h := math.Log1p(float64(lo)), math.Log1p(float64(hi))
		return func(c uint32) float64 { return (math.Log1p(float64(c)) - l) / (h - l) }
	default:
		return eqHist(nonzero)
	}
}

// eqHist maps a count to the fraction of distinct non-zero counts at or
// below it, so each colour step covers a similar share of pixels.
func eqHist(values []uint32) func(uint32) float64 {
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	distinct := values[:0:0]
	cum := []int{}
	for i, v := range values {
		if i == 0 || v != values[i-1] {
			distinct = append(distinct, v)
			cum = append(cum, 0)
		}
		cum[len(cum)-1] = i + 1
	}
	first := float64(cum[0])
	n := float64(len(values))

	return func(c uint32) float64 {
		i := sort.Search(len(distinct), func(i int) bool { return distinct[i] >= c })
		if i >= len(distinct) {
			return 1
		}
		return (float64(cum[i]) - first) / (n - first)
	}
}

// Spread grows every opaque pixel into a (2px+1) square, keeping the most
// opaque source pixel where squares overlap.
func Spread(src *image.NRGBA, px int) *image.NRGBA {
	if px <= 0 {
		return src
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			s := src.NRGBAAt(x, y)
			if s.A == 0 {
				continue
			}
			for dy := -px; dy <= px; dy++ {
				for dx := -px; dx <= px; dx++ {
					p := image.Pt(x+dx, y+dy)
					if !p.In(b) {
						continue
					}
					if dst.NRGBAAt(p.X, p.Y).A < s.A {
						dst.SetNRGBA(p.X, p.Y, s)
					}
				}
			}
		}
	}
	return dst
}

// Background colours used by the exported maps.
var (
	Black     = color.NRGBA{A: 255}
	LightGrey = color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 255}
)

// ParseBackground accepts "black", "lightgrey", "white" or a hex colour.
func ParseBackground(s string) (color.NRGBA, error) {
	switch strings.ToLower(s) {
	case "black", "":
		return Black, nil
	case "lightgrey", "lightgray":
		return LightGrey, nil
	case "white":
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parsing background %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
