package web

import (
	"fmt"

	"github.com/evcraddock/nycviz/internal/raster"
)

const (
	chartWidth   = 640
	chartHeight  = 320
	marginLeft   = 64
	marginRight  = 16
	marginTop    = 16
	marginBottom = 48
	barFill      = 0.7
	yTicks       = 4
)

var healthColors = map[string]string{
	"Good": "#4daf4a",
	"Fair": "#ffbf00",
	"Poor": "#e41a1c",
}

type chartView struct {
	Width, Height int
	Left, Right   float64
	Top, Bottom   float64
	Rects         []rectView
	XLabels       []textView
	YTicks        []textView
	Legend        []legendView
	XTitle        string
	YTitle        string
	Empty         bool
}

type rectView struct {
	X, Y, W, H float64
	Fill       string
	Title      string
}

type textView struct {
	X, Y float64
	Text string
}

type legendView struct {
	X, Y float64
	Fill string
	Name string
}

// svgChart lays out fig as vertical bars. Traces are grouped side by side
// unless the layout bar mode is "stack".
func svgChart(fig Figure) chartView {
	v := chartView{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   marginLeft,
		Right:  chartWidth - marginRight,
		Top:    marginTop,
		Bottom: chartHeight - marginBottom,
		XTitle: fig.Layout.XAxisTitle,
		YTitle: fig.Layout.YAxisTitle,
	}

	cats := categories(fig.Data)
	if len(cats) == 0 {
		v.Empty = true
		return v
	}
	stacked := fig.Layout.BarMode == "stack"

	maxY := 0.0
	if stacked {
		sums := make(map[string]float64)
		for _, tr := range fig.Data {
			for i, x := range tr.X {
				sums[x] += tr.Y[i]
			}
		}
		for _, s := range sums {
			maxY = max(maxY, s)
		}
	} else {
		for _, tr := range fig.Data {
			for _, y := range tr.Y {
				maxY = max(maxY, y)
			}
		}
	}
	if maxY <= 0 {
		maxY = 1
	}

	plotW := v.Right - v.Left
	plotH := v.Bottom - v.Top
	band := plotW / float64(len(cats))
	barW := band * barFill
	slot := make(map[string]int, len(cats))
	for i, c := range cats {
		slot[c] = i
		v.XLabels = append(v.XLabels, textView{X: v.Left + band*(float64(i)+0.5), Y: v.Bottom + 16, Text: c})
	}

	base := make(map[string]float64)
	for ti, tr := range fig.Data {
		fill := traceColor(tr, ti, len(fig.Data))
		for i, x := range tr.X {
			y := tr.Y[i]
			h := y / maxY * plotH
			x0 := v.Left + band*float64(slot[x]) + (band-barW)/2
			w := barW
			top := v.Bottom - h
			if stacked {
				top -= base[x]
				base[x] += h
			} else if n := len(fig.Data); n > 1 {
				w = barW / float64(n)
				x0 += w * float64(ti)
			}
			title := fmt.Sprintf("%s: %s", x, formatValue(y))
			if tr.Name != "" {
				title = tr.Name + " " + title
			}
			v.Rects = append(v.Rects, rectView{X: x0, Y: top, W: w, H: h, Fill: fill, Title: title})
		}
		if tr.Name != "" {
			v.Legend = append(v.Legend, legendView{X: v.Right - 80, Y: v.Top + 18*float64(ti), Fill: fill, Name: tr.Name})
		}
	}

	for k := 0; k <= yTicks; k++ {
		val := maxY * float64(k) / yTicks
		v.YTicks = append(v.YTicks, textView{X: v.Left - 6, Y: v.Bottom - plotH*float64(k)/yTicks, Text: formatValue(val)})
	}
	return v
}

// categories returns the x values of all traces in first-seen order.
func categories(traces []Trace) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tr := range traces {
		for _, x := range tr.X {
			if !seen[x] {
				seen[x] = true
				out = append(out, x)
			}
		}
	}
	return out
}

func traceColor(tr Trace, i, n int) string {
	if c, ok := healthColors[tr.Name]; ok {
		return c
	}
	if n <= 1 {
		return raster.Viridis.At(0.35).Hex()
	}
	return raster.Viridis.At(float64(i) / float64(n-1)).Hex()
}

func formatValue(f float64) string {
	if f == float64(int64(f)) {
		return formatWithCommas(int64(f))
	}
	return fmt.Sprintf("%.1f", f)
}
