package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testCanvas() Canvas {
	return Canvas{Width: 4, Height: 2, X: Range{0, 4}, Y: Range{0, 2}}
}

func TestPoints(t *testing.T) {
	c := testCanvas()
	xs := []float64{0, 0.5, 3.9, 4, 5, -1}
	ys := []float64{0, 0.2, 1.9, 2, 1, 1}

	agg, err := c.Points(xs, ys)
	if err != nil {
		t.Fatalf("Points: %v", err)
	}

	// Bottom-left pixel is row 1; the upper edge lands in the last pixel.
	want := []uint32{
		0, 0, 0, 2,
		2, 0, 0, 0,
	}
	if diff := cmp.Diff(want, agg.Counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
	if agg.Total() != 4 {
		t.Errorf("total = %d, want 4", agg.Total())
	}
	if agg.At(3, 0) != 2 {
		t.Errorf("At(3,0) = %d, want 2", agg.At(3, 0))
	}
}

func TestPointsValidation(t *testing.T) {
	tests := []struct {
		name   string
		canvas Canvas
		xs, ys []float64
	}{
		{"zero size", Canvas{Width: 0, Height: 1, X: Range{0, 1}, Y: Range{0, 1}}, nil, nil},
		{"empty range", Canvas{Width: 1, Height: 1, X: Range{1, 1}, Y: Range{0, 1}}, nil, nil},
		{"length mismatch", testCanvas(), []float64{1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.canvas.Points(tt.xs, tt.ys); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPointsCat(t *testing.T) {
	c := testCanvas()
	xs := []float64{0.5, 0.5, 0.5, 3.5}
	ys := []float64{0.5, 0.5, 0.5, 1.5}
	cats := []string{"a", "b", "a", "zzz"}

	agg, err := c.PointsCat(xs, ys, cats, []string{"a", "b"})
	if err != nil {
		t.Fatalf("PointsCat: %v", err)
	}
	// (0.5, 0.5) is column 0, bottom row.
	if agg.Counts[0][4] != 2 || agg.Counts[1][4] != 1 {
		t.Errorf("counts at pixel 4 = %d/%d, want 2/1", agg.Counts[0][4], agg.Counts[1][4])
	}
	if got := agg.Totals()[4]; got != 3 {
		t.Errorf("total = %d, want 3", got)
	}
	if got := agg.Totals()[3]; got != 0 {
		t.Errorf("unknown category counted: %d", got)
	}
}

func TestShade(t *testing.T) {
	agg := &Agg{Width: 3, Height: 1, Counts: []uint32{0, 1, 100}}

	for _, how := range []How{EqHist, Linear, Log} {
		img := Shade(agg, Greys9, how)
		if img.NRGBAAt(0, 0).A != 0 {
			t.Errorf("how=%d: empty pixel should be transparent", how)
		}
		if got := img.NRGBAAt(1, 0); got != (color.NRGBA{A: 255}) {
			t.Errorf("how=%d: lowest count = %v, want black", how, got)
		}
		if got := img.NRGBAAt(2, 0); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
			t.Errorf("how=%d: highest count = %v, want white", how, got)
		}
	}
}

func TestShadeCat(t *testing.T) {
	agg := &CatAgg{
		Width:  2,
		Height: 1,
		Levels: []string{"red", "blue"},
		Counts: [][]uint32{{1, 0}, {1, 4}},
	}
	key, err := NewColorKey(agg.Levels, MustColormap("#ff0000", "#0000ff"))
	if err != nil {
		t.Fatalf("NewColorKey: %v", err)
	}

	img, err := ShadeCat(agg, key, Linear)
	if err != nil {
		t.Fatalf("ShadeCat: %v", err)
	}

	mixed := img.NRGBAAt(0, 0)
	if mixed.R != 128 || mixed.B != 128 || mixed.G != 0 {
		t.Errorf("mixed = %v, want even red/blue", mixed)
	}
	if mixed.A != minAlpha {
		t.Errorf("alpha = %d, want %d for the sparsest pixel", mixed.A, minAlpha)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("blue pixel = %v", got)
	}

	if _, err := ShadeCat(agg, ColorKey{}, Linear); err == nil {
		t.Error("expected error for missing colour")
	}
}

func TestSpread(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	src.SetNRGBA(2, 2, color.NRGBA{R: 255, A: 255})

	out := Spread(src, 1)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			inside := x >= 1 && x <= 3 && y >= 1 && y <= 3
			if got := out.NRGBAAt(x, y).A == 255; got != inside {
				t.Errorf("pixel (%d,%d) opaque = %v, want %v", x, y, got, inside)
			}
		}
	}
	if Spread(src, 0) != src {
		t.Error("px=0 should return the source image")
	}
}

func TestColormapAt(t *testing.T) {
	cm := MustColormap("#000000", "#ffffff")
	if r, _, _ := cm.At(0).RGB255(); r != 0 {
		t.Errorf("At(0) r = %d", r)
	}
	if r, _, _ := cm.At(1).RGB255(); r != 255 {
		t.Errorf("At(1) r = %d", r)
	}
	if got := cm.Reverse()[0]; got != cm[1] {
		t.Errorf("Reverse()[0] = %v", got)
	}
}

func TestParsers(t *testing.T) {
	if _, err := ColormapByName("inferno"); err != nil {
		t.Errorf("inferno: %v", err)
	}
	if _, err := ColormapByName("nope"); err == nil {
		t.Error("expected error for unknown colormap")
	}
	if h, err := ParseHow("log"); err != nil || h != Log {
		t.Errorf("ParseHow(log) = %v, %v", h, err)
	}
	if _, err := ParseHow("cubic"); err == nil {
		t.Error("expected error for unknown shading")
	}
	if bg, err := ParseBackground("lightgrey"); err != nil || bg != LightGrey {
		t.Errorf("ParseBackground(lightgrey) = %v, %v", bg, err)
	}
	if bg, err := ParseBackground("#102030"); err != nil || bg.G != 0x20 {
		t.Errorf("ParseBackground(hex) = %v, %v", bg, err)
	}
}

func TestExport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	path, err := Export(img, dir, "test", Black)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != filepath.Join(dir, "test.png") {
		t.Errorf("path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, _, _, a := decoded.At(1, 1).RGBA(); r != 0 || a != 0xffff {
		t.Errorf("transparent pixel should be flattened to black, got r=%d a=%d", r, a)
	}
	if r, _, _, _ := decoded.At(0, 0).RGBA(); r != 0xffff {
		t.Errorf("white pixel r = %d", r)
	}
}
