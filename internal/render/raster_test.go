package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"snowfall/internal/core"
	"snowfall/internal/snow"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.RGBA{R: 255, A: 255}
)

func TestRasterFillRect(t *testing.T) {
	r := NewRaster(10, 10, 1)
	r.FillRect(core.Rect{X: 2, Y: 3, W: 4, H: 2}, white)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 6 && y >= 3 && y < 5
			want := black
			if inside {
				want = white
			}
			if got := r.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestRasterFillCircleClipsToGrid(t *testing.T) {
	r := NewRaster(8, 8, 1)
	r.FillCircle(core.Point{X: 0, Y: 0}, 3, white)
	if r.At(0, 0) != white || r.At(1, 1) != white {
		t.Fatal("expected corner pixels inside circle")
	}
	if r.At(3, 3) != black {
		t.Fatal("expected pixel outside radius untouched")
	}
}

func TestRasterPolygonTriangle(t *testing.T) {
	r := NewRaster(10, 10, 1)
	r.FillPolygon([]core.Point{{X: 0, Y: 10}, {X: 10, Y: 10}, {X: 0, Y: 0}}, red)
	if r.At(1, 8) != red {
		t.Fatal("expected lower-left pixel filled")
	}
	if r.At(8, 1) != black {
		t.Fatal("expected upper-right pixel empty")
	}
}

func TestRasterStrokeLine(t *testing.T) {
	r := NewRaster(10, 10, 1)
	r.StrokeLine(core.Point{X: 0, Y: 5}, core.Point{X: 10, Y: 5}, 1, white)
	for x := 0; x < 10; x++ {
		if r.At(x, 4) != white && r.At(x, 5) != white {
			t.Fatalf("expected column %d crossed by the line", x)
		}
	}
	if r.At(5, 0) != black || r.At(5, 9) != black {
		t.Fatal("expected line to stay thin")
	}
}

func TestRasterLinearGradientRuns(t *testing.T) {
	r := NewRaster(4, 100, 1)
	r.LinearGradient(core.Rect{W: 4, H: 100}, []Stop{{Offset: 0, Color: black}, {Offset: 1, Color: white}})
	top, mid, bottom := r.At(0, 0), r.At(0, 50), r.At(0, 99)
	if !(top.R < mid.R && mid.R < bottom.R) {
		t.Fatalf("expected brightening gradient, got %v %v %v", top, mid, bottom)
	}
}

func TestRasterTranslucentBlend(t *testing.T) {
	r := NewRaster(2, 2, 1)
	r.FillRect(core.Rect{W: 2, H: 2}, color.RGBA{R: 255, G: 255, B: 255, A: 128})
	got := r.At(0, 0)
	if got.R < 120 || got.R > 135 {
		t.Fatalf("expected half blend, got %v", got)
	}
}

func TestRasterScale(t *testing.T) {
	r := NewRaster(50, 30, 0.5)
	if r.Size() != (core.Size{W: 100, H: 60}) {
		t.Fatalf("unexpected scene size %+v", r.Size())
	}
	r.FillRect(core.Rect{X: 20, Y: 20, W: 20, H: 20}, white)
	if r.At(15, 15) != white || r.At(25, 15) != black {
		t.Fatal("expected scene rect drawn at half scale")
	}
}

func TestRasterPaletteOverflowFallsBack(t *testing.T) {
	r := NewRaster(300, 1, 1)
	for x := 0; x < 300; x++ {
		r.FillRect(core.Rect{X: float64(x), W: 1, H: 1}, color.RGBA{R: uint8(x % 256), G: uint8(x / 256), A: 255})
	}
	if len(r.Palette()) != maxPalette {
		t.Fatalf("expected full palette, got %d", len(r.Palette()))
	}
	if got := r.At(299, 0); got.G != 0 && got.G != 1 {
		t.Fatalf("unexpected fallback colour %v", got)
	}
}

func TestPaintedScenePNG(t *testing.T) {
	s := snow.New(320, 200)
	for i := 0; i < 120; i++ {
		s.Step()
	}
	var buf bytes.Buffer
	if err := NewPainter().WritePNG(&buf, Capture(s), 160); err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 100 {
		t.Fatalf("unexpected bounds %v", b)
	}
	// The bottom row is covered by ground snow.
	r, g, b, _ := img.At(80, 99).RGBA()
	if r>>8 < 200 || g>>8 < 200 || b>>8 < 200 {
		t.Fatalf("expected snow at the bottom edge, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestFillPaletteRGBAEmptyPalette(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	fillPaletteRGBA(buf, []uint8{0, 1}, nil)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("byte %d not cleared: %d", i, v)
		}
	}
}
