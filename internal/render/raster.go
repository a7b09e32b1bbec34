package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"slices"

	"snowfall/internal/core"
)

// maxPalette is the number of distinct colours a byte grid can index.
const maxPalette = 256

// Raster is a software Surface writing palette indices into a byte grid. It
// backs the PNG snapshot and the terminal renderer.
type Raster struct {
	grid    *core.ByteGrid
	scale   float64
	palette []color.RGBA
	lookup  map[color.RGBA]uint8
}

// NewRaster returns a w*h raster. Scene coordinates are multiplied by scale
// before rasterising, so a scene can be drawn onto a smaller grid.
func NewRaster(w, h int, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	r := &Raster{grid: core.NewByteGrid(w, h), scale: scale}
	r.Clear(color.RGBA{A: 255})
	return r
}

// Clear resets the palette and fills every pixel with bg.
func (r *Raster) Clear(bg color.RGBA) {
	r.palette = r.palette[:0]
	r.lookup = make(map[color.RGBA]uint8)
	r.grid.Fill(r.index(bg))
}

// Size reports the covered area in scene units.
func (r *Raster) Size() core.Size {
	return core.Size{W: int(float64(r.grid.W) / r.scale), H: int(float64(r.grid.H) / r.scale)}
}

// Bounds returns the grid dimensions in pixels.
func (r *Raster) Bounds() core.Size { return core.Size{W: r.grid.W, H: r.grid.H} }

// At returns the colour of pixel (x, y).
func (r *Raster) At(x, y int) color.RGBA {
	if !r.grid.In(x, y) {
		return color.RGBA{}
	}
	return r.palette[r.grid.At(x, y)]
}

// Palette exposes the colours referenced by the grid.
func (r *Raster) Palette() []color.RGBA { return r.palette }

// Grid exposes the palette indices.
func (r *Raster) Grid() *core.ByteGrid { return r.grid }

// Image converts the raster to an RGBA image.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.grid.W, r.grid.H))
	fillPaletteRGBA(img.Pix, r.grid.Cells(), r.palette)
	return img
}

// EncodePNG writes the raster as a PNG image.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.Image())
}

func (r *Raster) FillRect(rect core.Rect, c color.RGBA) {
	x0, y0, x1, y1 := r.span(rect.Left(), rect.Top(), rect.Right(), rect.Bottom())
	idx := r.index(c)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.plot(x, y, idx, c)
		}
	}
}

func (r *Raster) FillCircle(center core.Point, radius float64, c color.RGBA) {
	idx := r.index(c)
	r.eachInCircle(center, radius, func(x, y int, _ float64) { r.plot(x, y, idx, c) })
}

func (r *Raster) RadialGradient(center core.Point, radius float64, stops []Stop) {
	// Light falls from the upper left, matching the vector backends.
	focus := core.Point{X: (center.X - radius*0.35) * r.scale, Y: (center.Y - radius*0.35) * r.scale}
	reach := radius * 1.35 * r.scale
	r.eachInCircle(center, radius, func(x, y int, _ float64) {
		d := math.Hypot(float64(x)+0.5-focus.X, float64(y)+0.5-focus.Y) / reach
		c := sampleStops(stops, math.Min(d, 1))
		r.plot(x, y, r.index(c), c)
	})
}

func (r *Raster) LinearGradient(rect core.Rect, stops []Stop) {
	x0, y0, x1, y1 := r.span(rect.Left(), rect.Top(), rect.Right(), rect.Bottom())
	h := rect.H * r.scale
	for y := y0; y < y1; y++ {
		t := 0.0
		if h > 0 {
			t = (float64(y) + 0.5 - rect.Top()*r.scale) / h
		}
		c := sampleStops(stops, t)
		idx := r.index(c)
		for x := x0; x < x1; x++ {
			r.plot(x, y, idx, c)
		}
	}
}

// FillPolygon fills pts with the even-odd rule, sampling pixel centres.
func (r *Raster) FillPolygon(pts []core.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minY = math.Min(minY, p.Y*r.scale)
		maxY = math.Max(maxY, p.Y*r.scale)
	}
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(r.grid.H, int(math.Ceil(maxY)))
	idx := r.index(c)
	xs := make([]float64, 0, 8)
	for y := y0; y < y1; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			ay, by := a.Y*r.scale, b.Y*r.scale
			if (ay <= sy) == (by <= sy) {
				continue
			}
			t := (sy - ay) / (by - ay)
			xs = append(xs, (a.X+(b.X-a.X)*t)*r.scale)
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := max(0, int(math.Ceil(xs[i]-0.5)))
			x1 := min(r.grid.W, int(math.Ceil(xs[i+1]-0.5)))
			for x := x0; x < x1; x++ {
				r.plot(x, y, idx, c)
			}
		}
	}
}

func (r *Raster) StrokeLine(a, b core.Point, width float64, c color.RGBA) {
	half := math.Max(width*r.scale, 1) / 2
	ax, ay, bx, by := a.X*r.scale, a.Y*r.scale, b.X*r.scale, b.Y*r.scale
	x0 := max(0, int(math.Floor(math.Min(ax, bx)-half)))
	x1 := min(r.grid.W, int(math.Ceil(math.Max(ax, bx)+half)))
	y0 := max(0, int(math.Floor(math.Min(ay, by)-half)))
	y1 := min(r.grid.H, int(math.Ceil(math.Max(ay, by)+half)))
	idx := r.index(c)
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			t := 0.0
			if lenSq > 0 {
				t = math.Max(0, math.Min(1, ((px-ax)*dx+(py-ay)*dy)/lenSq))
			}
			if math.Hypot(px-(ax+t*dx), py-(ay+t*dy)) <= half {
				r.plot(x, y, idx, c)
			}
		}
	}
}

func (r *Raster) eachInCircle(center core.Point, radius float64, fn func(x, y int, d float64)) {
	if radius <= 0 {
		return
	}
	cx, cy, rad := center.X*r.scale, center.Y*r.scale, radius*r.scale
	// Tiny flakes still cover their pixel when scaled down.
	if rad < 0.5 {
		rad = 0.5
	}
	x0 := max(0, int(math.Floor(cx-rad)))
	x1 := min(r.grid.W, int(math.Ceil(cx+rad)))
	y0 := max(0, int(math.Floor(cy-rad)))
	y1 := min(r.grid.H, int(math.Ceil(cy+rad)))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d <= rad {
				fn(x, y, d)
			}
		}
	}
}

func (r *Raster) span(left, top, right, bottom float64) (int, int, int, int) {
	x0 := max(0, int(math.Round(left*r.scale)))
	y0 := max(0, int(math.Round(top*r.scale)))
	x1 := min(r.grid.W, int(math.Round(right*r.scale)))
	y1 := min(r.grid.H, int(math.Round(bottom*r.scale)))
	return x0, y0, x1, y1
}

// plot writes idx, blending translucent colours over the existing pixel.
func (r *Raster) plot(x, y int, idx uint8, c color.RGBA) {
	if c.A == 0 {
		return
	}
	if c.A < 255 {
		under := r.palette[r.grid.At(x, y)]
		mixed := lerpRGBA(under, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}, float64(c.A)/255)
		idx = r.index(mixed)
	}
	r.grid.Set(x, y, idx)
}

// index returns the palette slot for c, adding it while there is room and
// falling back to the nearest existing colour afterwards.
func (r *Raster) index(c color.RGBA) uint8 {
	if i, ok := r.lookup[c]; ok {
		return i
	}
	if len(r.palette) < maxPalette {
		i := uint8(len(r.palette))
		r.palette = append(r.palette, c)
		r.lookup[c] = i
		return i
	}
	best, bestDist := 0, math.MaxInt
	for i, p := range r.palette {
		dr, dg, db := int(p.R)-int(c.R), int(p.G)-int(c.G), int(p.B)-int(c.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}
