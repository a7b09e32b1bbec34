//go:build ebiten

package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"snowfall/internal/core"
)

// gradientBand is the height of one flat strip when approximating a linear
// gradient, in scene units.
const gradientBand = 4

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Screen draws onto an ebiten image with the vector package.
type Screen struct {
	dst  *ebiten.Image
	size core.Size

	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewScreen returns an unbound surface. Call Target before each frame.
func NewScreen() *Screen { return &Screen{} }

// Target points the surface at dst for the next Paint call.
func (s *Screen) Target(dst *ebiten.Image) {
	s.dst = dst
	b := dst.Bounds()
	s.size = core.Size{W: b.Dx(), H: b.Dy()}
}

func (s *Screen) Size() core.Size { return s.size }

func (s *Screen) FillRect(r core.Rect, c color.RGBA) {
	vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (s *Screen) FillCircle(center core.Point, radius float64, c color.RGBA) {
	vector.DrawFilledCircle(s.dst, float32(center.X), float32(center.Y), float32(radius), c, true)
}

func (s *Screen) StrokeLine(a, b core.Point, width float64, c color.RGBA) {
	vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, true)
}

func (s *Screen) FillPolygon(pts []core.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	s.path = vector.Path{}
	s.path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		s.path.LineTo(float32(p.X), float32(p.Y))
	}
	s.path.Close()

	s.vertices, s.indices = s.path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range s.vertices {
		v := &s.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.EvenOdd, AntiAlias: true}
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)
}

func (s *Screen) LinearGradient(r core.Rect, stops []Stop) {
	if r.H <= 0 {
		return
	}
	for y := 0.0; y < r.H; y += gradientBand {
		h := math.Min(gradientBand, r.H-y)
		c := sampleStops(stops, (y+h/2)/r.H)
		vector.DrawFilledRect(s.dst, float32(r.X), float32(r.Y+y), float32(r.W), float32(h), c, false)
	}
}

// RadialGradient layers shrinking discs towards the upper-left focus.
func (s *Screen) RadialGradient(center core.Point, radius float64, stops []Stop) {
	const rings = 12
	for i := 0; i < rings; i++ {
		t := float64(i) / rings
		rr := radius * (1 - t)
		shift := radius * 0.35 * t
		c := sampleStops(stops, 1-t)
		vector.DrawFilledCircle(s.dst, float32(center.X-shift), float32(center.Y-shift), float32(rr), c, true)
	}
}
