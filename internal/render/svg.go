package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"snowfall/internal/core"
)

// SVG is a Surface emitting an SVG document. Coordinates are rounded to whole
// units.
type SVG struct {
	canvas *svg.SVG
	size   core.Size
	nextID int
}

// NewSVG starts a w*h document on out. Call End when done drawing.
func NewSVG(out io.Writer, w, h int, title string) *SVG {
	canvas := svg.New(out)
	canvas.Start(w, h)
	if title != "" {
		canvas.Title(title)
	}
	return &SVG{canvas: canvas, size: core.Size{W: w, H: h}}
}

// End closes the document.
func (s *SVG) End() { s.canvas.End() }

func (s *SVG) Size() core.Size { return s.size }

func (s *SVG) FillRect(r core.Rect, c color.RGBA) {
	s.canvas.Rect(iround(r.X), iround(r.Y), iround(r.W), iround(r.H), fillStyle(c))
}

func (s *SVG) FillCircle(center core.Point, radius float64, c color.RGBA) {
	s.canvas.Circle(iround(center.X), iround(center.Y), max(1, iround(radius)), fillStyle(c))
}

func (s *SVG) FillPolygon(pts []core.Point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = iround(p.X), iround(p.Y)
	}
	s.canvas.Polygon(xs, ys, fillStyle(c))
}

func (s *SVG) StrokeLine(a, b core.Point, width float64, c color.RGBA) {
	style := fmt.Sprintf("stroke:%s;stroke-width:%g;stroke-linecap:round", rgb(c), math.Max(width, 1))
	if c.A < 255 {
		style += fmt.Sprintf(";stroke-opacity:%.3f", float64(c.A)/255)
	}
	s.canvas.Line(iround(a.X), iround(a.Y), iround(b.X), iround(b.Y), style)
}

func (s *SVG) LinearGradient(r core.Rect, stops []Stop) {
	id := s.gradientID()
	s.canvas.Def()
	s.canvas.LinearGradient(id, 0, 0, 0, 100, offcolors(stops))
	s.canvas.DefEnd()
	s.canvas.Rect(iround(r.X), iround(r.Y), iround(r.W), iround(r.H), "fill:url(#"+id+")")
}

func (s *SVG) RadialGradient(center core.Point, radius float64, stops []Stop) {
	id := s.gradientID()
	s.canvas.Def()
	s.canvas.RadialGradient(id, 50, 50, 70, 32, 32, offcolors(stops))
	s.canvas.DefEnd()
	s.canvas.Circle(iround(center.X), iround(center.Y), max(1, iround(radius)), "fill:url(#"+id+")")
}

func (s *SVG) gradientID() string {
	s.nextID++
	return fmt.Sprintf("g%d", s.nextID)
}

func offcolors(stops []Stop) []svg.Offcolor {
	out := make([]svg.Offcolor, 0, len(stops))
	for _, st := range stops {
		off := math.Max(0, math.Min(1, st.Offset))
		out = append(out, svg.Offcolor{
			Offset:  uint8(math.Round(off * 100)),
			Color:   rgb(st.Color),
			Opacity: float64(st.Color.A) / 255,
		})
	}
	return out
}

func fillStyle(c color.RGBA) string {
	if c.A < 255 {
		return fmt.Sprintf("fill:%s;fill-opacity:%.3f", rgb(c), float64(c.A)/255)
	}
	return "fill:" + rgb(c)
}

func rgb(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func iround(v float64) int { return int(math.Round(v)) }
