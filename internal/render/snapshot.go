package render

import (
	"io"
	"math"
)

// WriteSVG paints f as a standalone SVG document.
func (p *Painter) WriteSVG(w io.Writer, f Frame) {
	doc := NewSVG(w, f.Size.W, f.Size.H, "snowfall")
	p.Paint(doc, f)
	doc.End()
}

// WritePNG paints f onto a raster of at most maxWidth pixels across and
// encodes it as PNG. A non-positive maxWidth keeps scene resolution.
func (p *Painter) WritePNG(w io.Writer, f Frame, maxWidth int) error {
	scale := 1.0
	if maxWidth > 0 && f.Size.W > maxWidth {
		scale = float64(maxWidth) / float64(f.Size.W)
	}
	pw := int(math.Ceil(float64(f.Size.W) * scale))
	ph := int(math.Ceil(float64(f.Size.H) * scale))
	r := NewRaster(pw, ph, scale)
	p.Paint(r, f)
	return r.EncodePNG(w)
}
