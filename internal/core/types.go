package core

// Size describes the dimensions of a scene viewport in scene units.
type Size struct {
	W int
	H int
}

// Point is a position in scene coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in scene coordinates.
type Rect struct {
	X, Y float64
	W, H float64
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Offset returns the rectangle translated by dx, dy.
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// CenteredRect returns a w*h rectangle centred inside a viewport of the given
// size. Dimensions larger than the viewport are shrunk to fit.
func CenteredRect(size Size, w, h float64) Rect {
	vw, vh := float64(size.W), float64(size.H)
	if w > vw {
		w = vw
	}
	if h > vh {
		h = vh
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: (vw - w) / 2, Y: (vh - h) / 2, W: w, H: h}
}
