package render

import (
	"image/color"

	"snowfall/internal/core"
)

// Theme holds the colours used to paint a frame.
type Theme struct {
	Sky       []Stop
	Ground    color.RGBA
	Snow      color.RGBA
	Chunk     color.RGBA
	Container color.RGBA
	Border    color.RGBA
	Cap       color.RGBA
	Body      []Stop
	Coal      color.RGBA
	Carrot    color.RGBA
	Twig      color.RGBA
}

// DefaultTheme is the night palette.
func DefaultTheme() Theme {
	return Theme{
		Sky: []Stop{
			{Offset: 0, Color: color.RGBA{R: 8, G: 14, B: 38, A: 255}},
			{Offset: 1, Color: color.RGBA{R: 44, G: 62, B: 104, A: 255}},
		},
		Ground:    color.RGBA{R: 232, G: 240, B: 250, A: 255},
		Snow:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Chunk:     color.RGBA{R: 214, G: 228, B: 245, A: 255},
		Container: color.RGBA{R: 24, G: 30, B: 52, A: 255},
		Border:    color.RGBA{R: 120, G: 140, B: 190, A: 255},
		Cap:       color.RGBA{R: 245, G: 249, B: 255, A: 255},
		Body: []Stop{
			{Offset: 0, Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
			{Offset: 1, Color: color.RGBA{R: 178, G: 196, B: 222, A: 255}},
		},
		Coal:   color.RGBA{R: 20, G: 20, B: 24, A: 255},
		Carrot: color.RGBA{R: 240, G: 128, B: 32, A: 255},
		Twig:   color.RGBA{R: 110, G: 72, B: 40, A: 255},
	}
}

// Painter draws frames onto surfaces.
type Painter struct {
	Theme Theme
	// FigureScale multiplies the snowman dimensions.
	FigureScale float64
}

// NewPainter returns a painter using the default theme.
func NewPainter() *Painter {
	return &Painter{Theme: DefaultTheme(), FigureScale: 1}
}

// Paint draws f back to front: sky, ground, figure, container and cap, then
// chunks and flakes.
func (p *Painter) Paint(dst Surface, f Frame) {
	th := p.Theme
	dst.LinearGradient(core.Rect{W: float64(f.Size.W), H: float64(f.Size.H)}, th.Sky)
	if len(f.Ground) > 2 {
		dst.FillPolygon(f.Ground, th.Ground)
	}
	p.paintFigure(dst, f.Figure)

	rect := f.Container
	if rect.W > 0 && rect.H > 0 {
		dst.FillRect(rect, th.Container)
		tl := core.Point{X: rect.Left(), Y: rect.Top()}
		tr := core.Point{X: rect.Right(), Y: rect.Top()}
		bl := core.Point{X: rect.Left(), Y: rect.Bottom()}
		br := core.Point{X: rect.Right(), Y: rect.Bottom()}
		dst.StrokeLine(tl, tr, 1, th.Border)
		dst.StrokeLine(tr, br, 1, th.Border)
		dst.StrokeLine(br, bl, 1, th.Border)
		dst.StrokeLine(bl, tl, 1, th.Border)
		if len(f.Cap) > 2 {
			dst.FillPolygon(f.Cap, th.Cap)
		}
	}

	for _, c := range f.Chunks {
		dst.FillCircle(core.Point{X: c.X, Y: c.Y}, c.R, th.Chunk)
	}
	for _, fl := range f.Flakes {
		dst.FillCircle(core.Point{X: fl.X, Y: fl.Y}, fl.R, th.Snow)
	}
}

// paintFigure draws a three-ball snowman standing on base.
func (p *Painter) paintFigure(dst Surface, base core.Point) {
	th := p.Theme
	k := p.FigureScale
	if k <= 0 {
		k = 1
	}
	bottomR, middleR, headR := 26*k, 19*k, 13*k

	bottom := core.Point{X: base.X, Y: base.Y - bottomR*0.9}
	middle := core.Point{X: base.X, Y: bottom.Y - bottomR - middleR*0.7}
	head := core.Point{X: base.X, Y: middle.Y - middleR - headR*0.7}

	dst.StrokeLine(core.Point{X: middle.X - middleR*0.8, Y: middle.Y}, core.Point{X: middle.X - middleR*2, Y: middle.Y - middleR}, 2*k, th.Twig)
	dst.StrokeLine(core.Point{X: middle.X + middleR*0.8, Y: middle.Y}, core.Point{X: middle.X + middleR*2, Y: middle.Y - middleR*0.9}, 2*k, th.Twig)

	dst.RadialGradient(bottom, bottomR, th.Body)
	dst.RadialGradient(middle, middleR, th.Body)
	dst.RadialGradient(head, headR, th.Body)

	for i := -1; i <= 1; i++ {
		dst.FillCircle(core.Point{X: middle.X, Y: middle.Y + float64(i)*middleR*0.45}, 2*k, th.Coal)
	}
	dst.FillCircle(core.Point{X: head.X - headR*0.35, Y: head.Y - headR*0.2}, 1.6*k, th.Coal)
	dst.FillCircle(core.Point{X: head.X + headR*0.35, Y: head.Y - headR*0.2}, 1.6*k, th.Coal)
	dst.FillPolygon([]core.Point{
		{X: head.X, Y: head.Y - 2*k},
		{X: head.X + headR*0.9, Y: head.Y + 1*k},
		{X: head.X, Y: head.Y + 2*k},
	}, th.Carrot)
}
