// Package term draws the snow scene in a terminal using half-block cells.
package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"snowfall/internal/core"
	"snowfall/internal/render"
)

// Scene units covered by one terminal cell. Each cell shows two vertically
// stacked pixels, so one pixel spans CellWidth units in both directions.
const (
	CellWidth  = 8
	CellHeight = 2 * CellWidth
)

// upperHalf paints the top pixel in the foreground colour and the bottom one
// in the background colour.
const upperHalf = '▀'

// Renderer converts painted frames into screen cells.
type Renderer struct {
	screen  tcell.Screen
	painter *render.Painter
	raster  *render.Raster
}

// NewRenderer wraps an initialised screen.
func NewRenderer(screen tcell.Screen, painter *render.Painter) *Renderer {
	if painter == nil {
		painter = render.NewPainter()
		painter.FigureScale = 1
	}
	return &Renderer{screen: screen, painter: painter}
}

// SceneSize returns the scene dimensions that fill the current screen.
func (r *Renderer) SceneSize() core.Size {
	cols, rows := r.screen.Size()
	return SceneSizeFor(cols, rows)
}

// SceneSizeFor maps a cols*rows terminal to scene units.
func SceneSizeFor(cols, rows int) core.Size {
	return core.Size{W: max(cols, 1) * CellWidth, H: max(rows, 1) * CellHeight}
}

// Draw paints f and overlays the text lines centred from the top row.
func (r *Renderer) Draw(f render.Frame, lines ...string) {
	cols, rows := r.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	if r.raster == nil || r.raster.Bounds() != (core.Size{W: cols, H: rows * 2}) {
		r.raster = render.NewRaster(cols, rows*2, 1.0/CellWidth)
	}
	r.raster.Clear(color.RGBA{A: 255})
	r.painter.Paint(r.raster, f)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := r.raster.At(x, 2*y)
			bottom := r.raster.At(x, 2*y+1)
			style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
			r.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
	for i, line := range lines {
		r.drawText(line, i+1, cols)
	}
	r.screen.Show()
}

func (r *Renderer) drawText(s string, row, cols int) {
	_, rows := r.screen.Size()
	if row >= rows {
		return
	}
	runes := []rune(s)
	x0 := max(0, (cols-len(runes))/2)
	for i, ch := range runes {
		x := x0 + i
		if x >= cols {
			return
		}
		bg := rgb(r.raster.At(x, 2*row+1))
		r.screen.SetContent(x, row, ch, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(bg).Bold(true))
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
