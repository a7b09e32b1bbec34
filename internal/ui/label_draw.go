//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Draw centres the label horizontally near the top of a w-wide view.
func (l *Label) Draw(screen *ebiten.Image, w int) {
	main, detail := l.Text()
	if main == "" {
		return
	}
	face := basicfont.Face7x13
	y := 28
	l.drawShadowed(screen, main, (w-text.BoundString(face, main).Dx())/2, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	if detail != "" {
		l.drawShadowed(screen, detail, (w-text.BoundString(face, detail).Dx())/2, y+16, color.RGBA{R: 170, G: 190, B: 220, A: 255})
	}
}

func (l *Label) drawShadowed(screen *ebiten.Image, s string, x, y int, col color.Color) {
	face := basicfont.Face7x13
	text.Draw(screen, s, face, x+1, y+1, color.RGBA{A: 180})
	text.Draw(screen, s, face, x, y, col)
}
