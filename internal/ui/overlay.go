//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the scene.
type Overlay struct {
	showGround bool
	showCap    bool
	pixel      *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the layers: 1 for ground buckets, 2 for the cap and its
// collision band.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showGround = !o.showGround
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showCap = !o.showCap
	}
}

// Active reports whether any layer is on.
func (o *Overlay) Active() bool { return o.showGround || o.showCap }

// Draw renders the enabled layers from v.
func (o *Overlay) Draw(screen *ebiten.Image, v DebugView) {
	if v.Size.W <= 0 || v.Size.H <= 0 {
		return
	}
	if o.showGround {
		o.drawGround(screen, v)
	}
	if o.showCap {
		o.drawCap(screen, v)
	}
}

func (o *Overlay) drawGround(screen *ebiten.Image, v DebugView) {
	h := float64(v.Size.H)
	bar := color.RGBA{R: 80, G: 170, B: 230, A: 110}
	for i, depth := range v.Ground {
		x := float64(i)*v.GroundWidth + v.GroundWidth/2
		o.drawLine(screen, x, h, x, h-depth, math.Max(1, v.GroundWidth-1), bar)
	}
	o.drawLine(screen, 0, h-v.Base, float64(v.Size.W), h-v.Base, 1, color.RGBA{R: 255, G: 200, B: 60, A: 200})
}

func (o *Overlay) drawCap(screen *ebiten.Image, v DebugView) {
	rect := v.Container
	band := color.RGBA{R: 255, G: 90, B: 90, A: 70}
	o.drawRect(screen, rect.Left(), rect.Top(), rect.W, v.Band, band)
	for i, depth := range v.Cap {
		if depth <= 0 {
			continue
		}
		x := rect.Left() + float64(i)*v.CapWidth + v.CapWidth/2
		fill := clamp01(depth / v.CapMax)
		col := color.RGBA{R: uint8(120 + 135*fill), G: 200, B: uint8(255 - 155*fill), A: 180}
		o.drawLine(screen, x, rect.Top(), x, rect.Top()-depth, math.Max(1, v.CapWidth-0.5), col)
	}
	o.drawLine(screen, rect.Left(), rect.Top()-v.CapMax, rect.Right(), rect.Top()-v.CapMax, 1, color.RGBA{R: 255, G: 120, B: 200, A: 160})
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
