//go:build ebiten

package app

import (
	"time"

	"snowfall/internal/effect"
	"snowfall/internal/render"
	"snowfall/internal/snow"
	"snowfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts an effect controller to the ebiten.Game interface.
type Game struct {
	ctrl    *effect.Controller
	painter *render.Painter
	surface *render.Screen
	overlay *ui.Overlay
	hud     *ui.HUD
	label   *ui.Label

	seed     int64
	tickOnce bool
	sceneW   int
	sceneH   int
}

// New constructs a Game drawing ctrl's scene with label on top and a HUD
// panel hudWidth pixels wide on the right.
func New(ctrl *effect.Controller, label *ui.Label, hudWidth int, seed int64) *Game {
	size := ctrl.Size()
	g := &Game{
		ctrl:    ctrl,
		painter: render.NewPainter(),
		surface: render.NewScreen(),
		overlay: ui.NewOverlay(),
		label:   label,
		seed:    seed,
		sceneW:  size.W,
		sceneH:  size.H,
	}
	if hudWidth > 0 {
		g.hud = ui.NewHUD(ctrl, hudWidth)
	}
	return g
}

// Reset reinitializes the scene with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.ctrl.Reset(seed)
	g.tickOnce = false
}

// Update handles input and advances the scene by one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.SetPaused(!g.ctrl.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.ctrl.SetPaused(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.ctrl.Release()
	}

	g.overlay.Update()
	g.hud.Update(g.sceneW)

	if !g.ctrl.Frame() && g.tickOnce {
		g.ctrl.Step()
	}
	g.tickOnce = false
	return nil
}

// Draw renders the current scene, overlays, countdown and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	g.painter.Paint(g.surface, g.ctrl.Capture())

	if g.overlay.Active() || g.hud != nil {
		var dv ui.DebugView
		g.ctrl.View(func(s *snow.Scene) { dv = ui.CaptureDebug(s) })
		g.overlay.Draw(screen, dv)
		g.hud.SetStatus(dv.StatusLines()...)
	}
	if g.label != nil {
		g.label.Draw(screen, g.sceneW)
	}
	g.hud.Draw(screen, g.sceneW, g.sceneH)
}

// Layout resizes the scene to the window minus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := outsideWidth - g.hud.Width()
	if w > 0 && outsideHeight > 0 && (w != g.sceneW || outsideHeight != g.sceneH) {
		g.ctrl.Resize(w, outsideHeight)
		g.sceneW, g.sceneH = w, outsideHeight
	}
	return outsideWidth, outsideHeight
}
