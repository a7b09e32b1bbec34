// Package effect serialises access to a snow scene shared between the
// render loop, the periodic release timer and the frontends.
package effect

import (
	"fmt"
	"strconv"
	"sync"

	"snowfall/internal/core"
	"snowfall/internal/render"
	"snowfall/internal/snow"
)

// ReleaseEvent describes one cap release.
type ReleaseEvent struct {
	Chunks int
	Total  uint64
}

// Controller owns a scene behind a single mutex.
type Controller struct {
	mu        sync.Mutex
	scene     *snow.Scene
	paused    bool
	listeners []func(ReleaseEvent)
}

// New wraps scene. The controller takes ownership; callers must not touch
// the scene directly afterwards.
func New(scene *snow.Scene) *Controller {
	return &Controller{scene: scene}
}

// OnRelease registers fn to be called after every release. Listeners run
// outside the scene lock.
func (c *Controller) OnRelease(fn func(ReleaseEvent)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Frame advances the scene by one step unless paused. It reports whether a
// step happened.
func (c *Controller) Frame() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return false
	}
	c.scene.Step()
	return true
}

// Step advances one frame regardless of the pause state.
func (c *Controller) Step() {
	c.mu.Lock()
	c.scene.Step()
	c.mu.Unlock()
}

// Release drains the cap into falling chunks and returns how many spawned.
func (c *Controller) Release() int {
	c.mu.Lock()
	n := c.scene.ReleaseCap()
	ev := ReleaseEvent{Chunks: n, Total: c.scene.Stats().Releases}
	listeners := append([]func(ReleaseEvent){}, c.listeners...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
	return n
}

// Resize forwards a viewport change.
func (c *Controller) Resize(w, h int) {
	c.mu.Lock()
	c.scene.Resize(w, h)
	c.mu.Unlock()
}

// Reset re-seeds the scene. A zero seed uses the configured one.
func (c *Controller) Reset(seed int64) {
	c.mu.Lock()
	c.scene.Reset(seed)
	c.mu.Unlock()
}

// View runs fn with the scene locked. fn must not retain the scene or any
// slice it returns.
func (c *Controller) View(fn func(*snow.Scene)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.scene)
}

// SetPaused toggles frame advancement.
func (c *Controller) SetPaused(paused bool) {
	c.mu.Lock()
	c.paused = paused
	c.mu.Unlock()
}

// Paused reports whether Frame is currently a no-op.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Stats returns the scene counters.
func (c *Controller) Stats() snow.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.Stats()
}

// Size returns the current viewport.
func (c *Controller) Size() core.Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.Size()
}

// Parameters returns the tunables snapshot.
func (c *Controller) Parameters() core.ParameterSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.Parameters()
}

// ParameterControls lists the HUD-adjustable tunables.
func (c *Controller) ParameterControls() []core.ParameterControl {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.ParameterControls()
}

// SetIntParameter implements core.IntParameterSetter.
func (c *Controller) SetIntParameter(key string, value int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.SetIntParameter(key, value)
}

// SetFloatParameter implements core.FloatParameterSetter.
func (c *Controller) SetFloatParameter(key string, value float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.SetFloatParameter(key, value)
}

// Name returns the scene variant.
func (c *Controller) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.Name()
}

// Capture copies the drawable state under the lock.
func (c *Controller) Capture() render.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return render.Capture(c.scene)
}

// SetParameter parses value according to the control registered for key and
// applies it.
func (c *Controller) SetParameter(key, value string) error {
	return c.SetParameters(map[string]string{key: value})
}

// SetParameters parses every value first and applies them only when all are
// valid, so a rejected request changes nothing.
func (c *Controller) SetParameters(values map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	controls := c.scene.ParameterControls()
	parsed := make(map[string]float64, len(values))
	types := make(map[string]core.ParamType, len(values))
	for key, value := range values {
		v, typ, err := parseParameter(controls, key, value)
		if err != nil {
			return err
		}
		parsed[key], types[key] = v, typ
	}
	for key, v := range parsed {
		if types[key] == core.ParamTypeInt {
			c.scene.SetIntParameter(key, int(v))
		} else {
			c.scene.SetFloatParameter(key, v)
		}
	}
	return nil
}

func parseParameter(controls []core.ParameterControl, key, value string) (float64, core.ParamType, error) {
	for _, ctrl := range controls {
		if ctrl.Key != key {
			continue
		}
		switch ctrl.Type {
		case core.ParamTypeInt:
			v, err := strconv.Atoi(value)
			if err != nil {
				return 0, ctrl.Type, fmt.Errorf("parameter %s: %w", key, err)
			}
			return clamp(float64(v), ctrl), ctrl.Type, nil
		case core.ParamTypeFloat:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return 0, ctrl.Type, fmt.Errorf("parameter %s: %w", key, err)
			}
			return clamp(v, ctrl), ctrl.Type, nil
		}
		return 0, ctrl.Type, fmt.Errorf("parameter %s has unsupported type %s", key, ctrl.Type)
	}
	return 0, "", fmt.Errorf("unknown parameter %q", key)
}

func clamp(v float64, ctrl core.ParameterControl) float64 {
	if ctrl.HasMin && v < ctrl.Min {
		v = ctrl.Min
	}
	if ctrl.HasMax && v > ctrl.Max {
		v = ctrl.Max
	}
	return v
}
