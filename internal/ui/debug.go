package ui

import (
	"fmt"

	"snowfall/internal/core"
	"snowfall/internal/snow"
)

// DebugView is the heightmap and collision data drawn by the overlay.
type DebugView struct {
	Size        core.Size
	Ground      []float64
	GroundWidth float64
	Base        float64
	Cap         []float64
	CapWidth    float64
	CapMax      float64
	Container   core.Rect
	Band        float64
	Stats       snow.Stats
	Chunks      int
}

// CaptureDebug copies the overlay data out of s.
func CaptureDebug(s *snow.Scene) DebugView {
	return DebugView{
		Size:        s.Size(),
		Ground:      append([]float64(nil), s.Ground().Samples()...),
		GroundWidth: s.Ground().BucketWidth(),
		Base:        s.Ground().Base(),
		Cap:         append([]float64(nil), s.Cap().Samples()...),
		CapWidth:    s.Cap().BucketWidth(),
		CapMax:      s.Cap().Max(),
		Container:   s.Container(),
		Band:        s.Config().Params.CapBand,
		Stats:       s.Stats(),
		Chunks:      len(s.Chunks()),
	}
}

// StatusLines summarises v for the HUD.
func (v DebugView) StatusLines() []string {
	peak := 0.0
	for _, h := range v.Cap {
		peak = max(peak, h)
	}
	return []string{
		fmt.Sprintf("frame %d", v.Stats.Frames),
		fmt.Sprintf("cap peak %.1f / %.0f", peak, v.CapMax),
		fmt.Sprintf("releases %d", v.Stats.Releases),
		fmt.Sprintf("chunks %d falling, %d landed", v.Chunks, v.Stats.ChunksLanded),
	}
}
