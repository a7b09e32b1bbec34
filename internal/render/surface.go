package render

import (
	"image/color"

	"snowfall/internal/core"
)

// Stop is one colour stop of a gradient. Offset runs from 0 to 1.
type Stop struct {
	Offset float64
	Color  color.RGBA
}

// Surface is the minimal drawing API the painter needs. Coordinates are in
// scene units with the origin at the top-left corner.
type Surface interface {
	Size() core.Size
	FillRect(r core.Rect, c color.RGBA)
	FillCircle(center core.Point, radius float64, c color.RGBA)
	FillPolygon(pts []core.Point, c color.RGBA)
	StrokeLine(a, b core.Point, width float64, c color.RGBA)
	// LinearGradient fills r with a top-to-bottom gradient.
	LinearGradient(r core.Rect, stops []Stop)
	// RadialGradient fills a circle shading outwards from an offset focus.
	RadialGradient(center core.Point, radius float64, stops []Stop)
}

// sampleStops interpolates the gradient colour at t.
func sampleStops(stops []Stop, t float64) color.RGBA {
	if len(stops) == 0 {
		return color.RGBA{}
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpRGBA(a.Color, b.Color, (t-a.Offset)/span)
	}
	return stops[len(stops)-1].Color
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
