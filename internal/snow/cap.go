package snow

import (
	"math"

	"snowfall/internal/core"
)

// Cap is the snow resting on top of the foreground container. Unlike Ground
// it does not decay; it is clamped per bucket and drained on release.
type Cap struct {
	bucketWidth float64
	max         float64

	width   float64
	samples []float64
}

// NewCap builds an empty cap using the cap settings from p.
func NewCap(p Params) *Cap {
	bw := p.CapBucketWidth
	if bw <= 0 {
		bw = 1
	}
	return &Cap{bucketWidth: bw, max: math.Max(0, p.CapMax)}
}

// Init resets the cap to ceil(width/bucketWidth) empty buckets.
func (c *Cap) Init(width float64) {
	if width < 0 {
		width = 0
	}
	n := int(math.Ceil(width / c.bucketWidth))
	c.width = width
	c.samples = make([]float64, n)
}

// Deposit adds amount at the bucket under localX (measured from the
// container's left edge), clamped to the configured maximum.
func (c *Cap) Deposit(localX, amount float64) {
	if amount <= 0 || localX < 0 || math.IsNaN(localX) {
		return
	}
	idx := int(math.Floor(localX / c.bucketWidth))
	if idx >= len(c.samples) {
		// the right edge itself belongs to the last bucket
		if localX > c.width || len(c.samples) == 0 {
			return
		}
		idx = len(c.samples) - 1
	}
	c.samples[idx] = math.Min(c.samples[idx]+amount, c.max)
}

// HeightAt returns the cap depth under localX, or 0 outside the cap.
func (c *Cap) HeightAt(localX float64) float64 {
	if localX < 0 || math.IsNaN(localX) {
		return 0
	}
	idx := int(math.Floor(localX / c.bucketWidth))
	if idx >= len(c.samples) {
		return 0
	}
	return c.samples[idx]
}

// Drain calls fn for every bucket holding more than threshold, then resets
// every bucket to zero.
func (c *Cap) Drain(threshold float64, fn func(i int, h float64)) {
	for i, h := range c.samples {
		if h > threshold && fn != nil {
			fn(i, h)
		}
	}
	for i := range c.samples {
		c.samples[i] = 0
	}
}

// Total returns the summed depth of every bucket.
func (c *Cap) Total() float64 {
	sum := 0.0
	for _, h := range c.samples {
		sum += h
	}
	return sum
}

// Peak returns the deepest bucket.
func (c *Cap) Peak() float64 {
	peak := 0.0
	for _, h := range c.samples {
		if h > peak {
			peak = h
		}
	}
	return peak
}

// Outline returns the cap silhouette resting on top of rect.
func (c *Cap) Outline(rect core.Rect) []core.Point {
	pts := make([]core.Point, 0, len(c.samples)+2)
	pts = append(pts, core.Point{X: rect.Left(), Y: rect.Top()})
	for i, h := range c.samples {
		x := rect.Left() + float64(i)*c.bucketWidth
		if x > rect.Right() {
			x = rect.Right()
		}
		pts = append(pts, core.Point{X: x, Y: rect.Top() - h})
	}
	pts = append(pts, core.Point{X: rect.Right(), Y: rect.Top()})
	return pts
}

// Len returns the number of buckets.
func (c *Cap) Len() int { return len(c.samples) }

// Samples exposes the bucket heights.
func (c *Cap) Samples() []float64 { return c.samples }

// BucketWidth returns the horizontal size of one bucket.
func (c *Cap) BucketWidth() float64 { return c.bucketWidth }

// Max returns the per-bucket clamp.
func (c *Cap) Max() float64 { return c.max }

// Width returns the container width the cap was initialised for.
func (c *Cap) Width() float64 { return c.width }

// ChunkCount returns how many released chunks a bucket of height h becomes.
func ChunkCount(h, divisor float64) int {
	if h <= 0 {
		return 0
	}
	if divisor <= 0 {
		divisor = 1
	}
	return int(math.Ceil(h / divisor))
}
