// Package plot renders the estimator's view of a gesture onto a raster
// canvas: the sampled trail colored by local speed, the fitted curve, the
// velocity tangent at the newest sample and the projected-motion vector to
// the forecast point.
package plot

import (
	"image"

	"github.com/terrakok/TouchArena/motion"
)

const (
	// MinTimeSpan and MinValueSpan replace degenerate domain ranges (all
	// samples at one timestamp, or all at one position) so the pixel
	// mapping never divides by zero. The substituted span is centered on
	// the degenerate value.
	MinTimeSpan  int64 = 100 // milliseconds
	MinValueSpan       = 10.0

	// DefaultPadding is the fraction of the value range kept clear above
	// and below the extreme samples, so the trail is not drawn flush
	// against the canvas edge.
	DefaultPadding = 0.10
)

// Ranges is the domain bounding box a Mapper projects from.
type Ranges struct {
	TMin, TMax int64
	YMin, YMax float64
}

// RangesOf scans samples for their extremes. ok is false for an empty
// slice.
func RangesOf(samples []motion.Sample) (r Ranges, ok bool) {
	if len(samples) == 0 {
		return Ranges{}, false
	}
	r = Ranges{TMin: samples[0].T, TMax: samples[0].T, YMin: samples[0].Y, YMax: samples[0].Y}
	for _, s := range samples[1:] {
		if s.T < r.TMin {
			r.TMin = s.T
		}
		if s.T > r.TMax {
			r.TMax = s.T
		}
		if s.Y < r.YMin {
			r.YMin = s.Y
		}
		if s.Y > r.YMax {
			r.YMax = s.Y
		}
	}
	return r, true
}

// Include widens the ranges to cover one more point, typically the forecast
// target that lies past the newest sample.
func (r Ranges) Include(t int64, y float64) Ranges {
	if t < r.TMin {
		r.TMin = t
	}
	if t > r.TMax {
		r.TMax = t
	}
	if y < r.YMin {
		r.YMin = y
	}
	if y > r.YMax {
		r.YMax = y
	}
	return r
}

// Mapper projects domain points onto a width x height pixel canvas. Larger
// y values map to smaller row indices, so "up" in the gesture is "up" on
// screen. A Mapper is a plain value; build one per frame from the current
// ranges.
type Mapper struct {
	width, height int
	tMin, tSpan   float64
	yMin, ySpan   float64
}

// NewMapper builds a Mapper over r for a width x height canvas. Degenerate
// ranges are widened around their midpoint to the minimum spans. padding is
// the vertical padding fraction; negative values are treated as zero.
func NewMapper(r Ranges, width, height int, padding float64) Mapper {
	if padding < 0 {
		padding = 0
	}

	tMin := float64(r.TMin)
	tSpan := float64(r.TMax - r.TMin)
	if tSpan == 0 {
		tSpan = float64(MinTimeSpan)
		tMin -= tSpan / 2
	}

	yMin := r.YMin
	ySpan := r.YMax - r.YMin
	if ySpan < 1e-9 {
		ySpan = MinValueSpan
		yMin = (r.YMin+r.YMax)/2 - ySpan/2
	}

	// Vertical padding widens the value range on both sides.
	yMin -= ySpan * padding
	ySpan *= 1 + 2*padding

	return Mapper{
		width:  width,
		height: height,
		tMin:   tMin,
		tSpan:  tSpan,
		yMin:   yMin,
		ySpan:  ySpan,
	}
}

// Pt maps a domain point to canvas pixel coordinates, flipping the vertical
// axis. Points outside the ranges map outside the canvas; callers that care
// must Include them in the ranges first.
func (m Mapper) Pt(t int64, y float64) image.Point {
	fx := (float64(t) - m.tMin) / m.tSpan
	fy := (y - m.yMin) / m.ySpan
	px := int(fx * float64(m.width-1))
	py := int((1 - fy) * float64(m.height-1))
	return image.Pt(px, py)
}
