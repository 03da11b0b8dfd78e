package plot

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"github.com/terrakok/TouchArena/motion"
)

// Default canvas geometry for callers that pass zero Options.
const (
	DefaultWidth  = 900
	DefaultHeight = 500
)

// Speed-to-color encoding for the sampled trail. The red and blue channels
// are centered on SpeedMidLevel and pushed apart by the local speed, so
// segments moving up render warm and segments moving down render cool.
const (
	SpeedMidLevel    = 128
	SpeedScaleFactor = 400.0 // channel steps per unit/ms
)

// tangentSpan is how much of the velocity tangent is drawn at the newest
// sample, in milliseconds.
const tangentSpan int64 = 60

// Options control the rendered canvas. Zero fields select the defaults.
type Options struct {
	Width   int
	Height  int
	Padding float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Padding <= 0 || o.Padding >= 1 {
		o.Padding = DefaultPadding
	}
	return o
}

// Render draws the estimator state for one gesture onto a black canvas.
// With hasFit true it draws the sampled trail, the fitted curve up to the
// forecast point, the green velocity tangent, the red projected-motion
// vector and a numeric overlay; with hasFit false only the trail and a hint
// are drawn. The caller owns the returned Mat and must Close it.
func Render(samples []motion.Sample, q motion.Quadratic, kin motion.Kinematics, hasFit bool, opts Options) gocv.Mat {
	opts = opts.withDefaults()

	img := gocv.NewMatWithSize(opts.Height, opts.Width, gocv.MatTypeCV8UC3)
	img.SetTo(gocv.NewScalar(0, 0, 0, 0)) // Black background

	hint := color.RGBA{R: 200, G: 200, B: 200, A: 255}

	ranges, ok := RangesOf(samples)
	if !ok {
		gocv.PutText(&img, "no samples", image.Pt(10, 22), gocv.FontHersheySimplex, 0.5, hint, 1)
		return img
	}
	if hasFit {
		// Keep the projection segment on canvas.
		ranges = ranges.Include(kin.Origin.T, kin.Origin.Y)
		ranges = ranges.Include(kin.Forecast.T, kin.Forecast.Y)
	}
	m := NewMapper(ranges, opts.Width, opts.Height, opts.Padding)

	// --- Draw the sampled trail ---
	for i := 0; i < len(samples)-1; i++ {
		p1 := m.Pt(samples[i].T, samples[i].Y)
		p2 := m.Pt(samples[i+1].T, samples[i+1].Y)
		gocv.Line(&img, p1, p2, speedColor(samples[i], samples[i+1]), 2)
	}
	dotColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for _, s := range samples {
		gocv.Circle(&img, m.Pt(s.T, s.Y), 2, dotColor, -1)
	}

	if !hasFit {
		gocv.PutText(&img, fmt.Sprintf("no fit (%d samples)", len(samples)), image.Pt(10, 22), gocv.FontHersheySimplex, 0.5, hint, 1)
		return img
	}

	// --- Draw the fitted curve through the window and past it ---
	curveColor := color.RGBA{R: 200, G: 200, B: 0, A: 255}
	const steps = 64
	span := ranges.TMax - ranges.TMin
	prev := m.Pt(ranges.TMin, q.Eval(ranges.TMin))
	for j := 1; j <= steps; j++ {
		t := ranges.TMin + span*int64(j)/steps
		pt := m.Pt(t, q.Eval(t))
		gocv.Line(&img, prev, pt, curveColor, 1)
		prev = pt
	}

	// --- Draw the velocity tangent at the newest sample ---
	origin := m.Pt(kin.Origin.T, kin.Origin.Y)
	tip := m.Pt(kin.Origin.T+tangentSpan, kin.Origin.Y+kin.Velocity*float64(tangentSpan))
	gocv.ArrowedLine(&img, origin, tip, color.RGBA{R: 0, G: 255, B: 0, A: 255}, 2)

	// --- Draw the projected-motion vector ---
	forecastColor := color.RGBA{R: 255, G: 0, B: 0, A: 255}
	forecast := m.Pt(kin.Forecast.T, kin.Forecast.Y)
	gocv.ArrowedLine(&img, origin, forecast, forecastColor, 2)
	gocv.Circle(&img, forecast, 4, forecastColor, -1)

	// --- Numeric overlay ---
	gocv.PutText(&img, fmt.Sprintf("vel %+.4f u/ms  trk %+.4f u/ms", kin.Velocity, kin.TrackerVelocity),
		image.Pt(10, 22), gocv.FontHersheySimplex, 0.45, hint, 1)
	gocv.PutText(&img, fmt.Sprintf("acc %+.5f u/ms^2  rmse %.3f", kin.Acceleration, kin.RMSE),
		image.Pt(10, 42), gocv.FontHersheySimplex, 0.45, hint, 1)

	return img
}

// speedColor encodes the finite-difference speed of one trail segment. A
// zero-dt segment keeps the neutral mid level.
func speedColor(a, b motion.Sample) color.RGBA {
	var v float64
	if dt := float64(b.T - a.T); dt > 0 {
		v = (b.Y - a.Y) / dt
	}
	r := uint8(math.Min(255, math.Max(0, SpeedMidLevel+v*SpeedScaleFactor)))
	bl := uint8(math.Min(255, math.Max(0, SpeedMidLevel-v*SpeedScaleFactor)))
	return color.RGBA{R: r, G: 64, B: bl, A: 255}
}
