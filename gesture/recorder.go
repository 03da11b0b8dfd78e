// Package gesture connects an input source (touch, mouse, replayed
// recordings) to the motion estimator. A Recorder owns one gesture at a
// time: it keeps the sample window, the companion velocity tracker and the
// latest fit together behind a single lock, and refits synchronously on
// every mutation so readers always observe an estimate consistent with the
// window contents.
package gesture

import (
	"sync"

	"github.com/terrakok/TouchArena/motion"
)

// Config tunes a Recorder. The zero value selects the motion package
// defaults for every field.
type Config struct {
	// WindowSize is the sample window capacity; <= 0 means
	// motion.DefaultWindowSize.
	WindowSize int
	// Smoothing is the tracker decay factor; values outside (0,1) mean
	// motion.DefaultSmoothing.
	Smoothing float64
	// ForecastHorizon is the projection look-ahead in milliseconds; <= 0
	// means motion.DefaultForecastHorizon.
	ForecastHorizon int64
}

// Recorder ingests the samples of the active gesture and keeps the estimate
// current. It is safe for a producer goroutine to feed it while others read;
// each Observe completes its refit before returning, so a reader after an
// Observe sees that sample reflected in the fit.
type Recorder struct {
	mu      sync.RWMutex
	window  *motion.Window
	tracker *motion.VelocityTracker
	horizon int64

	fit    motion.Quadratic
	hasFit bool
}

// NewRecorder creates a Recorder with the given configuration.
func NewRecorder(cfg Config) *Recorder {
	horizon := cfg.ForecastHorizon
	if horizon <= 0 {
		horizon = motion.DefaultForecastHorizon
	}
	return &Recorder{
		window:  motion.NewWindow(cfg.WindowSize),
		tracker: motion.NewVelocityTracker(cfg.Smoothing),
		horizon: horizon,
	}
}

// Start begins a new gesture: the window, the tracker and the cached fit are
// all dropped.
func (r *Recorder) Start() {
	r.mu.Lock()
	r.window.Clear()
	r.tracker.Reset()
	r.fit = motion.Quadratic{}
	r.hasFit = false
	r.mu.Unlock()
}

// Observe appends one sample at t milliseconds and refits the window before
// returning. Timestamps must be non-decreasing within a gesture; ties are
// fine.
func (r *Recorder) Observe(t int64, y float64) {
	r.mu.Lock()
	s := motion.Sample{T: t, Y: y}
	r.window.Append(s)
	r.tracker.Add(s)
	q, err := motion.Fit(r.window.Snapshot())
	r.fit, r.hasFit = q, err == nil
	r.mu.Unlock()
}

// Fit returns the estimate computed by the most recent mutation. ok is false
// while the window is too small or the last fit was degenerate.
func (r *Recorder) Fit() (q motion.Quadratic, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fit, r.hasFit
}

// Samples returns a snapshot of the current gesture's window, oldest first.
func (r *Recorder) Samples() []motion.Sample {
	return r.window.Snapshot()
}

// Kinematics derives the display values anchored at the latest sample. ok
// mirrors Fit.
func (r *Recorder) Kinematics() (kin motion.Kinematics, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.hasFit {
		return motion.Kinematics{}, false
	}
	return motion.Derive(r.fit, r.window.Snapshot(), r.tracker.Velocity(), r.horizon), true
}

// TrackerVelocity returns the companion estimator's current reading even
// when no quadratic fit exists yet.
func (r *Recorder) TrackerVelocity() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tracker.Velocity()
}
