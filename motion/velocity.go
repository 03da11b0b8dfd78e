package motion

// DefaultSmoothing is the decay factor a VelocityTracker uses when none is
// configured. Higher values weight history over the newest reading.
const DefaultSmoothing = 0.4

// VelocityTracker is the simple companion estimator that runs beside the
// quadratic fit: a two-point finite difference blended into a decaying
// average. It is fed the same samples as the window and surfaced next to the
// fitted velocity so the two estimates can be compared; they need not agree,
// and during sharp direction changes they usually do not.
type VelocityTracker struct {
	smoothing float64
	last      Sample
	velocity  float64
	primed    bool
}

// NewVelocityTracker creates a tracker with the given smoothing factor in
// (0, 1). Values outside that range fall back to DefaultSmoothing.
func NewVelocityTracker(smoothing float64) *VelocityTracker {
	if smoothing <= 0 || smoothing >= 1 {
		smoothing = DefaultSmoothing
	}
	return &VelocityTracker{smoothing: smoothing}
}

// Add feeds the next sample. The first sample only primes the tracker. A
// sample that does not advance time keeps the previous estimate but still
// replaces the reference point, so the next finite difference is taken
// against the newest observation.
func (vt *VelocityTracker) Add(s Sample) {
	if !vt.primed {
		vt.last = s
		vt.primed = true
		return
	}

	dt := float64(s.T - vt.last.T)
	if dt > 0 {
		raw := (s.Y - vt.last.Y) / dt
		vt.velocity = raw*(1-vt.smoothing) + vt.velocity*vt.smoothing
	}
	vt.last = s
}

// Velocity returns the current smoothed estimate in units per millisecond.
// It stays zero until two time-separated samples have been observed.
func (vt *VelocityTracker) Velocity() float64 { return vt.velocity }

// Reset returns the tracker to its unprimed initial state.
func (vt *VelocityTracker) Reset() {
	vt.last = Sample{}
	vt.velocity = 0
	vt.primed = false
}
