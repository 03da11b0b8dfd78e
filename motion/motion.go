// Package motion estimates the short-term motion of a one-dimensional
// gesture from a sliding window of position samples.
//
// The pipeline is deliberately small. A bounded Window keeps the most recent
// samples of the active gesture. Fit solves the least-squares quadratic over
// a snapshot of that window and returns an immutable Quadratic, from which
// instantaneous velocity, acceleration and a short-horizon position forecast
// are derived. A VelocityTracker runs beside the fit as an independent,
// cheaper estimate of the same quantity, so the two can be displayed and
// compared.
//
// Timestamps are integer milliseconds, monotonic within a gesture; positions
// are unconstrained float64 values in whatever unit the input device
// reports. All derived rates are therefore units per millisecond.
package motion

// Sample is one observed gesture position: Y at T milliseconds. Sequences
// handed to the fitter must be non-decreasing in T; equal timestamps are
// allowed and are treated as independent observations.
type Sample struct {
	T int64   `json:"t"`
	Y float64 `json:"y"`
}
