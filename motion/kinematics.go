package motion

// DefaultForecastHorizon is how far past the latest sample the projected
// position is evaluated, in milliseconds.
const DefaultForecastHorizon int64 = 150

// Kinematics bundles everything a display surface needs from one estimate:
// the fitted instantaneous values at the latest sample, the companion
// tracker's reading, the fit quality, and the projected-motion segment from
// the latest fitted position to the forecast point.
type Kinematics struct {
	Velocity        float64 `json:"velocity"`         // fitted velocity at the latest sample, units/ms
	Acceleration    float64 `json:"acceleration"`     // fitted acceleration, units/ms^2
	TrackerVelocity float64 `json:"tracker_velocity"` // companion finite-difference estimate, units/ms
	RMSE            float64 `json:"rmse"`             // root-mean-square residual of the fit
	Origin          Sample  `json:"origin"`           // fitted position at the latest timestamp
	Forecast        Sample  `json:"forecast"`         // fitted position horizon ms ahead
}

// Derive computes display kinematics for a fit over its samples. The slice
// must end at the timestamp the estimate should be anchored to, normally the
// same snapshot the fit was computed from. A horizon <= 0 falls back to
// DefaultForecastHorizon; an empty slice yields the zero Kinematics.
func Derive(q Quadratic, samples []Sample, trackerVelocity float64, horizon int64) Kinematics {
	if len(samples) == 0 {
		return Kinematics{}
	}
	if horizon <= 0 {
		horizon = DefaultForecastHorizon
	}

	lastT := samples[len(samples)-1].T
	aheadT := lastT + horizon

	return Kinematics{
		Velocity:        q.Velocity(lastT),
		Acceleration:    q.Acceleration(),
		TrackerVelocity: trackerVelocity,
		RMSE:            q.RMSE(samples),
		Origin:          Sample{T: lastT, Y: q.Eval(lastT)},
		Forecast:        Sample{T: aheadT, Y: q.Eval(aheadT)},
	}
}
