package tracefit

import "math"

// Params is a pulse-shape parameter vector. The ordering follows the
// fit output: amplitude, first time constant, second time constant,
// time offset. For TES the time constants are the rise and fall times
// (microseconds); for FET they are the inverse decay and recovery
// rates (per microsecond).
type Params [4]float64

// Parameter vector indices.
const (
	pAmp = iota
	pT1
	pT2
	pOffset
)

// TESShape is the shape of a flipped, baseline-subtracted TES current
// pulse: a difference of two exponentials with independent rise and
// fall time constants.
//
//	a * (exp(-(t-t0)/fallTime) - exp(-(t-t0)/riseTime))
//
// Total on all real inputs; pathological parameters (zero or equal
// time constants) produce Inf/NaN without guarding.
func TESShape(t, a, riseTime, fallTime, t0 float64) float64 {
	return a * (math.Exp(-(t-t0)/fallTime) - math.Exp(-(t-t0)/riseTime))
}

// FETShape is the shape of a normalized FET voltage pulse above
// baseline, with simple decay and recovery rates:
//
//	a * (invTd*exp(-(t-t0)*invTd) - invTr*exp(-(t-t0)*invTr))
//
// NOTE: the peak value is not a; it is a*(invTd-invTr), reached at t0.
func FETShape(t, a, invTd, invTr, t0 float64) float64 {
	return a * (invTd*math.Exp(-(t-t0)*invTd) - invTr*math.Exp(-(t-t0)*invTr))
}

// Model evaluates a pulse-shape model at time t with parameter vector p.
type Model func(t float64, p Params) float64

func tesModel(t float64, p Params) float64 {
	return TESShape(t, p[pAmp], p[pT1], p[pT2], p[pOffset])
}

func fetModel(t float64, p Params) float64 {
	return FETShape(t, p[pAmp], p[pT1], p[pT2], p[pOffset])
}

// Shape evaluates the sensor's pulse model at time t.
func (s Sensor) Shape(t float64, p Params) float64 {
	if s == FET {
		return fetModel(t, p)
	}
	return tesModel(t, p)
}

// Eval samples the sensor's pulse model element-wise over the bin
// axis, producing a trace of the same length. Used both to render a
// fitted curve for overlay and to build synthetic traces.
func (s Sensor) Eval(bins []float64, p Params) []float64 {
	out := make([]float64, len(bins))
	for i, t := range bins {
		out[i] = s.Shape(t, p)
	}
	return out
}
