package tracefit

import "gonum.org/v1/gonum/mat"

// Result carries the outcome of a single trace fit.
type Result struct {
	Sensor Sensor // sensor kind the fit was run for
	Params Params // converged parameter vector
	Window Window // sample range the solve was restricted to
	Guess  Params // heuristic seed handed to the solver
	Bounds Bounds // constraints applied to the solve

	// ResidualNorm is the square root of the summed squared residuals
	// between model and data over the fitting window.
	ResidualNorm float64

	cov *mat.SymDense
}

// Amplitude returns the fitted scale factor. For FET this is not the
// peak height; the peak is Amplitude()*(invTd-invTr).
func (r *Result) Amplitude() float64 { return r.Params[pAmp] }

// Offset returns the fitted time offset t0 in microseconds.
func (r *Result) Offset() float64 { return r.Params[pOffset] }

// RiseTime returns the TES rise time constant in microseconds.
// Meaningful only for a TES fit.
func (r *Result) RiseTime() float64 { return r.Params[pT1] }

// FallTime returns the TES fall time constant in microseconds.
// Meaningful only for a TES fit.
func (r *Result) FallTime() float64 { return r.Params[pT2] }

// DecayRate returns the FET inverse decay time in 1/microseconds.
// Meaningful only for an FET fit.
func (r *Result) DecayRate() float64 { return r.Params[pT1] }

// RecoveryRate returns the FET inverse recovery time in
// 1/microseconds; zero means no recovery component was fit.
// Meaningful only for an FET fit.
func (r *Result) RecoveryRate() float64 { return r.Params[pT2] }

// Covariance returns the parameter covariance estimate from the
// solver, or nil when it could not be formed. The reporting path does
// not consume it; it is kept retrievable for downstream diagnostics.
func (r *Result) Covariance() *mat.SymDense { return r.cov }

// FittedCurve samples the converged model over the given bin axis,
// for overlaying against the raw trace.
func (r *Result) FittedCurve(bins []float64) []float64 {
	return r.Sensor.Eval(bins, r.Params)
}
