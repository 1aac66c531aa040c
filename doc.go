// Package tracefit extracts pulse-shape parameters from single
// detector-channel traces by fitting idealized analytic pulse models
// to sampled data via bounded nonlinear least squares.
//
// tracefit reduces a raw (bins, trace) pair to a four-parameter shape
// vector usable to build detector response templates. Two sensor
// families are supported: TES (transition-edge sensor, fast-rise
// slow-fall current pulse) and FET (field-effect transistor readout,
// decay/recovery voltage pulse). Each sensor kind carries its own
// shape model, initial-guess heuristic, fitting window, and bounds
// policy, resolved once at fit setup.
//
// Basic usage:
//
//	f, err := tracefit.NewFitter(tracefit.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := f.Fit(bins, trace, tracefit.TES)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("rise %.3g us, fall %.3g us\n", res.RiseTime(), res.FallTime())
package tracefit
