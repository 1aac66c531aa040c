package tracefit

import "fmt"

// Window is a half-open sample-index range [Start, End) into a trace
// and its bin axis. The nonlinear solve is restricted to this range.
type Window struct {
	Start, End int
}

// Len returns the number of samples in the window.
func (w Window) Len() int { return w.End - w.Start }

// windowTES restricts a TES fit to the region where the pulse stands
// above cut*peak. This excludes both the baseline noise before the
// rise and the long flat tail after the fall, either of which would
// bias the least-squares fit away from the pulse. Assumes the trace
// has been baseline-subtracted and flipped.
func windowTES(trace []float64, cfg *Config) (Window, error) {
	ipeak := peakIndex(trace)
	peak := trace[ipeak]
	cut := cfg.CutFraction * peak

	start, ok := lastAtOrBelow(trace, 0, ipeak, cut) // end of rising edge
	if !ok {
		return Window{}, fmt.Errorf("%w: TES window: no sample at or below %g*peak before the rise", ErrFeatureNotFound, cfg.CutFraction)
	}
	end, ok := firstAtOrBelow(trace, ipeak, len(trace), cut) // start of falling tail
	if !ok {
		return Window{}, fmt.Errorf("%w: TES window: trace never falls back to %g*peak", ErrFeatureNotFound, cfg.CutFraction)
	}
	return Window{Start: start, End: end}, nil
}

// windowFET starts immediately after the peak, where the FET model's
// recovery region begins, and extends a fixed lookahead. The lookahead
// is a coarse heuristic kept configurable; deriving it from the
// guessed decay and recovery rates would be better.
func windowFET(trace []float64, cfg *Config) (Window, error) {
	start := peakIndex(trace) + 1
	end := start + cfg.FETLookahead
	if end > len(trace) {
		end = len(trace)
	}
	if start >= end {
		return Window{}, fmt.Errorf("%w: FET window: peak sits at the last sample", ErrFeatureNotFound)
	}
	return Window{Start: start, End: end}, nil
}
