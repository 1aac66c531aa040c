package tracefit

import (
	"fmt"
	"math"
)

// The guess heuristics locate e-folding features in the full trace and
// convert their time separations into order-of-magnitude parameter
// estimates. They exist solely to seed the nonlinear solver inside its
// basin of convergence, not to be exact.

// guessTES estimates TES shape parameters from a baseline-subtracted,
// flipped trace. Rise time comes from two e-folding points on the
// rising side, fall time from two on the falling side; the offset
// follows from the analytic position of the model's peak.
func guessTES(bins, trace []float64) (Params, error) {
	ipeak := peakIndex(trace)
	peak := trace[ipeak]

	// Rise time: two e-foldings on the rising side.
	rlo, ok := lastAtOrBelow(trace, 0, ipeak, 0.1*peak) // end of rising edge
	if !ok {
		return Params{}, fmt.Errorf("%w: rising edge never at or below 10%% of peak", ErrFeatureNotFound)
	}
	rhi, ok := lastAtOrBelow(trace, 0, ipeak, 0.2*peak*math.E)
	if !ok {
		return Params{}, fmt.Errorf("%w: rising edge never at or below 0.2e of peak", ErrFeatureNotFound)
	}
	rise := bins[rhi] - bins[rlo]

	// Fall time: two e-foldings on the falling side.
	flo, ok := firstAtOrBelow(trace, ipeak, len(trace), 0.8*peak) // start of falling tail
	if !ok {
		return Params{}, fmt.Errorf("%w: falling tail never at or below 80%% of peak", ErrFeatureNotFound)
	}
	fhi, ok := firstAtOrBelow(trace, ipeak, len(trace), 0.4*peak/math.E)
	if !ok {
		return Params{}, fmt.Errorf("%w: falling tail never at or below 0.4/e of peak", ErrFeatureNotFound)
	}
	fall := (bins[fhi] - bins[flo]) / 2

	// Analytic peak position is where d/dt of the pulse shape is zero:
	// tPeak = rise * ln((fall+rise)/rise).
	tPeak := rise * math.Log((fall+rise)/rise)
	offset := bins[ipeak] - tPeak

	// Scale so the guessed curve's peak matches the observed peak.
	pmax := TESShape(tPeak, 1, rise, fall, 0)

	return Params{peak / pmax, rise, fall, offset}, nil
}

// guessFET estimates FET shape parameters: inverse decay rate from the
// second e-folding after the peak, inverse recovery rate from the
// undershoot's recovering side when one exists.
func guessFET(bins, trace []float64) (Params, error) {
	ipeak := peakIndex(trace)
	peak := trace[ipeak]

	// Peak should sit at one bin width past the trigger (t=0); the
	// offset estimate is that index difference.
	itrig, ok := firstAtOrAbove(bins, 0, len(bins), 0)
	if !ok {
		return Params{}, fmt.Errorf("%w: bin axis never reaches the trigger (t=0)", ErrFeatureNotFound)
	}
	offset := float64(ipeak - (itrig + 1))

	// Decay rate: second e-folding after the peak. The separation is
	// taken in index space and mapped through the bin axis from its
	// first entry.
	dhi, ok := lastAtOrAbove(trace, ipeak, len(trace), peak/(2*math.E))
	if !ok {
		return Params{}, fmt.Errorf("%w: tail never at or above peak/2e", ErrFeatureNotFound)
	}
	decay := 2 / (bins[dhi-ipeak] - bins[0])

	// Recovery rate: second e-folding beyond the minimum, when the
	// trace undershoots zero after the peak.
	recovery := 0.0
	imin := minIndex(trace)
	if tmin := trace[imin]; tmin < 0 {
		tlast := maxValue(trace[imin:]) // local max beyond the minimum
		rlo, ok := firstAtOrAbove(trace, imin, len(trace), 0.8*tmin)
		if !ok {
			return Params{}, fmt.Errorf("%w: undershoot never recovers to 80%% of its minimum", ErrFeatureNotFound)
		}
		rhi, ok := firstAtOrAbove(trace, imin, len(trace), math.Min(0.4*tmin/math.E, tlast))
		if !ok {
			return Params{}, fmt.Errorf("%w: undershoot never recovers to 0.4/e of its minimum", ErrFeatureNotFound)
		}
		recovery = clampRecovery(2/(bins[rhi-imin]-bins[rlo-imin]), decay)
	}

	// FET function is [A/(D-R)]*(D*exp(-t*D) - R*exp(-t*R)), so the
	// observed peak fixes the scale.
	return Params{peak / (decay - recovery), decay, recovery, offset}, nil
}

// clampRecovery discards a recovery rate below 10% of the decay rate;
// an undershoot that shallow is noise, not signal.
func clampRecovery(recovery, decay float64) float64 {
	if recovery < 0.1*decay {
		return 0
	}
	return recovery
}
