package tracefit

// Threshold scans over trace sub-ranges. All ranges are half-open
// [lo, hi). Every scan returns ok=false when no sample in the range
// satisfies the predicate; callers turn that into ErrFeatureNotFound
// with stage context. On identical input the scans are deterministic.

// peakIndex returns the index of the maximum sample. For an empty
// trace it returns 0; ties resolve to the earliest index.
func peakIndex(trace []float64) int {
	best := 0
	for i, v := range trace {
		if v > trace[best] {
			best = i
		}
	}
	return best
}

// minIndex returns the index of the minimum sample, earliest on ties.
func minIndex(trace []float64) int {
	best := 0
	for i, v := range trace {
		if v < trace[best] {
			best = i
		}
	}
	return best
}

// maxValue returns the largest sample in trace, or 0 for an empty trace.
func maxValue(trace []float64) float64 {
	if len(trace) == 0 {
		return 0
	}
	v := trace[0]
	for _, x := range trace[1:] {
		if x > v {
			v = x
		}
	}
	return v
}

// lastAtOrBelow returns the last index in [lo, hi) whose sample is at
// or below threshold.
func lastAtOrBelow(trace []float64, lo, hi int, threshold float64) (int, bool) {
	for i := hi - 1; i >= lo; i-- {
		if trace[i] <= threshold {
			return i, true
		}
	}
	return 0, false
}

// firstAtOrBelow returns the first index in [lo, hi) whose sample is
// at or below threshold.
func firstAtOrBelow(trace []float64, lo, hi int, threshold float64) (int, bool) {
	for i := lo; i < hi; i++ {
		if trace[i] <= threshold {
			return i, true
		}
	}
	return 0, false
}

// firstAtOrAbove returns the first index in [lo, hi) whose sample is
// at or above threshold.
func firstAtOrAbove(trace []float64, lo, hi int, threshold float64) (int, bool) {
	for i := lo; i < hi; i++ {
		if trace[i] >= threshold {
			return i, true
		}
	}
	return 0, false
}

// lastAtOrAbove returns the last index in [lo, hi) whose sample is at
// or above threshold.
func lastAtOrAbove(trace []float64, lo, hi int, threshold float64) (int, bool) {
	for i := hi - 1; i >= lo; i-- {
		if trace[i] >= threshold {
			return i, true
		}
	}
	return 0, false
}
