package tracefit

import (
	"math"
	"testing"
)

func FuzzBoundsFromGuess(f *testing.F) {
	f.Add(4.42, 1.0, 17.0, 7.11)
	f.Add(0.0, 0.0, 0.0, 0.0)
	f.Add(5.0, -2.0, 20.0, 5.0)
	f.Add(1e-300, 1e300, 1.0, 1.0)

	f.Fuzz(func(t *testing.T, a, b, c, d float64) {
		guess := Params{a, b, c, d}
		for _, g := range guess {
			if math.IsNaN(g) || math.IsInf(g, 0) {
				t.Skip()
			}
		}

		bounds, err := BoundsFromGuess(guess)
		if err != nil {
			return
		}
		// A successful derivation always admits the guess itself.
		for i, g := range guess {
			if g < bounds.Lower[i] || g > bounds.Upper[i] {
				t.Errorf("guess[%d] = %g outside [%g, %g]", i, g, bounds.Lower[i], bounds.Upper[i])
			}
			if g != 0 && !(bounds.Lower[i] < g && g < bounds.Upper[i]) {
				t.Errorf("nonzero guess[%d] = %g not strictly inside [%g, %g]",
					i, g, bounds.Lower[i], bounds.Upper[i])
			}
		}
	})
}

func FuzzThresholdScans(f *testing.F) {
	f.Add(0.5, 1.0, 2.0, 1.5, 0.25)

	f.Fuzz(func(t *testing.T, a, b, c, d, threshold float64) {
		trace := []float64{a, b, c, d}

		// first* and last* agree on existence for the same predicate.
		fi, fok := firstAtOrAbove(trace, 0, len(trace), threshold)
		li, lok := lastAtOrAbove(trace, 0, len(trace), threshold)
		if fok != lok {
			t.Fatalf("firstAtOrAbove ok=%v, lastAtOrAbove ok=%v", fok, lok)
		}
		if fok && fi > li {
			t.Errorf("first index %d after last index %d", fi, li)
		}
	})
}
