package tracefit

import (
	"fmt"
	"math"
)

// Bounds holds per-parameter interval constraints for the fit.
// An unconstrained parameter carries (-Inf, +Inf).
type Bounds struct {
	Lower, Upper Params
}

// Unconstrained returns bounds admitting any value for every parameter.
func Unconstrained() Bounds {
	var b Bounds
	for i := range b.Lower {
		b.Lower[i] = math.Inf(-1)
		b.Upper[i] = math.Inf(1)
	}
	return b
}

// BoundsFromGuess widens an initial guess into per-parameter fit
// constraints: (0.1*g, 5*g) for each parameter g. The widening is
// asymmetric because the guess heuristics are order-of-magnitude
// estimates, not precise values. A parameter guessed as exactly zero
// is left unconstrained; bounds can't both be zero.
//
// Returns ErrDegenerateBounds when a derived pair is inverted, which
// happens for negative guesses.
func BoundsFromGuess(guess Params) (Bounds, error) {
	var b Bounds
	for i, g := range guess {
		if g == 0 {
			b.Lower[i] = math.Inf(-1)
			b.Upper[i] = math.Inf(1)
			continue
		}
		b.Lower[i] = 0.1 * g
		b.Upper[i] = 5 * g
		if b.Lower[i] > b.Upper[i] {
			return Bounds{}, fmt.Errorf("%w: parameter %d: guess %.4g widens to (%.4g, %.4g)",
				ErrDegenerateBounds, i, g, b.Lower[i], b.Upper[i])
		}
	}
	return b, nil
}

// constrained reports whether parameter i has a finite interval.
func (b Bounds) constrained(i int) bool {
	return !math.IsInf(b.Lower[i], -1) && !math.IsInf(b.Upper[i], 1)
}

// String renders the bounds compactly for diagnostics.
func (b Bounds) String() string {
	s := ""
	for i := range b.Lower {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("[%.4g,%.4g]", b.Lower[i], b.Upper[i])
	}
	return s
}
