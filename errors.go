package tracefit

import "errors"

// Sentinel errors for the tracefit package.
// Use errors.Is to check: errors.Is(err, tracefit.ErrFeatureNotFound)
var (
	ErrInvalidSensor    = errors.New("tracefit: invalid sensor kind")
	ErrBadTrace         = errors.New("tracefit: malformed trace input")
	ErrFeatureNotFound  = errors.New("tracefit: trace feature not found")
	ErrDegenerateBounds = errors.New("tracefit: degenerate fit bounds")
	ErrNoConvergence    = errors.New("tracefit: fit did not converge")
)
