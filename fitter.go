package tracefit

import (
	"fmt"
	"io"
	"log/slog"
)

// Config tunes the fitting engine.
// Zero values produce sensible defaults; see field comments.
type Config struct {
	CutFraction  float64      // TES window height cut relative to peak; zero → 0.2
	FETLookahead int          // FET window length in samples past the peak; zero → 2000
	MaxIter      int          // solver iteration budget; zero → 200
	Tau          float64      // LM damping seed; zero → 1e-6
	GradTol      float64      // gradient convergence tolerance; zero → 1e-8
	StepTol      float64      // step-size convergence tolerance; zero → 1e-8
	ObjectiveTol float64      // objective convergence tolerance; zero → 1e-16
	Logger       *slog.Logger // diagnostic output; nil → discard
}

// Fitter fits pulse-shape models to single detector-channel traces.
type Fitter struct {
	cfg Config
	log *slog.Logger
}

// NewFitter creates a Fitter from the given config.
// Zero-value fields are filled with defaults; invalid values return an error.
func NewFitter(cfg Config) (*Fitter, error) {
	if cfg.CutFraction == 0 {
		cfg.CutFraction = 0.2
	}
	if cfg.CutFraction < 0 || cfg.CutFraction >= 1 {
		return nil, fmt.Errorf("tracefit: cut fraction %g out of range (0, 1)", cfg.CutFraction)
	}
	if cfg.FETLookahead == 0 {
		cfg.FETLookahead = 2000
	}
	if cfg.FETLookahead < 0 {
		return nil, fmt.Errorf("tracefit: FET lookahead %d must be positive", cfg.FETLookahead)
	}
	if cfg.MaxIter == 0 {
		cfg.MaxIter = 200
	}
	if cfg.MaxIter < 0 {
		return nil, fmt.Errorf("tracefit: iteration budget %d must be positive", cfg.MaxIter)
	}
	if cfg.Tau == 0 {
		cfg.Tau = 1e-6
	}
	if cfg.GradTol == 0 {
		cfg.GradTol = 1e-8
	}
	if cfg.StepTol == 0 {
		cfg.StepTol = 1e-8
	}
	if cfg.ObjectiveTol == 0 {
		cfg.ObjectiveTol = 1e-16
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Fitter{cfg: cfg, log: log}, nil
}

// Fit extracts the sensor's shape parameters from one trace.
//
// The fitting window is selected on the full trace, the initial guess
// is computed from the full trace (the heuristics need global features
// such as the peak, which may lie outside the window), bounds are
// derived from the guess when the sensor's policy applies them, and
// the least-squares solve runs over the windowed sub-range only.
//
// Every failure mode surfaces as a typed error identifying the stage:
// ErrFeatureNotFound from window selection or the guess,
// ErrDegenerateBounds from bounds derivation, ErrNoConvergence from
// the solver.
func (f *Fitter) Fit(bins, trace []float64, sensor Sensor) (*Result, error) {
	if !sensor.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSensor, int(sensor))
	}
	if len(bins) == 0 || len(bins) != len(trace) {
		return nil, fmt.Errorf("%w: %d bins, %d samples", ErrBadTrace, len(bins), len(trace))
	}

	prof := sensor.profile()

	win, err := prof.window(trace, &f.cfg)
	if err != nil {
		return nil, fmt.Errorf("window selection: %w", err)
	}
	f.log.Debug("fitting window", "sensor", sensor, "start", win.Start, "end", win.End)

	guess, err := prof.guess(bins, trace)
	if err != nil {
		return nil, fmt.Errorf("initial guess: %w", err)
	}
	f.log.Debug("initial guess",
		"scale", guess[pAmp], "t1", guess[pT1], "t2", guess[pT2], "offset", guess[pOffset])

	bounds := Unconstrained()
	if prof.applyBounds {
		if bounds, err = BoundsFromGuess(guess); err != nil {
			return nil, err
		}
	}
	f.log.Debug("fit bounds", "bounds", bounds.String())

	res, err := solve(prof.model, bins[win.Start:win.End], trace[win.Start:win.End], guess, bounds, &f.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w (guess %v, bounds %s): %v", ErrNoConvergence, guess, bounds, err)
	}
	f.log.Debug("fit result",
		"scale", res.Params[pAmp], "t1", res.Params[pT1], "t2", res.Params[pT2], "offset", res.Params[pOffset],
		"residual", res.ResidualNorm)

	res.Sensor = sensor
	res.Window = win
	res.Guess = guess
	res.Bounds = bounds
	return res, nil
}
