package tracefit

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

func mustFitter(t *testing.T, cfg Config) *Fitter {
	t.Helper()
	f, err := NewFitter(cfg)
	if err != nil {
		t.Fatalf("NewFitter: %v", err)
	}
	return f
}

func TestNewFitterDefaults(t *testing.T) {
	f := mustFitter(t, Config{})
	assertFloat(t, "CutFraction", f.cfg.CutFraction, 0.2)
	if f.cfg.FETLookahead != 2000 {
		t.Errorf("FETLookahead = %d, want 2000", f.cfg.FETLookahead)
	}
	if f.cfg.MaxIter != 200 {
		t.Errorf("MaxIter = %d, want 200", f.cfg.MaxIter)
	}
}

func TestNewFitterInvalid(t *testing.T) {
	if _, err := NewFitter(Config{CutFraction: 1.5}); err == nil {
		t.Error("NewFitter should reject cut fraction >= 1")
	}
	if _, err := NewFitter(Config{CutFraction: -0.1}); err == nil {
		t.Error("NewFitter should reject negative cut fraction")
	}
	if _, err := NewFitter(Config{MaxIter: -1}); err == nil {
		t.Error("NewFitter should reject negative iteration budget")
	}
	if _, err := NewFitter(Config{FETLookahead: -5}); err == nil {
		t.Error("NewFitter should reject negative lookahead")
	}
}

func TestFitTES(t *testing.T) {
	truth := Params{5, 2, 20, 5}
	bins, trace := synthTES(truth)

	f := mustFitter(t, Config{})
	res, err := f.Fit(bins, trace, TES)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// Noiseless input: the converged parameters recover the truth.
	for i := range truth {
		assertClose(t, "param", res.Params[i], truth[i], 0.01)
	}
	if res.Sensor != TES {
		t.Errorf("Sensor = %v, want TES", res.Sensor)
	}
	if res.Window.Len() <= 0 {
		t.Errorf("Window = [%d, %d), want non-empty", res.Window.Start, res.Window.End)
	}

	// Bounds derived from the guess must contain the converged values.
	for i := range res.Params {
		if res.Params[i] < res.Bounds.Lower[i] || res.Params[i] > res.Bounds.Upper[i] {
			t.Errorf("param %d = %g escapes bounds [%g, %g]",
				i, res.Params[i], res.Bounds.Lower[i], res.Bounds.Upper[i])
		}
	}
}

func TestFitFET(t *testing.T) {
	truth := Params{3, 0.05, 0.01, 1}
	bins, trace := synthFET(truth)

	f := mustFitter(t, Config{})
	res, err := f.Fit(bins, trace, FET)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	for i := range truth {
		assertClose(t, "param", res.Params[i], truth[i], 0.05)
	}
	// FET fits run unconstrained.
	for i := range res.Params {
		if res.Bounds.constrained(i) {
			t.Errorf("param %d constrained to [%g, %g], want unconstrained",
				i, res.Bounds.Lower[i], res.Bounds.Upper[i])
		}
	}
}

func TestFitResultCurve(t *testing.T) {
	bins, trace := synthTES(Params{5, 2, 20, 5})
	f := mustFitter(t, Config{})
	res, err := f.Fit(bins, trace, TES)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	curve := res.FittedCurve(bins)
	if len(curve) != len(bins) {
		t.Fatalf("FittedCurve returned %d samples, want %d", len(curve), len(bins))
	}
	// Inside the window the curve tracks the noiseless data closely.
	peak := maxValue(trace)
	for i := res.Window.Start; i < res.Window.End; i++ {
		if diff := curve[i] - trace[i]; diff > 0.02*peak || diff < -0.02*peak {
			t.Fatalf("curve[%d] = %g, data %g, diff beyond 2%% of peak", i, curve[i], trace[i])
		}
	}
}

func TestFitCovariance(t *testing.T) {
	bins, trace := synthTES(Params{5, 2, 20, 5})
	f := mustFitter(t, Config{})
	res, err := f.Fit(bins, trace, TES)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	cov := res.Covariance()
	if cov == nil {
		t.Fatal("Covariance = nil, want estimate")
	}
	if r, c := cov.Dims(); r != 4 || c != 4 {
		t.Errorf("Covariance dims = %dx%d, want 4x4", r, c)
	}
	for i := 0; i < 4; i++ {
		if cov.At(i, i) < 0 {
			t.Errorf("Covariance(%d,%d) = %g, want >= 0", i, i, cov.At(i, i))
		}
	}
}

func TestFitInvalidSensor(t *testing.T) {
	bins, trace := synthTES(Params{5, 2, 20, 5})
	f := mustFitter(t, Config{})
	if _, err := f.Fit(bins, trace, Sensor(0)); !errors.Is(err, ErrInvalidSensor) {
		t.Errorf("err = %v, want ErrInvalidSensor", err)
	}
}

func TestFitBadTrace(t *testing.T) {
	f := mustFitter(t, Config{})
	bins, trace := synthTES(Params{5, 2, 20, 5})

	if _, err := f.Fit(bins[:10], trace, TES); !errors.Is(err, ErrBadTrace) {
		t.Errorf("length mismatch: err = %v, want ErrBadTrace", err)
	}
	if _, err := f.Fit(nil, nil, TES); !errors.Is(err, ErrBadTrace) {
		t.Errorf("empty input: err = %v, want ErrBadTrace", err)
	}
}

func TestFitFlatTrace(t *testing.T) {
	bins := synthBins()
	trace := make([]float64, len(bins))
	f := mustFitter(t, Config{})
	_, err := f.Fit(bins, trace, TES)
	if !errors.Is(err, ErrFeatureNotFound) {
		t.Errorf("flat trace: err = %v, want ErrFeatureNotFound", err)
	}
}

func TestFitDeterministic(t *testing.T) {
	bins, trace := synthTES(Params{5, 2, 20, 5})
	f := mustFitter(t, Config{})

	a, err := f.Fit(bins, trace, TES)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	b, err := f.Fit(bins, trace, TES)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if a.Params != b.Params {
		t.Errorf("repeated fits disagree: %v vs %v", a.Params, b.Params)
	}
}

func TestFitLogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	bins, trace := synthTES(Params{5, 2, 20, 5})
	f := mustFitter(t, Config{Logger: log})
	if _, err := f.Fit(bins, trace, TES); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	for _, want := range []string{"fitting window", "initial guess", "fit bounds", "fit result"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Errorf("debug log missing %q", want)
		}
	}
}
