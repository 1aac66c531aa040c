package tracefit

import (
	"math"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/mat"
)

// solve runs a Levenberg-Marquardt least-squares fit of the model
// against the windowed data, seeded by the guess. The LM solver itself
// is unconstrained; interval bounds are honored by fitting in a
// transformed parameter space (see boundTransform), so the seed maps
// exactly and converged parameters respect their bounds.
func solve(model Model, bins, data []float64, guess Params, bounds Bounds, cfg *Config) (*Result, error) {
	tr := boundTransform{bounds}

	residual := func(dst, x []float64) {
		p := tr.fromSolver(x)
		for i, t := range bins {
			dst[i] = model(t, p) - data[i]
		}
	}
	jac := lm.NumJac{Func: residual}

	seed := tr.toSolver(guess)
	prob := lm.LMProblem{
		Dim:        len(seed),
		Size:       len(bins),
		Func:       residual,
		Jac:        jac.Jac,
		InitParams: seed[:],
		Tau:        cfg.Tau,
		Eps1:       cfg.GradTol,
		Eps2:       cfg.StepTol,
	}

	out, err := lm.LM(prob, &lm.Settings{Iterations: cfg.MaxIter, ObjectiveTol: cfg.ObjectiveTol})
	if err != nil {
		return nil, err
	}

	var x [4]float64
	copy(x[:], out.X)
	params := tr.fromSolver(x[:])

	rss := 0.0
	for i, t := range bins {
		r := model(t, params) - data[i]
		rss += r * r
	}

	return &Result{
		Params:       params,
		ResidualNorm: math.Sqrt(rss),
		cov:          covariance(model, bins, params, rss),
	}, nil
}

// boundTransform maps between the solver's unconstrained space and the
// bounded physical parameter space. Constrained parameters use a
// logistic map p = lo + (hi-lo)/(1+exp(-u)); unconstrained parameters
// pass through unchanged. The inverse is defined for any seed strictly
// inside its interval, which BoundsFromGuess guarantees.
type boundTransform struct {
	b Bounds
}

func (tr boundTransform) fromSolver(x []float64) Params {
	var p Params
	for i := range p {
		if !tr.b.constrained(i) {
			p[i] = x[i]
			continue
		}
		lo, hi := tr.b.Lower[i], tr.b.Upper[i]
		p[i] = lo + (hi-lo)/(1+math.Exp(-x[i]))
	}
	return p
}

func (tr boundTransform) toSolver(p Params) [4]float64 {
	var x [4]float64
	for i := range x {
		if !tr.b.constrained(i) {
			x[i] = p[i]
			continue
		}
		lo, hi := tr.b.Lower[i], tr.b.Upper[i]
		x[i] = math.Log((p[i] - lo) / (hi - p[i]))
	}
	return x
}

// covariance estimates the parameter covariance as (JᵀJ)⁻¹·s², with J
// a central-difference Jacobian of the model at the solution and s²
// the residual variance over the window. Returns nil when the system
// is underdetermined or JᵀJ is singular.
func covariance(model Model, bins []float64, p Params, rss float64) *mat.SymDense {
	n, m := len(bins), len(p)
	if n <= m {
		return nil
	}

	const h = 1e-6
	jac := mat.NewDense(n, m, nil)
	for j := 0; j < m; j++ {
		step := h * math.Max(1, math.Abs(p[j]))
		pp, pm := p, p
		pp[j] += step
		pm[j] -= step
		for i, t := range bins {
			jac.Set(i, j, (model(t, pp)-model(t, pm))/(2*step))
		}
	}

	jtj := mat.NewSymDense(m, nil)
	for a := 0; a < m; a++ {
		for b := a; b < m; b++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += jac.At(i, a) * jac.At(i, b)
			}
			jtj.SetSym(a, b, sum)
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(jtj) {
		return nil
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil
	}

	s2 := rss / float64(n-m)
	var cov mat.SymDense
	cov.ScaleSym(s2, &inv)
	return &cov
}
