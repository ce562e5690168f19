// Package solve drives a convex quadratic program to a primal solution
// using an ADMM / operator-splitting iteration in the style of OSQP:
// variables are split via z = A x, the x-update solves a fixed regularized
// normal-equations system (factored once and reused every iteration), and
// z is projected onto its box [l, u] each pass.
package solve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/jsavage/depict/internal/config"
	"github.com/jsavage/depict/internal/constraint"
)

// Result holds the optimized primal variables, rounded to 0.5px increments
// for crisper SVG output, plus solver diagnostics.
type Result struct {
	X          []float64
	Iterations int
	Converged  bool
}

// ErrNonConvergent indicates the solver hit its iteration cap without
// reaching the requested tolerance. Callers should treat this as a bug in
// constraint construction, not a user-facing error.
type ErrNonConvergent struct {
	Iterations int
	PrimalResidual float64
}

func (e *ErrNonConvergent) Error() string {
	return fmt.Sprintf("solver did not converge after %d iterations (primal residual %.6g)", e.Iterations, e.PrimalResidual)
}

// ErrInfeasible reports that the regularized x-update system could not be
// factored or solved. The ADMM loop does not test the constraint set for
// primal infeasibility; an infeasible problem ends in ErrNonConvergent.
type ErrInfeasible struct {
	Detail string
}

func (e *ErrInfeasible) Error() string { return "primal infeasible: " + e.Detail }

const rho = 1.0
const regularization = 1e-6

// Solve runs the ADMM iteration against problem, using cfg's tolerance and
// iteration cap. warm-start is intentionally not supported: spec calls for
// a fresh problem on every render.
func Solve(problem *constraint.Problem, cfg config.Config) (Result, error) {
	n := problem.N
	m := len(problem.Constraints)
	if n == 0 {
		return Result{}, nil
	}

	a := mat.NewDense(m, n, nil)
	l := make([]float64, m)
	u := make([]float64, m)
	for i, c := range problem.Constraints {
		for j, coeff := range c.Coeffs {
			a.Set(i, j, coeff)
		}
		l[i] = c.Lower
		u[i] = c.Upper
	}

	// system = P + rho*A^T*A + regularization*I, factored once and reused
	// across every ADMM iteration since rho is fixed.
	system := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			system.SetSym(i, j, problem.P.At(i, j))
		}
	}
	if m > 0 {
		var ata mat.Dense
		ata.Mul(a.T(), a)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				system.SetSym(i, j, system.At(i, j)+rho*ata.At(i, j))
			}
		}
	}
	for i := 0; i < n; i++ {
		system.SetSym(i, i, system.At(i, i)+regularization)
	}

	var chol mat.Cholesky
	ok := chol.Factorize(system)
	if !ok {
		return Result{}, &ErrInfeasible{Detail: "quadratic term is not positive definite after regularization"}
	}

	x := mat.NewVecDense(n, nil)
	z := mat.NewVecDense(m, nil)
	w := mat.NewVecDense(m, nil)

	maxIter := cfg.SolverMaxIterations
	if maxIter <= 0 {
		maxIter = 4000
	}
	tol := cfg.SolverTolerance
	if tol <= 0 {
		tol = 1e-4
	}

	converged := false
	iter := 0
	primalRes := math.Inf(1)
	for ; iter < maxIter; iter++ {
		// x-update: solve system * x = rho * A^T * (z - w)
		rhs := mat.NewVecDense(n, nil)
		if m > 0 {
			zw := mat.NewVecDense(m, nil)
			zw.SubVec(z, w)
			rhs.MulVec(a.T(), zw)
			rhs.ScaleVec(rho, rhs)
		}
		if err := chol.SolveVecTo(x, rhs); err != nil {
			return Result{}, &ErrInfeasible{Detail: err.Error()}
		}

		if m == 0 {
			converged = true
			iter++
			break
		}

		ax := mat.NewVecDense(m, nil)
		ax.MulVec(a, x)

		zNext := mat.NewVecDense(m, nil)
		for i := 0; i < m; i++ {
			v := ax.AtVec(i) + w.AtVec(i)
			zNext.SetVec(i, clip(v, l[i], u[i]))
		}

		wNext := mat.NewVecDense(m, nil)
		for i := 0; i < m; i++ {
			wNext.SetVec(i, w.AtVec(i)+ax.AtVec(i)-zNext.AtVec(i))
		}

		primalRes = 0
		for i := 0; i < m; i++ {
			d := ax.AtVec(i) - zNext.AtVec(i)
			primalRes += d * d
		}
		primalRes = math.Sqrt(primalRes)

		z, w = zNext, wNext

		if primalRes < tol {
			converged = true
			iter++
			break
		}
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = roundHalf(x.AtVec(i))
	}

	if !converged {
		return Result{X: out, Iterations: iter}, &ErrNonConvergent{Iterations: iter, PrimalResidual: primalRes}
	}

	return Result{X: out, Iterations: iter, Converged: true}, nil
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundHalf rounds to the nearest 0.5 for crisper SVG output.
func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
