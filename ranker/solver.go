package ranker

import (
	"context"
	"math"
	"sync"

	"github.com/Ahmed-Sermani/linkrank/aggregator"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Solution is the outcome of a power iteration run.
type Solution struct {
	// Vector is the last computed rank vector, indexed like the operator.
	Vector []float64

	// Converged is false when MaxIterations elapsed before the SAD between
	// two successive vectors dropped below the tolerance.
	Converged bool

	Iterations int

	// Deltas holds the SAD observed after every iteration.
	Deltas []float64
}

// Solve runs the power iteration v_{t+1} = D·v_t starting from the uniform
// distribution until convergence or until cfg.MaxIterations iterations have
// been executed. D must be square and column-stochastic.
//
// The context is only inspected between iterations. If it expires, Solve
// returns the best vector computed so far together with the context error.
func Solve(ctx context.Context, d mat.Matrix, cfg Config) (*Solution, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("solver config validation failed: %w", err)
	}
	n, cols := d.Dims()
	if n != cols || n == 0 {
		return nil, xerrors.Errorf("operator must be a non-empty square matrix, got %dx%d: %w", n, cols, ErrInvalidParameter)
	}

	cur := make([]float64, n)
	for i := range cur {
		cur[i] = 1 / float64(n)
	}
	next := make([]float64, n)
	mul := newMulVec(d, cfg.ComputeWorkers)

	sol := &Solution{Deltas: make([]float64, 0, cfg.MaxIterations)}
	for sol.Iterations < cfg.MaxIterations {
		if err := ctx.Err(); err != nil {
			sol.Vector = cur
			return sol, xerrors.Errorf("power iteration interrupted after %d iterations: %w", sol.Iterations, err)
		}

		sad := mul(next, cur)
		cur, next = next, cur
		sol.Iterations++
		sol.Deltas = append(sol.Deltas, sad)

		cfg.Logger.WithFields(logrus.Fields{
			"iteration": sol.Iterations,
			"sad":       sad,
		}).Debug("power iteration step")

		if sad < cfg.Tolerance {
			sol.Converged = true
			break
		}
	}

	sol.Vector = cur
	return sol, nil
}

// mulVecFunc writes D·src into dst and returns the SAD between dst and src.
type mulVecFunc func(dst, src []float64) float64

func newMulVec(d mat.Matrix, workers int) mulVecFunc {
	n, _ := d.Dims()
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return func(dst, src []float64) float64 {
			mat.NewVecDense(n, dst).MulVec(d, mat.NewVecDense(n, src))
			return floats.Distance(dst, src, 1)
		}
	}

	rows := rowView(d)
	chunk := (n + workers - 1) / workers
	var sad aggregator.Float64
	return func(dst, src []float64) float64 {
		sad.Set(0)
		srcVec := mat.NewVecDense(n, src)

		// Every worker owns a disjoint row range of dst so no locking is
		// needed for the output.
		var wg sync.WaitGroup
		for lo := 0; lo < n; lo += chunk {
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				var partial float64
				for i := lo; i < hi; i++ {
					dst[i] = mat.Dot(rows(i), srcVec)
					partial += math.Abs(dst[i] - src[i])
				}
				sad.Aggregate(partial)
			}(lo, hi)
		}
		wg.Wait()
		return sad.Get()
	}
}

// rowView returns an accessor for the rows of d as vectors.
func rowView(d mat.Matrix) func(i int) mat.Vector {
	if rv, ok := d.(mat.RowViewer); ok {
		return rv.RowView
	}
	_, cols := d.Dims()
	return func(i int) mat.Vector {
		row := make([]float64, cols)
		mat.Row(row, i, d)
		return mat.NewVecDense(cols, row)
	}
}
