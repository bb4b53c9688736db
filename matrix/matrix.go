/*
   Builds the dense matrices used by the PageRank power iteration.

   All matrices follow the "row = target, column = source" convention, so
   column j holds the outgoing links of node j.
*/
package matrix

import (
	"math"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Tolerance is the accepted deviation of a stochastic column sum from 1.
const Tolerance = 1e-9

// DefaultDampingFactor is the probability of following a real link rather
// than jumping to a random node.
const DefaultDampingFactor = 0.85

// ErrInvalidParameter is returned when a parameter falls outside its
// accepted range.
var ErrInvalidParameter = xerrors.New("invalid parameter")

// Adjacency returns the n×n weight matrix of g where M[i][j] accumulates the
// weight of every edge j -> i.
func Adjacency(g *graph.Graph) *mat.Dense {
	n := g.Len()
	m := mat.NewDense(n, n, nil)
	for _, e := range g.Edges {
		m.Set(e.Dst, e.Src, m.At(e.Dst, e.Src)+float64(e.Weight))
	}
	return m
}

// Transition column-normalizes adj into a column-stochastic matrix. Columns
// summing to zero are replaced by a uniform 1/n column and their indices
// are returned. adj is not modified.
func Transition(adj mat.Matrix) (*mat.Dense, []int) {
	n, _ := adj.Dims()
	sums := ColumnSums(adj)
	t := mat.NewDense(n, n, nil)

	var dangling []int
	for j, sum := range sums {
		if sum == 0 {
			dangling = append(dangling, j)
			for i := 0; i < n; i++ {
				t.Set(i, j, 1/float64(n))
			}
			continue
		}
		for i := 0; i < n; i++ {
			t.Set(i, j, adj.At(i, j)/sum)
		}
	}
	return t, dangling
}

// Damp blends t with the uniform random-jump matrix:
//  D[i][j] = d*T[i][j] + (1-d)/n
func Damp(t mat.Matrix, d float64) (*mat.Dense, error) {
	if err := ValidateDampingFactor(d); err != nil {
		return nil, err
	}

	n, _ := t.Dims()
	jump := (1 - d) / float64(n)
	out := mat.NewDense(n, n, nil)
	out.Apply(func(_, _ int, v float64) float64 {
		return d*v + jump
	}, t)
	return out, nil
}

// ValidateDampingFactor checks that d lies in the open interval (0, 1).
func ValidateDampingFactor(d float64) error {
	if math.IsNaN(d) || d <= 0 || d >= 1 {
		return xerrors.Errorf("damping factor %v must be in the range (0, 1): %w", d, ErrInvalidParameter)
	}
	return nil
}

// ColumnSums returns the sum of every column of m.
func ColumnSums(m mat.Matrix) []float64 {
	r, c := m.Dims()
	sums := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, m)
		sums[j] = floats.Sum(col)
	}
	return sums
}

// IsColumnStochastic reports whether every entry of m is non-negative and
// every column sums to 1 within tol.
func IsColumnStochastic(m mat.Matrix, tol float64) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) < 0 {
				return false
			}
		}
	}
	for _, sum := range ColumnSums(m) {
		if !scalar.EqualWithinAbs(sum, 1, tol) {
			return false
		}
	}
	return true
}
