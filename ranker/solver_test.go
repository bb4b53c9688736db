package ranker

import (
	"context"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/Ahmed-Sermani/linkrank/matrix"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(SolverTestSuite))

type SolverTestSuite struct {
	d *mat.Dense
}

func (s *SolverTestSuite) SetUpTest(c *gc.C) {
	g, err := graph.Build(unevenRecords(), graph.BuildConfig{})
	c.Assert(err, gc.IsNil)

	t, _ := matrix.Transition(matrix.Adjacency(g))
	s.d, err = matrix.Damp(t, matrix.DefaultDampingFactor)
	c.Assert(err, gc.IsNil)
}

func (s *SolverTestSuite) TestVectorStaysAProbabilityDistribution(c *gc.C) {
	for k := 1; k <= 15; k++ {
		cfg := DefaultConfig()
		cfg.MaxIterations = k
		cfg.Tolerance = 1e-15

		sol, err := Solve(context.TODO(), s.d, cfg)
		c.Assert(err, gc.IsNil)
		c.Assert(sol.Iterations, gc.Equals, k)
		assertApprox(c, floats.Sum(sol.Vector), 1, 1e-9)
		c.Assert(floats.Min(sol.Vector) > 0, gc.Equals, true)
	}
}

func (s *SolverTestSuite) TestDeltasAreNonIncreasing(c *gc.C) {
	cfg := DefaultConfig()
	cfg.Tolerance = 1e-12
	sol, err := Solve(context.TODO(), s.d, cfg)
	c.Assert(err, gc.IsNil)
	c.Assert(sol.Converged, gc.Equals, true)
	c.Assert(sol.Deltas, gc.HasLen, sol.Iterations)

	for i := 1; i < len(sol.Deltas); i++ {
		c.Assert(sol.Deltas[i] <= sol.Deltas[i-1]+1e-15, gc.Equals, true,
			gc.Commentf("delta %d: %v > %v", i, sol.Deltas[i], sol.Deltas[i-1]))
	}
}

func (s *SolverTestSuite) TestConvergedVectorIsStationary(c *gc.C) {
	cfg := DefaultConfig()
	cfg.Tolerance = 1e-12
	sol, err := Solve(context.TODO(), s.d, cfg)
	c.Assert(err, gc.IsNil)

	var next mat.VecDense
	next.MulVec(s.d, mat.NewVecDense(len(sol.Vector), sol.Vector))
	c.Assert(floats.Distance(next.RawVector().Data, sol.Vector, 1) < 1e-11, gc.Equals, true)
}

func (s *SolverTestSuite) TestSingleIterationIsExhausted(c *gc.C) {
	cfg := DefaultConfig()
	cfg.MaxIterations = 1
	sol, err := Solve(context.TODO(), s.d, cfg)
	c.Assert(err, gc.IsNil)
	c.Assert(sol.Converged, gc.Equals, false)
	c.Assert(sol.Iterations, gc.Equals, 1)
	assertApprox(c, floats.Sum(sol.Vector), 1, 1e-9)
}

func (s *SolverTestSuite) TestWorkersBeyondRowCount(c *gc.C) {
	cfg := DefaultConfig()
	cfg.ComputeWorkers = 64
	sol, err := Solve(context.TODO(), s.d, cfg)
	c.Assert(err, gc.IsNil)
	c.Assert(sol.Converged, gc.Equals, true)
	assertApprox(c, floats.Sum(sol.Vector), 1, 1e-9)
}

func (s *SolverTestSuite) TestRejectsNonSquareOperator(c *gc.C) {
	_, err := Solve(context.TODO(), mat.NewDense(2, 3, nil), DefaultConfig())
	c.Assert(xerrors.Is(err, ErrInvalidParameter), gc.Equals, true)
}
