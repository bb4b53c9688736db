package matrix

import (
	"math"
	"testing"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"golang.org/x/xerrors"
	"gonum.org/v1/gonum/mat"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(MatrixTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type MatrixTestSuite struct{}

func (s *MatrixTestSuite) TestDuplicateRecordsAccumulate(c *gc.C) {
	g, err := graph.Build([]graph.Record{
		{Source: "A", Target: "B", Weight: 2},
		{Source: "A", Target: "B", Weight: 3},
		{Source: "B", Target: "A", Weight: 1},
	}, graph.BuildConfig{})
	c.Assert(err, gc.IsNil)

	adj := Adjacency(g)
	// Row b, column a.
	c.Assert(adj.At(g.IndexOf["b"], g.IndexOf["a"]), gc.Equals, 5.0)
	c.Assert(adj.At(g.IndexOf["a"], g.IndexOf["b"]), gc.Equals, 1.0)
	c.Assert(adj.At(g.IndexOf["a"], g.IndexOf["a"]), gc.Equals, 0.0)
}

func (s *MatrixTestSuite) TestAdjacencyAccumulatesRepeatedEdges(c *gc.C) {
	g := &graph.Graph{
		Nodes: []string{"a", "b"},
		Edges: []graph.Edge{
			{Src: 0, Dst: 1, Weight: 2},
			{Src: 0, Dst: 1, Weight: 3},
			{Src: 1, Dst: 0, Weight: 1},
		},
	}
	c.Assert(Adjacency(g).At(1, 0), gc.Equals, 5.0)
}

func (s *MatrixTestSuite) TestTransitionIsColumnStochastic(c *gc.C) {
	adj := mat.NewDense(3, 3, []float64{
		0, 1, 4,
		2, 0, 1,
		3, 1, 0,
	})
	t, dangling := Transition(adj)
	c.Assert(dangling, gc.HasLen, 0)
	c.Assert(IsColumnStochastic(t, Tolerance), gc.Equals, true)
	c.Assert(t.At(2, 0), gc.Equals, 0.6)
	c.Assert(t.At(0, 2), gc.Equals, 0.8)

	// The input must not be touched.
	c.Assert(adj.At(2, 0), gc.Equals, 3.0)
}

func (s *MatrixTestSuite) TestDanglingColumnRedistribution(c *gc.C) {
	adj := mat.NewDense(4, 4, []float64{
		0, 1, 1, 0,
		1, 0, 1, 0,
		1, 1, 0, 0,
		1, 1, 1, 0,
	})
	t, dangling := Transition(adj)
	c.Assert(dangling, gc.DeepEquals, []int{3})
	for i := 0; i < 4; i++ {
		c.Assert(t.At(i, 3), gc.Equals, 0.25)
	}
	c.Assert(IsColumnStochastic(t, Tolerance), gc.Equals, true)

	d, err := Damp(t, 0.85)
	c.Assert(err, gc.IsNil)
	for i := 0; i < 4; i++ {
		// (1-d)/n + d/n
		c.Assert(math.Abs(d.At(i, 3)-0.25) < Tolerance, gc.Equals, true)
	}
}

func (s *MatrixTestSuite) TestDampedOperatorIsPositiveAndStochastic(c *gc.C) {
	adj := mat.NewDense(3, 3, []float64{
		0, 0, 1,
		1, 0, 0,
		0, 1, 0,
	})
	t, _ := Transition(adj)
	d, err := Damp(t, 0.6)
	c.Assert(err, gc.IsNil)
	c.Assert(IsColumnStochastic(d, Tolerance), gc.Equals, true)

	r, cols := d.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < cols; j++ {
			c.Assert(d.At(i, j) > 0, gc.Equals, true, gc.Commentf("D[%d][%d]", i, j))
		}
	}
	c.Assert(math.Abs(d.At(1, 0)-(0.6+0.4/3)) < Tolerance, gc.Equals, true)
}

func (s *MatrixTestSuite) TestDampRejectsInvalidFactor(c *gc.C) {
	t := mat.NewDense(1, 1, []float64{1})
	for _, d := range []float64{0, 1, -0.2, 1.5, math.NaN()} {
		_, err := Damp(t, d)
		c.Assert(xerrors.Is(err, ErrInvalidParameter), gc.Equals, true, gc.Commentf("d=%v", d))
	}
}

func (s *MatrixTestSuite) TestIsColumnStochastic(c *gc.C) {
	c.Assert(IsColumnStochastic(mat.NewDense(2, 2, []float64{0.5, 1, 0.5, 0}), Tolerance), gc.Equals, true)
	c.Assert(IsColumnStochastic(mat.NewDense(2, 2, []float64{0.5, 1, 0.6, 0}), Tolerance), gc.Equals, false)
	c.Assert(IsColumnStochastic(mat.NewDense(2, 2, []float64{1.5, 1, -0.5, 0}), Tolerance), gc.Equals, false)
}
