package ranker

import gc "gopkg.in/check.v1"

var _ = gc.Suite(new(ScoresTestSuite))

type ScoresTestSuite struct{}

func (s *ScoresTestSuite) TestRankSortsDescendingWithTitleTieBreak(c *gc.C) {
	vector := []float64{0.1, 0.4, 0.1, 0.4}
	nodes := []string{"delta", "charlie", "alpha", "bravo"}

	got := Rank(vector, nodes)
	c.Assert(got, gc.DeepEquals, []Score{
		{Title: "bravo", Score: 0.4},
		{Title: "charlie", Score: 0.4},
		{Title: "alpha", Score: 0.1},
		{Title: "delta", Score: 0.1},
	})

	// Inputs are left untouched.
	c.Assert(vector, gc.DeepEquals, []float64{0.1, 0.4, 0.1, 0.4})
	c.Assert(nodes, gc.DeepEquals, []string{"delta", "charlie", "alpha", "bravo"})
}

func (s *ScoresTestSuite) TestTop(c *gc.C) {
	scores := Rank([]float64{0.2, 0.5, 0.3}, []string{"a", "b", "c"})
	c.Assert(Top(scores, 2), gc.DeepEquals, []Score{{Title: "b", Score: 0.5}, {Title: "c", Score: 0.3}})
	c.Assert(Top(scores, 0), gc.HasLen, 3)
	c.Assert(Top(scores, 10), gc.HasLen, 3)
}
