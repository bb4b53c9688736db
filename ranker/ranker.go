/*
   Implements Google's original PageRank algorithm
   https://en.wikipedia.org/wiki/PageRank over a weighted article link graph.

   To calculate the score for each article the PageRank algorithm utilizes
   the model of the random surfer. A surfer lands on a random article and
   from that point on randomly selects one of the following two options:

       Follow one of the outgoing links of the current article, picking
       each link with a probability proportional to the number of times it
       appears in the article. Surfers choose this option with a predefined
       probability that we will be referring to with the term damping factor.

       Alternatively, jump to a random article of the graph.

   PageRank score values reflect the probability that a surfer lands on a
   particular article. Each score is in the [0, 1] range and all scores sum
   up to 1.

   The computation runs as a strict pipeline:

       records -> graph.Build -> matrix.Adjacency -> matrix.Transition
               -> matrix.Damp -> Solve -> Rank
*/
package ranker

import (
	"context"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/Ahmed-Sermani/linkrank/matrix"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Result is the ranked output of a full PageRank run.
type Result struct {
	// Scores is sorted by descending score and covers every node.
	Scores []Score

	Converged  bool
	Iterations int

	// Dangling lists the nodes whose column was redistributed uniformly
	// because they had no outgoing weight.
	Dangling []string
}

// Ranker computes PageRank scores for link records. A Ranker holds no state
// between runs and is safe for concurrent use.
type Ranker struct {
	cfg Config
}

// NewRanker returns a new Ranker instance using the provided config
// options.
func NewRanker(cfg Config) (*Ranker, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("PageRank ranker config validation failed: %w", err)
	}
	return &Ranker{cfg: cfg}, nil
}

// Config returns the validated configuration of the ranker.
func (r *Ranker) Config() Config { return r.cfg }

// Rank builds the article graph from records and ranks its nodes.
func (r *Ranker) Rank(ctx context.Context, records []graph.Record) (*Result, error) {
	g, err := graph.Build(records, r.cfg.Graph)
	if err != nil {
		return nil, err
	}
	return r.RankGraph(ctx, g)
}

// RankIterator drains it and ranks the resulting graph.
func (r *Ranker) RankIterator(ctx context.Context, it graph.RecordIterator) (*Result, error) {
	g, err := graph.BuildFromIterator(it, r.cfg.Graph)
	if err != nil {
		return nil, err
	}
	return r.RankGraph(ctx, g)
}

// RankGraph ranks the nodes of an already built graph. If ctx expires while
// iterating, the best-effort result is returned along with the error.
func (r *Ranker) RankGraph(ctx context.Context, g *graph.Graph) (*Result, error) {
	if g.Len() == 0 {
		return nil, xerrors.Errorf("rank graph: %w", graph.ErrEmptyGraph)
	}
	logger := r.cfg.Logger.WithField("nodes", g.Len())

	t, danglingCols := matrix.Transition(matrix.Adjacency(g))
	dangling := make([]string, len(danglingCols))
	for i, col := range danglingCols {
		dangling[i] = g.Nodes[col]
	}
	if len(dangling) != 0 {
		logger.WithField("dangling", dangling).Warn("redistributed dangling columns uniformly")
	}

	d, err := matrix.Damp(t, r.cfg.DampingFactor)
	if err != nil {
		return nil, err
	}

	sol, err := Solve(ctx, d, r.cfg)
	if sol == nil {
		return nil, err
	}

	res := &Result{
		Scores:     Rank(sol.Vector, g.Nodes),
		Converged:  sol.Converged,
		Iterations: sol.Iterations,
		Dangling:   dangling,
	}

	logger = logger.WithFields(logrus.Fields{
		"iterations": sol.Iterations,
		"converged":  sol.Converged,
	})
	switch {
	case err != nil:
		logger.WithError(err).Warn("PageRank computation interrupted")
	case sol.Converged:
		logger.Info("PageRank scores converged")
	default:
		logger.Warn("PageRank iteration cap reached before convergence")
	}
	return res, err
}
