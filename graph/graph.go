/*
   Builds the closed, densely indexed article graph that the PageRank
   engine operates on.
*/
package graph

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/xerrors"
)

var (
	// ErrEmptyGraph is returned when no article survives the closure filter.
	ErrEmptyGraph = xerrors.New("no nodes survived the closure filter")

	// ErrClosureNotStable is returned when the closure filter keeps
	// shrinking the node set after the maximum number of passes.
	ErrClosureNotStable = xerrors.New("closure filter did not reach a fixed point")

	// ErrInvalidRecord is returned for records with an empty identity or a
	// negative weight.
	ErrInvalidRecord = xerrors.New("invalid link record")

	// ErrNotFound is returned by stores when a lookup misses.
	ErrNotFound = xerrors.New("not found")
)

// articleNamespace scopes the name-based UUIDs handed out by ArticleID.
var articleNamespace = uuid.MustParse("6f2d9c4e-1b7a-4f0e-9d3c-8a5b2e7f1c60")

type Iterator interface {
	Next() bool
	Error() error
	Close() error
}

// Record is a raw (source, target, weight) row as produced by the crawler.
// Weight is the number of times target is linked from source.
type Record struct {
	Source string
	Target string
	Weight int
}

type RecordIterator interface {
	Iterator
	Record() *Record
}

// Edge is a merged link between two compacted node indices.
type Edge struct {
	Src    int
	Dst    int
	Weight int
}

// Graph is the closed node set produced by Build. Nodes are sorted
// lexicographically and IndexOf maps every node back to its position.
type Graph struct {
	Nodes   []string
	IndexOf map[string]int
	Edges   []Edge
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.Nodes) }

// OutWeights returns the total outgoing weight of every node.
func (g *Graph) OutWeights() []int {
	out := make([]int, len(g.Nodes))
	for _, e := range g.Edges {
		out[e.Src] += e.Weight
	}
	return out
}

// Dangling returns the indices of nodes without any outgoing weight.
func (g *Graph) Dangling() []int {
	var dangling []int
	for i, w := range g.OutWeights() {
		if w == 0 {
			dangling = append(dangling, i)
		}
	}
	return dangling
}

// ArticleID returns a stable identifier for an article title.
func ArticleID(title string) uuid.UUID {
	return uuid.NewSHA1(articleNamespace, []byte(title))
}

// KeepCase is a Normalize function that leaves identities untouched apart
// from surrounding whitespace.
func KeepCase(s string) string { return strings.TrimSpace(s) }

// LowerCase is the default Normalize function.
func LowerCase(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
