package graph

import (
	"io"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// BuildConfig controls how raw records are turned into a Graph.
type BuildConfig struct {
	// Normalize is applied to both sides of every record. Records whose
	// normalized identities collide are merged. Defaults to LowerCase.
	Normalize func(string) string

	// SinglePass applies the closure filter exactly once instead of
	// iterating it to a fixed point. Nodes left without outgoing links
	// become dangling columns.
	SinglePass bool

	// MaxClosurePasses bounds the fixed-point loop. If not specified, the
	// number of merged edges plus one is used, which is always enough since
	// every non-final pass drops at least one edge.
	MaxClosurePasses int

	Logger *logrus.Entry
}

func (c *BuildConfig) setDefaults() {
	if c.Normalize == nil {
		c.Normalize = LowerCase
	}
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Logger = logrus.NewEntry(l)
	}
}

type linkKey struct {
	src, dst string
}

// BuildFromIterator drains it and builds a Graph from the records it yields.
// The iterator is always closed.
func BuildFromIterator(it RecordIterator, cfg BuildConfig) (*Graph, error) {
	var records []Record
	for it.Next() {
		records = append(records, *it.Record())
	}
	if err := it.Error(); err != nil {
		_ = it.Close()
		return nil, xerrors.Errorf("build graph: %w", err)
	}
	if err := it.Close(); err != nil {
		return nil, xerrors.Errorf("build graph: %w", err)
	}
	return Build(records, cfg)
}

// Build merges duplicate links, applies the mutual closure filter and
// assigns dense indices to the surviving nodes in lexicographic order.
func Build(records []Record, cfg BuildConfig) (*Graph, error) {
	cfg.setDefaults()

	weights, err := mergeRecords(records, cfg.Normalize)
	if err != nil {
		return nil, err
	}

	maxPasses := cfg.MaxClosurePasses
	if maxPasses <= 0 {
		maxPasses = len(weights) + 1
	}
	if cfg.SinglePass {
		maxPasses = 1
	}

	links := make([]linkKey, 0, len(weights))
	for k := range weights {
		links = append(links, k)
	}

	stable := false
	for pass := 1; pass <= maxPasses; pass++ {
		filtered := closurePass(links)
		cfg.Logger.WithFields(logrus.Fields{
			"pass":    pass,
			"records": len(filtered),
		}).Debug("applied closure filter")

		if len(filtered) == len(links) {
			stable = true
			break
		}
		links = filtered
	}
	if !stable && !cfg.SinglePass {
		return nil, xerrors.Errorf("build graph after %d passes: %w", maxPasses, ErrClosureNotStable)
	}

	nodeSet := mapset.NewThreadUnsafeSet[string]()
	for _, l := range links {
		nodeSet.Add(l.src)
	}
	if nodeSet.Cardinality() == 0 {
		return nil, xerrors.Errorf("build graph: %w", ErrEmptyGraph)
	}

	nodes := nodeSet.ToSlice()
	sort.Strings(nodes)
	indexOf := make(map[string]int, len(nodes))
	for i, n := range nodes {
		indexOf[n] = i
	}

	edges := make([]Edge, 0, len(links))
	for _, l := range links {
		// Only reachable in single-pass mode where targets may have lost
		// every outgoing link.
		dst, ok := indexOf[l.dst]
		if !ok {
			continue
		}
		edges = append(edges, Edge{Src: indexOf[l.src], Dst: dst, Weight: weights[l]})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Src != edges[j].Src {
			return edges[i].Src < edges[j].Src
		}
		return edges[i].Dst < edges[j].Dst
	})

	return &Graph{Nodes: nodes, IndexOf: indexOf, Edges: edges}, nil
}

// mergeRecords normalizes every record and sums the weights of duplicate
// (source, target) pairs.
func mergeRecords(records []Record, normalize func(string) string) (map[linkKey]int, error) {
	weights := make(map[linkKey]int, len(records))
	for i, r := range records {
		src, dst := normalize(r.Source), normalize(r.Target)
		switch {
		case src == "" || dst == "":
			return nil, xerrors.Errorf("record %d: empty identity: %w", i, ErrInvalidRecord)
		case r.Weight < 0:
			return nil, xerrors.Errorf("record %d (%q -> %q): negative weight %d: %w", i, src, dst, r.Weight, ErrInvalidRecord)
		}
		weights[linkKey{src: src, dst: dst}] += r.Weight
	}
	return weights, nil
}

// closurePass keeps links whose target is itself a source and then, with
// the targets recomputed, links whose source is linked to by someone.
func closurePass(links []linkKey) []linkKey {
	sources := mapset.NewThreadUnsafeSet[string]()
	for _, l := range links {
		sources.Add(l.src)
	}

	byTarget := make([]linkKey, 0, len(links))
	targets := mapset.NewThreadUnsafeSet[string]()
	for _, l := range links {
		if sources.Contains(l.dst) {
			byTarget = append(byTarget, l)
			targets.Add(l.dst)
		}
	}

	out := byTarget[:0]
	for _, l := range byTarget {
		if targets.Contains(l.src) {
			out = append(out, l)
		}
	}
	return out
}
