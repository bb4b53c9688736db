// Package graphtest contains a conformance suite shared by every graph.Store
// implementation.
package graphtest

import (
	"fmt"
	"sort"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

// SuiteBase defines a re-usable set of graph.Store tests. Embedding suites
// must call SetStore before each test.
type SuiteBase struct {
	s graph.Store
}

func (s *SuiteBase) SetStore(store graph.Store) {
	s.s = store
}

func (s *SuiteBase) TestUpsertSumsDuplicateRecords(c *gc.C) {
	for _, w := range []int{2, 3} {
		err := s.s.UpsertRecord(&graph.Record{Source: "Go", Target: "Rust", Weight: w})
		c.Assert(err, gc.IsNil)
	}
	c.Assert(s.s.UpsertRecord(&graph.Record{Source: "Rust", Target: "Go", Weight: 1}), gc.IsNil)

	got := s.collect(c)
	c.Assert(got, gc.DeepEquals, []graph.Record{
		{Source: "Go", Target: "Rust", Weight: 5},
		{Source: "Rust", Target: "Go", Weight: 1},
	})
}

func (s *SuiteBase) TestStoreKeepsIdentitiesVerbatim(c *gc.C) {
	c.Assert(s.s.UpsertRecord(&graph.Record{Source: "Go", Target: "Rust", Weight: 1}), gc.IsNil)
	c.Assert(s.s.UpsertRecord(&graph.Record{Source: "go", Target: "Rust", Weight: 1}), gc.IsNil)

	got := s.collect(c)
	c.Assert(got, gc.HasLen, 2)
}

func (s *SuiteBase) TestUpsertRejectsInvalidRecords(c *gc.C) {
	err := s.s.UpsertRecord(&graph.Record{Source: "", Target: "Rust", Weight: 1})
	c.Assert(xerrors.Is(err, graph.ErrInvalidRecord), gc.Equals, true)

	err = s.s.UpsertRecord(&graph.Record{Source: "Go", Target: "Rust", Weight: -4})
	c.Assert(xerrors.Is(err, graph.ErrInvalidRecord), gc.Equals, true)

	c.Assert(s.collect(c), gc.HasLen, 0)
}

func (s *SuiteBase) TestManyRecords(c *gc.C) {
	const numArticles = 20
	for i := 0; i < numArticles; i++ {
		for j := 0; j < numArticles; j++ {
			r := &graph.Record{
				Source: fmt.Sprintf("article-%02d", i),
				Target: fmt.Sprintf("article-%02d", j),
				Weight: i + j,
			}
			c.Assert(s.s.UpsertRecord(r), gc.IsNil)
		}
	}

	got := s.collect(c)
	c.Assert(got, gc.HasLen, numArticles*numArticles)
	c.Assert(got[numArticles+1], gc.DeepEquals, graph.Record{Source: "article-01", Target: "article-01", Weight: 2})
}

// collect drains the store and returns its records sorted by (source, target).
func (s *SuiteBase) collect(c *gc.C) []graph.Record {
	it, err := s.s.Records()
	c.Assert(err, gc.IsNil)

	var records []graph.Record
	for it.Next() {
		records = append(records, *it.Record())
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)

	sort.Slice(records, func(i, j int) bool {
		if records[i].Source != records[j].Source {
			return records[i].Source < records[j].Source
		}
		return records[i].Target < records[j].Target
	})
	return records
}
