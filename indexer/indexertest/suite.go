package indexertest

import (
	"fmt"
	"time"

	"github.com/Ahmed-Sermani/linkrank/indexer"
	"github.com/google/uuid"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

// SuiteBase defines a re-usable set of index-related tests that can be
// executed against any type that implements indexer.Indexer.
type SuiteBase struct {
	idx indexer.Indexer
}

// SetIndexer configures the test-suite to run all tests against idx.
func (s *SuiteBase) SetIndexer(idx indexer.Indexer) {
	s.idx = idx
}

func (s *SuiteBase) TestIndexDocument(c *gc.C) {
	doc := &indexer.Document{
		LinkID: uuid.New(),
		Title:  "Go (programming language)",
	}
	c.Assert(s.idx.Index(doc), gc.IsNil)

	got, err := s.idx.FindByID(doc.LinkID)
	c.Assert(err, gc.IsNil)
	c.Assert(got.Title, gc.Equals, doc.Title)
	c.Assert(got.IndexedAt.IsZero(), gc.Equals, false)
}

func (s *SuiteBase) TestIndexDoesNotOverwritePageRank(c *gc.C) {
	doc := &indexer.Document{LinkID: uuid.New(), Title: "Rust"}
	c.Assert(s.idx.Index(doc), gc.IsNil)
	c.Assert(s.idx.UpdateScore(doc.LinkID, 0.42), gc.IsNil)

	// Re-index with a stale score.
	doc.PageRank = 0
	doc.Title = "Rust (programming language)"
	c.Assert(s.idx.Index(doc), gc.IsNil)

	got, err := s.idx.FindByID(doc.LinkID)
	c.Assert(err, gc.IsNil)
	c.Assert(got.Title, gc.Equals, "Rust (programming language)")
	c.Assert(got.PageRank, gc.Equals, 0.42)
}

func (s *SuiteBase) TestIndexMissingLinkID(c *gc.C) {
	err := s.idx.Index(&indexer.Document{Title: "orphan"})
	c.Assert(xerrors.Is(err, indexer.ErrMissingLinkID), gc.Equals, true)
}

func (s *SuiteBase) TestFindByIDMissing(c *gc.C) {
	_, err := s.idx.FindByID(uuid.New())
	c.Assert(xerrors.Is(err, indexer.ErrNotFound), gc.Equals, true)
}

func (s *SuiteBase) TestUpdateScoreForUnknownDocument(c *gc.C) {
	id := uuid.New()
	c.Assert(s.idx.UpdateScore(id, 0.5), gc.IsNil)

	got, err := s.idx.FindByID(id)
	c.Assert(err, gc.IsNil)
	c.Assert(got.PageRank, gc.Equals, 0.5)
}

func (s *SuiteBase) TestSearchSortsByPageRank(c *gc.C) {
	var (
		numDocs = 25
		ids     = make([]uuid.UUID, numDocs)
	)
	for i := 0; i < numDocs; i++ {
		ids[i] = uuid.New()
		doc := &indexer.Document{
			LinkID:    ids[i],
			Title:     fmt.Sprintf("Scientist number %d", i),
			IndexedAt: time.Now(),
		}
		c.Assert(s.idx.Index(doc), gc.IsNil)
		c.Assert(s.idx.UpdateScore(ids[i], float64(i)/float64(numDocs)), gc.IsNil)
	}

	it, err := s.idx.Search(indexer.Query{Type: indexer.QueryTypeMatch, Expr: "scientist"})
	c.Assert(err, gc.IsNil)
	c.Assert(it.TotalCount(), gc.Equals, uint64(numDocs))

	var got []uuid.UUID
	for it.Next() {
		got = append(got, it.Document().LinkID)
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)

	c.Assert(got, gc.HasLen, numDocs)
	for i, id := range got {
		c.Assert(id, gc.Equals, ids[numDocs-1-i], gc.Commentf("position %d", i))
	}
}

func (s *SuiteBase) TestSearchWithOffset(c *gc.C) {
	for i := 0; i < 5; i++ {
		id := uuid.New()
		c.Assert(s.idx.Index(&indexer.Document{LinkID: id, Title: "Moon landing"}), gc.IsNil)
		c.Assert(s.idx.UpdateScore(id, float64(i)), gc.IsNil)
	}

	it, err := s.idx.Search(indexer.Query{Type: indexer.QueryTypePhrase, Expr: "moon landing", Offset: 3})
	c.Assert(err, gc.IsNil)

	var count int
	for it.Next() {
		count++
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(count, gc.Equals, 2)
}

func (s *SuiteBase) TestSearchNoMatches(c *gc.C) {
	c.Assert(s.idx.Index(&indexer.Document{LinkID: uuid.New(), Title: "Lisp"}), gc.IsNil)

	it, err := s.idx.Search(indexer.Query{Expr: "fortran"})
	c.Assert(err, gc.IsNil)
	c.Assert(it.Next(), gc.Equals, false)
	c.Assert(it.TotalCount(), gc.Equals, uint64(0))
}
