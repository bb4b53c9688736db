package cdb

import (
	"database/sql"
	"os"
	"testing"

	"github.com/Ahmed-Sermani/linkrank/graph/graphtest"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(CockroachDBStoreTestSuite))

type CockroachDBStoreTestSuite struct {
	graphtest.SuiteBase
	db *sql.DB
}

func Test(t *testing.T) {
	gc.TestingT(t)
}

func (s *CockroachDBStoreTestSuite) SetUpSuite(c *gc.C) {
	dsn := os.Getenv("CDB_DSN")
	if dsn == "" {
		c.Skip("missing cdb dsn; skipping cdb test package")
	}

	store, err := NewCockroachDBStore(dsn)
	c.Assert(err, gc.IsNil)
	s.SetStore(store)
	s.db = store.db
}

func (s *CockroachDBStoreTestSuite) TearDownSuite(c *gc.C) {
	if s.db != nil {
		s.flushDB(c)
		c.Assert(s.db.Close(), gc.IsNil)
	}
}

func (s *CockroachDBStoreTestSuite) SetUpTest(c *gc.C) {
	s.flushDB(c)
}

func (s *CockroachDBStoreTestSuite) flushDB(c *gc.C) {
	_, err := s.db.Exec("DELETE FROM link_records")
	c.Assert(err, gc.IsNil)
}
