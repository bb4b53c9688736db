package redis

import (
	"context"
	"os"
	"testing"

	"github.com/Ahmed-Sermani/linkrank/graph/graphtest"
	"github.com/redis/go-redis/v9"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(RedisStoreTestSuite))

type RedisStoreTestSuite struct {
	graphtest.SuiteBase
	store *RedisStore
}

func Test(t *testing.T) {
	gc.TestingT(t)
}

func (s *RedisStoreTestSuite) SetUpSuite(c *gc.C) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		c.Skip("missing redis address; skipping redis test package")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	store, err := NewRedisStore(context.Background(), client, "linkrank-test")
	c.Assert(err, gc.IsNil)
	s.SetStore(store)
	s.store = store
}

func (s *RedisStoreTestSuite) TearDownSuite(c *gc.C) {
	if s.store != nil {
		c.Assert(s.store.Flush(), gc.IsNil)
		c.Assert(s.store.Close(), gc.IsNil)
	}
}

func (s *RedisStoreTestSuite) SetUpTest(c *gc.C) {
	c.Assert(s.store.Flush(), gc.IsNil)
}

func (s *RedisStoreTestSuite) TestParseWeight(c *gc.C) {
	r, err := parseWeight("go", "rust", "7")
	c.Assert(err, gc.IsNil)
	c.Assert(r.Weight, gc.Equals, 7)

	_, err = parseWeight("go", "rust", "seven")
	c.Assert(err, gc.ErrorMatches, `parse weight of "go" -> "rust": .*invalid syntax`)
}
