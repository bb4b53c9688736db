package aggregator

import (
	"math"
	"math/rand"
	"testing"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(AggregatorTestSuite))

func Test(t *testing.T) {
	gc.TestingT(t)
}

type AggregatorTestSuite struct{}

func (s *AggregatorTestSuite) TestIntAggregator(c *gc.C) {
	numValues := 100
	values := make([]int, numValues)
	var exp int
	for i := 0; i < numValues; i++ {
		next := rand.Intn(1 << 20)
		values[i] = next
		exp += next
	}

	got := testConcurrentAccess[int](new(Int), values)
	c.Assert(got, gc.Equals, exp)
}

func (s *AggregatorTestSuite) TestFloat64Aggregator(c *gc.C) {
	numValues := 100
	values := make([]float64, numValues)
	var exp float64
	for i := 0; i < numValues; i++ {
		next := rand.Float64()
		values[i] = next
		exp += next
	}

	got := testConcurrentAccess[float64](new(Float64), values)
	c.Assert(math.Abs(got-exp) < 1e-9, gc.Equals, true, gc.Commentf("got %v, exp %v", got, exp))
}

func (s *AggregatorTestSuite) TestDelta(c *gc.C) {
	a := new(Int)
	a.Set(10)
	a.Aggregate(5)
	a.Aggregate(2)
	c.Assert(a.Delta(), gc.Equals, 7)
	c.Assert(a.Delta(), gc.Equals, 0)
	c.Assert(a.Get(), gc.Equals, 17)

	f := new(Float64)
	f.Aggregate(0.5)
	c.Assert(f.Delta(), gc.Equals, 0.5)
	f.Set(0)
	c.Assert(f.Get(), gc.Equals, 0.0)
	c.Assert(f.Delta(), gc.Equals, 0.0)
}

func testConcurrentAccess[T int | float64](a Aggregator[T], values []T) T {
	startedCh := make(chan struct{})
	syncCh := make(chan struct{})
	doneCh := make(chan struct{})
	for i := 0; i < len(values); i++ {
		go func(i int) {
			startedCh <- struct{}{}
			<-syncCh
			a.Aggregate(values[i])
			doneCh <- struct{}{}
		}(i)
	}

	// Wait for all go-routines to start
	for i := 0; i < len(values); i++ {
		<-startedCh
	}

	close(syncCh)

	// Wait for all go-routines to exit
	for i := 0; i < len(values); i++ {
		<-doneCh
	}

	return a.Get()
}
