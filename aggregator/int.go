package aggregator

import "sync/atomic"

// Int is a concurrent-safe accumulator for int values.
type Int struct {
	curSum, prevSum atomic.Int64
}

func (a *Int) Get() int {
	return int(a.curSum.Load())
}

func (a *Int) Set(v int) {
	a.curSum.Store(int64(v))
	a.prevSum.Store(int64(v))
}

func (a *Int) Aggregate(v int) {
	a.curSum.Add(int64(v))
}

func (a *Int) Delta() int {
	for {
		cur, prev := a.curSum.Load(), a.prevSum.Load()
		if a.prevSum.CompareAndSwap(prev, cur) {
			return int(cur - prev)
		}
	}
}
