package aggregator

import (
	"math"
	"sync/atomic"
)

// Float64 is a concurrent-safe accumulator for float64 values. The values
// are stored as their IEEE-754 bit patterns so they can be updated with
// compare-and-swap.
type Float64 struct {
	curSum, prevSum atomic.Uint64
}

func (a *Float64) Get() float64 {
	return math.Float64frombits(a.curSum.Load())
}

func (a *Float64) Set(v float64) {
	bits := math.Float64bits(v)
	a.curSum.Store(bits)
	a.prevSum.Store(bits)
}

func (a *Float64) Aggregate(v float64) {
	for {
		oldBits := a.curSum.Load()
		newBits := math.Float64bits(math.Float64frombits(oldBits) + v)
		if a.curSum.CompareAndSwap(oldBits, newBits) {
			return
		}
	}
}

func (a *Float64) Delta() float64 {
	for {
		cur, prev := a.curSum.Load(), a.prevSum.Load()
		if a.prevSum.CompareAndSwap(prev, cur) {
			return math.Float64frombits(cur) - math.Float64frombits(prev)
		}
	}
}
