/*
   Lock-free accumulators shared by concurrent workers.
*/
package aggregator

// Aggregator is implemented by the accumulators in this package.
type Aggregator[T int | float64] interface {
	Get() T
	Set(val T)

	// Aggregate adds val to the current value.
	Aggregate(val T)

	// Delta returns the change in the aggregator's value since the last
	// call to Delta or Set.
	Delta() T
}

var (
	_ Aggregator[int]     = (*Int)(nil)
	_ Aggregator[float64] = (*Float64)(nil)
)
