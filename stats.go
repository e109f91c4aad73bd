package vec

// Grows returns the number of reallocations the vector has performed: one
// for every time Reserve, Resize, or a growing insert replaced the storage
// block with a larger one. Copy assignment via the reallocating path and
// Swap/TakeFrom exchange or transfer the counter along with the storage.
func (v *Vector[T]) Grows() int {
	return v.grows
}

// Utilization returns the ratio of live elements to capacity (0.0 to 1.0).
// Returns 0.0 if the vector has no capacity.
func (v *Vector[T]) Utilization() float64 {
	if v.data.Cap() == 0 {
		return 0
	}
	return float64(v.size) / float64(v.data.Cap())
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() VectorMetrics {
	return VectorMetrics{
		Len:         v.size,
		Cap:         v.data.Cap(),
		Grows:       v.grows,
		Utilization: v.Utilization(),
	}
}

// VectorMetrics contains statistical information about a vector.
type VectorMetrics struct {
	Len         int     // Live elements
	Cap         int     // Element slots in the storage block
	Grows       int     // Reallocations performed
	Utilization float64 // Ratio of live elements to capacity (0.0-1.0)
}
