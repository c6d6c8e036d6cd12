package world

// LoaderMetrics tracks counters for the cache behaviour of a Loader. All
// methods are safe to call on a nil receiver, so wiring metrics up is
// optional. A Loader is single-threaded and so are its metrics.
type LoaderMetrics struct {
	// Loads is the number of columns decoded from the source.
	Loads uint64
	// Hits is the number of lookups answered from the cache.
	Hits uint64
	// Evictions is the number of columns dropped to keep the cache bounded.
	Evictions uint64
}

func (m *LoaderMetrics) addLoad() {
	if m == nil {
		return
	}
	m.Loads++
}

func (m *LoaderMetrics) addHit() {
	if m == nil {
		return
	}
	m.Hits++
}

func (m *LoaderMetrics) addEviction() {
	if m == nil {
		return
	}
	m.Evictions++
}
