package journal

// Map is a backtrackable map: Set records whatever undo is needed to
// restore the previous binding (or absence of one) when the enclosing
// fence is popped. Used by cc's signature table and by the datatype
// plugin's cstors/parents tables.
type Map[K comparable, V any] struct {
	j  *Journal
	m  map[K]V
}

// NewMap returns an empty backtrackable map recording undo actions on j.
func NewMap[K comparable, V any](j *Journal) *Map[K, V] {
	return &Map[K, V]{j: j, m: make(map[K]V)}
}

// Get returns the value bound to k, and whether one exists.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.m[k]
	return v, ok
}

// Set binds k to v, recording an undo action that restores the prior
// binding (or deletes k, if it had none) on the journal.
func (m *Map[K, V]) Set(k K, v V) {
	old, had := m.m[k]
	m.m[k] = v
	if had {
		m.j.Record(func() { m.m[k] = old })
	} else {
		m.j.Record(func() { delete(m.m, k) })
	}
}

// Delete removes k's binding, recording an undo action that restores it.
func (m *Map[K, V]) Delete(k K) {
	old, had := m.m[k]
	if !had {
		return
	}
	delete(m.m, k)
	m.j.Record(func() { m.m[k] = old })
}

// Len returns the number of bindings currently live.
func (m *Map[K, V]) Len() int { return len(m.m) }

// Keys returns every currently-bound key, in no particular order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	return keys
}
