package attendance

// orderedMap is a map that remembers first-insertion order of its keys.
type orderedMap[K comparable, V any] struct {
	keys  []K
	index map[K]V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{index: make(map[K]V)}
}

func (m *orderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.index[k]
	return v, ok
}

// Set stores v under k. A key keeps its original position when overwritten.
func (m *orderedMap[K, V]) Set(k K, v V) {
	if _, ok := m.index[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.index[k] = v
}

// Update applies fn to the current value for k (zero value when absent).
func (m *orderedMap[K, V]) Update(k K, fn func(V) V) {
	v := m.index[k]
	m.Set(k, fn(v))
}

func (m *orderedMap[K, V]) Len() int { return len(m.keys) }

// Each visits entries in insertion order.
func (m *orderedMap[K, V]) Each(fn func(K, V)) {
	for _, k := range m.keys {
		fn(k, m.index[k])
	}
}
