package runner

// orderedMap is a string map that remembers first-insertion order of its
// keys. Overwriting a key keeps its original position, so merged runners
// render deterministically.
type orderedMap struct {
	keys   []string
	values map[string]string
}

func newOrderedMap() *orderedMap {
	return &orderedMap{values: map[string]string{}}
}

func (m *orderedMap) set(key string, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// each visits entries in first-insertion order.
func (m *orderedMap) each(fn func(key string, value string)) {
	for _, key := range m.keys {
		fn(key, m.values[key])
	}
}
