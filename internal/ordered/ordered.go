// Package ordered provides the insertion-ordered map underlying host binding
// tables and the framework container types. Implementations use only the Go
// standard library.
package ordered

// Map is a map that iterates in insertion order. The zero value is ready to
// use. Map is not safe for concurrent mutation.
type Map[K comparable, V any] struct {
	keys  []K
	items map[K]V
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Get returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.items[key]
	return ok
}

// Set stores value under key. A new key is appended to the iteration order;
// an existing key keeps its original position.
func (m *Map[K, V]) Set(key K, value V) {
	if m.items == nil {
		m.items = make(map[K]V)
	}
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = value
}

// Delete removes key and preserves the order of the remaining entries.
// It reports whether the key was present.
func (m *Map[K, V]) Delete(key K) bool {
	if _, ok := m.items[key]; !ok {
		return false
	}
	delete(m.items, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the values in insertion order. The slice is a copy.
func (m *Map[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.items[k])
	}
	return out
}

// Range calls fn for each entry in insertion order until fn returns false.
// fn must not mutate the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.items[k]) {
			return
		}
	}
}
