//go:build ngjson_ordered

package ngjson

// Map is the object container backing Value's Object variant. This build
// variant iterates keys in insertion order, with a later Insert of an
// existing key keeping its original position; build without
// -tags ngjson_ordered for a sorted variant instead. Both variants
// satisfy the same Get/Insert/Remove/Each contract.
type Map struct {
	index   map[string]int
	keys    []string
	entries []*Value
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Get reports the value stored under key, if any.
func (m *Map) Get(key string) (*Value, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i], true
}

// Insert stores v under key, overwriting any existing entry in place, and
// reports whether key was already present. A new key is appended to the
// end of the insertion order.
func (m *Map) Insert(key string, v *Value) bool {
	if i, ok := m.index[key]; ok {
		m.entries[i] = v
		return true
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.entries = append(m.entries, v)
	return false
}

// Remove deletes key, reporting whether it was present. Removal is O(n)
// in the number of entries since later keys' indices must shift down.
func (m *Map) Remove(key string) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, key)
	for k, idx := range m.index {
		if idx > i {
			m.index[k] = idx - 1
		}
	}
	return true
}

// Len reports the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the map's keys in iteration order (insertion order, in
// this build).
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Each calls fn for every entry in iteration order, stopping early if fn
// returns false.
func (m *Map) Each(fn func(key string, v *Value) bool) {
	for i, k := range m.keys {
		if !fn(k, m.entries[i]) {
			return
		}
	}
}
