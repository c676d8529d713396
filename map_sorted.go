//go:build !ngjson_ordered

package ngjson

import "sort"

// Map is the object container backing Value's Object variant. This build
// variant iterates keys in sorted order; build with -tags ngjson_ordered
// for an insertion-ordered variant instead. Both variants satisfy the
// same Get/Insert/Remove/Each contract, so code built against Map never
// needs to know which one it got.
type Map struct {
	entries map[string]*Value
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{entries: make(map[string]*Value)}
}

// Get reports the value stored under key, if any.
func (m *Map) Get(key string) (*Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Insert stores v under key, overwriting any existing entry, and reports
// whether key was already present.
func (m *Map) Insert(key string, v *Value) bool {
	_, existed := m.entries[key]
	m.entries[key] = v
	return existed
}

// Remove deletes key, reporting whether it was present.
func (m *Map) Remove(key string) bool {
	_, ok := m.entries[key]
	delete(m.entries, key)
	return ok
}

// Len reports the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Keys returns the map's keys in iteration order (sorted, in this build).
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Each calls fn for every entry in iteration order, stopping early if fn
// returns false.
func (m *Map) Each(fn func(key string, v *Value) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.entries[k]) {
			return
		}
	}
}
