package ngjson_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngjson/ngjson"
)

func TestMapGetInsertRemove(t *testing.T) {
	m := ngjson.NewMap()
	require.Equal(t, 0, m.Len())

	existed := m.Insert("a", ngjson.NewString("1"))
	require.False(t, existed)
	existed = m.Insert("a", ngjson.NewString("2"))
	require.True(t, existed)

	v, ok := m.Get("a")
	require.True(t, ok)
	s, _ := v.AsString()
	require.Equal(t, "2", s)

	_, ok = m.Get("missing")
	require.False(t, ok)

	require.True(t, m.Remove("a"))
	require.False(t, m.Remove("a"))
	require.Equal(t, 0, m.Len())
}

func TestMapEachVisitsEveryEntry(t *testing.T) {
	m := ngjson.NewMap()
	m.Insert("a", ngjson.NewNumber(ngjson.NumberFromI64(1)))
	m.Insert("b", ngjson.NewNumber(ngjson.NumberFromI64(2)))
	m.Insert("c", ngjson.NewNumber(ngjson.NumberFromI64(3)))

	seen := map[string]bool{}
	m.Each(func(k string, v *ngjson.Value) bool {
		seen[k] = true
		return true
	})
	require.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, seen)
}

func TestMapEachStopsEarly(t *testing.T) {
	m := ngjson.NewMap()
	m.Insert("a", ngjson.NewNull())
	m.Insert("b", ngjson.NewNull())
	m.Insert("c", ngjson.NewNull())

	count := 0
	m.Each(func(k string, v *ngjson.Value) bool {
		count++
		return false
	})
	require.Equal(t, 1, count)
}
