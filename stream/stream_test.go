package stream_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngjson/ngjson/internal/decode"
	"github.com/ngjson/ngjson/internal/read"
	"github.com/ngjson/ngjson/internal/visit"
	"github.com/ngjson/ngjson/stream"
)

// anyVisitor decodes a value into plain Go interface{} shapes
// (map[string]any / []any / string / int64 / uint64 / float64 / bool /
// nil), just enough to exercise the stream cursor's container recursion
// without pulling in the root package's Value type.
type anyVisitor struct{}

func (anyVisitor) VisitNull() (any, error)                { return nil, nil }
func (anyVisitor) VisitBool(v bool) (any, error)           { return v, nil }
func (anyVisitor) VisitI64(v int64) (any, error)           { return v, nil }
func (anyVisitor) VisitU64(v uint64) (any, error)          { return v, nil }
func (anyVisitor) VisitF64(v float64) (any, error)         { return v, nil }
func (anyVisitor) VisitBorrowedStr(v string) (any, error)  { return v, nil }
func (anyVisitor) VisitStr(v string) (any, error)          { return v, nil }
func (anyVisitor) VisitBytes(v []byte) (any, error)        { return v, nil }

func (anyVisitor) VisitSeq(seq visit.SeqAccess[any]) (any, error) {
	out := []any{}
	for {
		v, ok, err := seq.NextElement()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

func (anyVisitor) VisitMap(m visit.MapAccess[any]) (any, error) {
	out := map[string]any{}
	for {
		key, ok, err := m.NextKey()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		v, err := m.NextValue()
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
}

func newRoot(t *testing.T, src string) *stream.Root {
	t.Helper()
	d := decode.New(read.NewStr(src), decode.Options{})
	return stream.NewRoot(d)
}

func TestRootNextValueScalar(t *testing.T) {
	root := newRoot(t, `42`)
	v, err := stream.NextValue[any](root, anyVisitor{})
	require.NoError(t, err)
	require.Equal(t, uint64(42), v)
	require.NoError(t, root.End())
}

func TestRootEnterArrayAndNextElement(t *testing.T) {
	root := newRoot(t, `[1, "two", true]`)
	arr, err := stream.EnterArray(root)
	require.NoError(t, err)

	v1, err := stream.NextElement[any](arr, anyVisitor{})
	require.NoError(t, err)
	require.Equal(t, uint64(1), v1)

	v2, err := stream.NextElement[any](arr, anyVisitor{})
	require.NoError(t, err)
	require.Equal(t, "two", v2)

	v3, err := stream.NextElement[any](arr, anyVisitor{})
	require.NoError(t, err)
	require.Equal(t, true, v3)

	done, err := stream.CanEndArray(arr)
	require.NoError(t, err)
	require.True(t, done)

	parent, err := stream.EndArray(arr)
	require.NoError(t, err)
	require.Same(t, root, parent)
	require.NoError(t, root.End())
}

func TestRootEnterMapAndNextEntry(t *testing.T) {
	root := newRoot(t, `{"a": 1, "b": 2}`)
	m, err := stream.EnterMap(root)
	require.NoError(t, err)

	k1, v1, err := stream.NextEntry[any](m, anyVisitor{})
	require.NoError(t, err)
	require.Equal(t, "a", k1)
	require.Equal(t, uint64(1), v1)

	k2, v2, err := stream.NextEntry[any](m, anyVisitor{})
	require.NoError(t, err)
	require.Equal(t, "b", k2)
	require.Equal(t, uint64(2), v2)

	parent, err := stream.EndMap(m)
	require.NoError(t, err)
	require.Same(t, root, parent)
	require.NoError(t, root.End())
}

func TestArrayNextElementErrorsAtClose(t *testing.T) {
	root := newRoot(t, `[]`)
	arr, err := stream.EnterArray(root)
	require.NoError(t, err)

	_, err = stream.NextElement[any](arr, anyVisitor{})
	require.Error(t, err)

	parent, err := stream.EndArray(arr)
	require.NoError(t, err)
	require.Same(t, root, parent)
}

func TestArrayIterStopsAtCloseWithoutConsumingIt(t *testing.T) {
	root := newRoot(t, `[1, 2, 3]`)
	arr, err := stream.EnterArray(root)
	require.NoError(t, err)

	it := stream.ArrayIter[any](arr, anyVisitor{})
	var got []any
	for {
		v, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []any{uint64(1), uint64(2), uint64(3)}, got)

	v2, ok2, err2 := it.Next()
	require.NoError(t, err2)
	require.False(t, ok2)
	require.Nil(t, v2)

	_, err = stream.EndArray(arr)
	require.NoError(t, err)
}

func TestMapIterYieldsEntries(t *testing.T) {
	root := newRoot(t, `{"x": 1, "y": 2}`)
	m, err := stream.EnterMap(root)
	require.NoError(t, err)

	it := stream.MapIter[any](m, anyVisitor{})
	seen := map[string]any{}
	for {
		e, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		seen[e.Key] = e.Value
	}
	require.Equal(t, map[string]any{"x": uint64(1), "y": uint64(2)}, seen)

	_, err = stream.EndMap(m)
	require.NoError(t, err)
}

func TestNestedEnterArrayInMap(t *testing.T) {
	root := newRoot(t, `{"items": [1]}`)
	m, err := stream.EnterMap(root)
	require.NoError(t, err)

	key, inner, err := stream.EnterArrayInMap(m)
	require.NoError(t, err)
	require.Equal(t, "items", key)

	v, err := stream.NextElement[any](inner, anyVisitor{})
	require.NoError(t, err)
	require.Equal(t, uint64(1), v)

	back, err := stream.EndArray(inner)
	require.NoError(t, err)
	require.Same(t, m, back)

	_, err = stream.EndMap(m)
	require.NoError(t, err)
}

func TestRootIterConcatenatedValues(t *testing.T) {
	root := newRoot(t, `1 2 3`)
	it := stream.Iter[any](root, anyVisitor{})
	var got []any
	for {
		v, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []any{uint64(1), uint64(2), uint64(3)}, got)
}

func TestArrayTrailingCommaRejected(t *testing.T) {
	root := newRoot(t, `[1, 2, ]`)
	arr, err := stream.EnterArray(root)
	require.NoError(t, err)

	_, err = stream.NextElement[any](arr, anyVisitor{})
	require.NoError(t, err)
	_, err = stream.NextElement[any](arr, anyVisitor{})
	require.NoError(t, err)
	_, err = stream.NextElement[any](arr, anyVisitor{})
	require.Error(t, err)
}
