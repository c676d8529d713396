package ngjson

import "fmt"

// ValueOp is one step in a Value.Pipe chain: a transform from one Value
// to the next, or an error if the step cannot apply (e.g. Get on a
// non-object).
type ValueOp func(v *Value) (*Value, error)

// Get returns a ValueOp that looks up key on an object Value, erroring
// (rather than returning Null) when the receiver is not an object or the
// key is absent — unlike the fluent Value.Key accessor, Pipe steps are
// meant to surface a missing path as an error.
func Get(key string) ValueOp {
	return func(v *Value) (*Value, error) {
		obj, err := v.AsObject()
		if err != nil {
			return nil, err
		}
		got, ok := obj.Get(key)
		if !ok {
			return nil, &ErrMissingKey{Key: key}
		}
		return got, nil
	}
}

// Index returns a ValueOp that looks up element i on an array Value,
// erroring when the receiver is not an array or i is out of range.
func Index(i int) ValueOp {
	return func(v *Value) (*Value, error) {
		arr, err := v.AsArray()
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(arr) {
			return nil, &ErrIndexOutOfRange{Index: i, Len: len(arr)}
		}
		return arr[i], nil
	}
}

// Default returns a ValueOp that substitutes fallback for a Null Value
// and passes any other Value through unchanged. It does not turn a
// missing-path error from Get/Index into a fallback: Pipe stops at the
// first error, so a failed Get/Index never reaches Default — use it only
// after a step that can legitimately produce Null.
func Default(fallback *Value) ValueOp {
	return func(v *Value) (*Value, error) {
		if v.Kind() == Null {
			return fallback, nil
		}
		return v, nil
	}
}

// Pipe applies ops to v in sequence, short-circuiting on the first error.
func (v *Value) Pipe(ops ...ValueOp) (*Value, error) {
	cur := v
	for _, op := range ops {
		next, err := op(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// ErrMissingKey is returned by a Get ValueOp when the key is absent.
type ErrMissingKey struct{ Key string }

func (e *ErrMissingKey) Error() string { return fmt.Sprintf("ngjson: missing key %q", e.Key) }

// ErrIndexOutOfRange is returned by an Index ValueOp when i is out of
// bounds.
type ErrIndexOutOfRange struct {
	Index int
	Len   int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("ngjson: index %d out of range (len %d)", e.Index, e.Len)
}
