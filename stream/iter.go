package stream

// ValueIter is a finite, single-pass producer over stream values. It is
// not restartable: once Next reports ok=false, or returns a non-nil
// error, every subsequent call also reports ok=false with a nil error —
// there is no way to rewind the underlying cursor.
type ValueIter[T any] struct {
	next func() (T, bool, error)
	done bool
}

// Next returns the next value, or ok=false when the iterator is
// exhausted. An error ends the iterator: it is returned exactly once,
// and every call after it reports ok=false, err=nil.
func (it *ValueIter[T]) Next() (v T, ok bool, err error) {
	if it.done {
		var zero T
		return zero, false, nil
	}
	v, ok, err = it.next()
	if err != nil || !ok {
		it.done = true
	}
	return v, ok, err
}
