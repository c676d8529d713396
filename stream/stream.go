// Package stream implements the JSON stream cursor: a typestate API over
// internal/decode that lets a caller walk a JSON document value-by-value
// without materializing an in-memory tree, entering and leaving arrays
// and objects explicitly instead of handing control to a Visitor for the
// whole subtree.
//
// Go has no generic methods, so — as in internal/decode — the generic
// entry points are free functions taking the concrete cursor type as
// their first argument. Root, Array, and Map each get their own function
// name (NextValue / NextElement / NextEntry) rather than sharing one,
// since Go does not allow overloading a package-level function by type
// parameter alone.
//
// This package drives internal/decode's array/object separator rule
// directly against Deserializer's exported peek/discard surface instead
// of going through a SeqAccess/MapAccess push, since the caller here
// drives iteration explicitly rather than handing a whole subtree to one
// Visitor call.
package stream

import (
	"github.com/ngjson/ngjson/internal/decode"
	"github.com/ngjson/ngjson/internal/jsonerr"
	"github.com/ngjson/ngjson/internal/visit"
)

// Root is the entry typestate: a source positioned at the top level of a
// document, or at a concatenated sequence of top-level values separated
// only by whitespace.
type Root struct {
	d *decode.Deserializer
}

// NewRoot constructs a Root cursor over d.
func NewRoot(d *decode.Deserializer) *Root {
	return &Root{d: d}
}

// beforeRootValue skips the whitespace separator between concatenated
// top-level values. There is no first/rest distinction at the root: every
// value, including the first, is simply preceded by optional whitespace.
func beforeRootValue(d *decode.Deserializer) error {
	return d.SkipWhitespace()
}

// NextValue parses the next top-level value via v.
func NextValue[T any](c *Root, v visit.Visitor[T]) (T, error) {
	var zero T
	if err := beforeRootValue(c.d); err != nil {
		return zero, err
	}
	return decode.DeserializeAny(c.d, v)
}

// EnterArray expects the next top-level value to be an array and returns
// a cursor positioned just inside it, with Root as the parent to return
// to on EndArray.
func EnterArray(c *Root) (*Array[*Root], error) {
	if err := beforeRootValue(c.d); err != nil {
		return nil, err
	}
	return enterArray(c.d, c)
}

// EnterMap expects the next top-level value to be an object and returns
// a cursor positioned just inside it.
func EnterMap(c *Root) (*Map[*Root], error) {
	if err := beforeRootValue(c.d); err != nil {
		return nil, err
	}
	return enterMap(c.d, c)
}

// Iter returns a finite, single-pass iterator over the concatenated
// top-level values, terminating gracefully at EOF.
func Iter[T any](c *Root, v visit.Visitor[T]) *ValueIter[T] {
	return &ValueIter[T]{next: func() (T, bool, error) {
		var zero T
		if err := c.d.SkipWhitespace(); err != nil {
			return zero, false, err
		}
		_, ok, err := c.d.PeekByte()
		if err != nil {
			return zero, false, err
		}
		if !ok {
			return zero, false, nil
		}
		res, err := decode.DeserializeAny(c.d, v)
		if err != nil {
			return zero, false, err
		}
		return res, true, nil
	}}
}

// End asserts there is nothing left but trailing whitespace.
func (c *Root) End() error {
	return c.d.CheckTrailing()
}

// expectOpen peeks for the opening bracket of an explicitly entered
// container; a byte other than want means the value at this position is
// not the container kind the caller asked to enter.
func expectOpen(d *decode.Deserializer, want byte) (jsonerr.Position, error) {
	if err := d.SkipWhitespace(); err != nil {
		return d.Position(), err
	}
	pos := d.Position()
	b, ok, err := d.PeekByte()
	if err != nil {
		return pos, err
	}
	if !ok || b != want {
		return pos, jsonerr.New(jsonerr.ExpectedSomeValue, pos)
	}
	d.DiscardByte()
	return pos, nil
}
