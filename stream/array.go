package stream

import (
	"github.com/ngjson/ngjson/internal/decode"
	"github.com/ngjson/ngjson/internal/jsonerr"
	"github.com/ngjson/ngjson/internal/visit"
)

// Array is the typestate for a cursor positioned inside an open array,
// parameterized by P, the parent cursor type returned from EndArray.
type Array[P any] struct {
	d      *decode.Deserializer
	parent P
	openAt jsonerr.Position
	first  bool
	closed bool
}

func enterArray[P any](d *decode.Deserializer, parent P) (*Array[P], error) {
	openAt, err := expectOpen(d, '[')
	if err != nil {
		return nil, err
	}
	if err := d.Enter(openAt); err != nil {
		return nil, err
	}
	return &Array[P]{d: d, parent: parent, openAt: openAt, first: true}, nil
}

// advance implements the Array separator rule. stopAtClose
// controls what happens when the next value position is instead the
// closing bracket: NextElement treats it as an error (use EndArray
// instead), Iter treats it as graceful exhaustion.
func (c *Array[P]) advance(stopAtClose bool) (cont bool, err error) {
	if c.closed {
		panic("stream: operation on array cursor after EndArray")
	}
	if err := c.d.SkipWhitespace(); err != nil {
		return false, err
	}
	b, ok, err := c.d.PeekByte()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, jsonerr.New(jsonerr.EOFWhileParsingList, c.d.Position())
	}
	if b == ']' {
		if stopAtClose {
			return false, nil
		}
		return false, jsonerr.New(jsonerr.ExpectedSomeValue, c.d.Position())
	}

	if !c.first {
		if b != ',' {
			return false, jsonerr.New(jsonerr.ExpectedListCommaOrEnd, c.d.Position())
		}
		c.d.DiscardByte()
		if err := c.d.SkipWhitespace(); err != nil {
			return false, err
		}
		b2, ok2, err2 := c.d.PeekByte()
		if err2 != nil {
			return false, err2
		}
		if !ok2 {
			return false, jsonerr.New(jsonerr.EOFWhileParsingList, c.d.Position())
		}
		if b2 == ']' {
			if stopAtClose {
				return false, nil
			}
			return false, jsonerr.New(jsonerr.ExpectedSomeValue, c.d.Position())
		}
	}
	c.first = false
	return true, nil
}

// NextElement parses the next array element via v. Calling it when the
// cursor is already at the closing bracket is an error — call CanEndArray
// first, or use Iter, to tell the two cases apart.
func NextElement[T any, P any](c *Array[P], v visit.Visitor[T]) (T, error) {
	var zero T
	if _, err := c.advance(false); err != nil {
		return zero, err
	}
	return decode.DeserializeAny(c.d, v)
}

// CanEndArray reports whether the cursor is positioned at the closing
// bracket (skipping any intervening whitespace to check).
func CanEndArray[P any](c *Array[P]) (bool, error) {
	if c.closed {
		return true, nil
	}
	if err := c.d.SkipWhitespace(); err != nil {
		return false, err
	}
	b, ok, err := c.d.PeekByte()
	if err != nil {
		return false, err
	}
	return ok && b == ']', nil
}

// EndArray consumes the closing bracket and returns the parent cursor.
func EndArray[P any](c *Array[P]) (P, error) {
	var zero P
	if c.closed {
		panic("stream: EndArray called twice")
	}
	if err := c.d.SkipWhitespace(); err != nil {
		return zero, err
	}
	b, ok, err := c.d.PeekByte()
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, jsonerr.New(jsonerr.EOFWhileParsingList, c.d.Position())
	}
	if b != ']' {
		if c.first {
			return zero, jsonerr.New(jsonerr.ExpectedSomeValue, c.d.Position())
		}
		return zero, jsonerr.New(jsonerr.ExpectedListCommaOrEnd, c.d.Position())
	}
	c.d.DiscardByte()
	c.d.Exit()
	c.closed = true
	return c.parent, nil
}

// EnterArrayIn expects the next element to itself be an array.
func EnterArrayIn[P any](c *Array[P]) (*Array[*Array[P]], error) {
	if _, err := c.advance(false); err != nil {
		return nil, err
	}
	return enterArray(c.d, c)
}

// EnterMapIn expects the next element to be an object.
func EnterMapIn[P any](c *Array[P]) (*Map[*Array[P]], error) {
	if _, err := c.advance(false); err != nil {
		return nil, err
	}
	return enterMap(c.d, c)
}

// ArrayIter returns a finite, single-pass iterator over the remaining
// elements, terminating gracefully at the closing bracket (which it does
// not consume — call EndArray afterward).
func ArrayIter[T any, P any](c *Array[P], v visit.Visitor[T]) *ValueIter[T] {
	return &ValueIter[T]{next: func() (T, bool, error) {
		var zero T
		cont, err := c.advance(true)
		if err != nil {
			return zero, false, err
		}
		if !cont {
			return zero, false, nil
		}
		res, err := decode.DeserializeAny(c.d, v)
		if err != nil {
			return zero, false, err
		}
		return res, true, nil
	}}
}
