package stream

import (
	"github.com/ngjson/ngjson/internal/decode"
	"github.com/ngjson/ngjson/internal/jsonerr"
	"github.com/ngjson/ngjson/internal/visit"
)

// Map is the typestate for a cursor positioned inside an open object,
// parameterized by P, the parent cursor type returned from EndMap.
type Map[P any] struct {
	d      *decode.Deserializer
	parent P
	openAt jsonerr.Position
	first  bool
	closed bool
}

func enterMap[P any](d *decode.Deserializer, parent P) (*Map[P], error) {
	openAt, err := expectOpen(d, '{')
	if err != nil {
		return nil, err
	}
	if err := d.Enter(openAt); err != nil {
		return nil, err
	}
	return &Map[P]{d: d, parent: parent, openAt: openAt, first: true}, nil
}

// advanceKey implements the Map separator rule and parses the key
// string, mirroring internal/decode's objMap.NextKey. stopAtClose governs
// whether the closing brace at a value position is exhaustion (Iter) or
// an error (NextEntry).
func (c *Map[P]) advanceKey(stopAtClose bool) (key string, cont bool, err error) {
	if c.closed {
		panic("stream: operation on map cursor after EndMap")
	}
	if err := c.d.SkipWhitespace(); err != nil {
		return "", false, err
	}
	b, ok, err := c.d.PeekByte()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, jsonerr.New(jsonerr.EOFWhileParsingObject, c.d.Position())
	}
	if b == '}' {
		if stopAtClose {
			return "", false, nil
		}
		return "", false, jsonerr.New(jsonerr.ExpectedSomeValue, c.d.Position())
	}

	if !c.first {
		if b != ',' {
			return "", false, jsonerr.New(jsonerr.ExpectedObjectCommaOrEnd, c.d.Position())
		}
		c.d.DiscardByte()
		if err := c.d.SkipWhitespace(); err != nil {
			return "", false, err
		}
		b2, ok2, err2 := c.d.PeekByte()
		if err2 != nil {
			return "", false, err2
		}
		if !ok2 {
			return "", false, jsonerr.New(jsonerr.EOFWhileParsingObject, c.d.Position())
		}
		if b2 == '}' {
			if stopAtClose {
				return "", false, nil
			}
			return "", false, jsonerr.New(jsonerr.ExpectedSomeValue, c.d.Position())
		}
		b = b2
	}
	c.first = false

	if b != '"' {
		return "", false, jsonerr.New(jsonerr.KeyMustBeAString, c.d.Position())
	}
	c.d.DiscardByte()
	ref, err := c.d.ParseKeyString()
	if err != nil {
		return "", false, err
	}
	return ref, true, nil
}

func (c *Map[P]) expectColon() error {
	if err := c.d.SkipWhitespace(); err != nil {
		return err
	}
	b, ok, err := c.d.PeekByte()
	if err != nil {
		return err
	}
	if !ok {
		return jsonerr.New(jsonerr.EOFWhileParsingObject, c.d.Position())
	}
	if b != ':' {
		return jsonerr.New(jsonerr.ExpectedColon, c.d.Position())
	}
	c.d.DiscardByte()
	return nil
}

// NextEntry parses the next key/value pair via v. Calling it when the
// cursor is already at the closing brace is an error — call CanEndMap
// first, or use MapIter, to tell the two cases apart.
func NextEntry[T any, P any](c *Map[P], v visit.Visitor[T]) (string, T, error) {
	var zero T
	key, _, err := c.advanceKey(false)
	if err != nil {
		return "", zero, err
	}
	if err := c.expectColon(); err != nil {
		return "", zero, err
	}
	val, err := decode.DeserializeAny(c.d, v)
	if err != nil {
		return "", zero, err
	}
	return key, val, nil
}

// CanEndMap reports whether the cursor is positioned at the closing
// brace.
func CanEndMap[P any](c *Map[P]) (bool, error) {
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
	return ok && b == '}', nil
}

// EndMap consumes the closing brace and returns the parent cursor.
func EndMap[P any](c *Map[P]) (P, error) {
	var zero P
	if c.closed {
		panic("stream: EndMap called twice")
	}
	if err := c.d.SkipWhitespace(); err != nil {
		return zero, err
	}
	b, ok, err := c.d.PeekByte()
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, jsonerr.New(jsonerr.EOFWhileParsingObject, c.d.Position())
	}
	if b != '}' {
		if c.first {
			return zero, jsonerr.New(jsonerr.ExpectedSomeValue, c.d.Position())
		}
		return zero, jsonerr.New(jsonerr.ExpectedObjectCommaOrEnd, c.d.Position())
	}
	c.d.DiscardByte()
	c.d.Exit()
	c.closed = true
	return c.parent, nil
}

// EnterArrayInMap expects the next value to itself be an array, returning
// the key alongside the nested cursor.
func EnterArrayInMap[P any](c *Map[P]) (string, *Array[*Map[P]], error) {
	key, _, err := c.advanceKey(false)
	if err != nil {
		return "", nil, err
	}
	if err := c.expectColon(); err != nil {
		return "", nil, err
	}
	arr, err := enterArray(c.d, c)
	if err != nil {
		return "", nil, err
	}
	return key, arr, nil
}

// EnterMapInMap expects the next value to itself be an object, returning
// the key alongside the nested cursor.
func EnterMapInMap[P any](c *Map[P]) (string, *Map[*Map[P]], error) {
	key, _, err := c.advanceKey(false)
	if err != nil {
		return "", nil, err
	}
	if err := c.expectColon(); err != nil {
		return "", nil, err
	}
	m, err := enterMap(c.d, c)
	if err != nil {
		return "", nil, err
	}
	return key, m, nil
}

// Entry is one key/value pair yielded by MapIter.
type Entry[T any] struct {
	Key   string
	Value T
}

// MapIter returns a finite, single-pass iterator over the remaining
// entries, terminating gracefully at the closing brace (which it does
// not consume — call EndMap afterward).
func MapIter[T any, P any](c *Map[P], v visit.Visitor[T]) *ValueIter[Entry[T]] {
	return &ValueIter[Entry[T]]{next: func() (Entry[T], bool, error) {
		var zero Entry[T]
		key, cont, err := c.advanceKey(true)
		if err != nil {
			return zero, false, err
		}
		if !cont {
			return zero, false, nil
		}
		if err := c.expectColon(); err != nil {
			return zero, false, err
		}
		val, err := decode.DeserializeAny(c.d, v)
		if err != nil {
			return zero, false, err
		}
		return Entry[T]{Key: key, Value: val}, true, nil
	}}
}
