package decode

import (
	"github.com/ngjson/ngjson/internal/jsonerr"
	"github.com/ngjson/ngjson/internal/scan"
	"github.com/ngjson/ngjson/internal/visit"
)

// deserializeArray handles the array rule: the opening `[` has already
// been consumed by the caller; this enters the container and hands a
// SeqAccess to the visitor so it can pull elements with the same
// recursive T.
func deserializeArray[T any](d *Deserializer, openPos jsonerr.Position, v visit.Visitor[T]) (T, error) {
	var zero T
	if err := d.enter(openPos); err != nil {
		return zero, err
	}
	defer d.exit()

	seq := &arraySeq[T]{d: d, v: v, first: true}
	result, err := v.VisitSeq(seq)
	if err != nil {
		return zero, err
	}
	return result, nil
}

type arraySeq[T any] struct {
	d     *Deserializer
	v     visit.Visitor[T]
	first bool
}

// NextElement implements the separator rule for Array: before any
// value, peek whitespace; if first, accept any value byte; otherwise
// require `,`. A trailing comma (comma immediately followed by `]`) is
// rejected.
func (s *arraySeq[T]) NextElement() (T, bool, error) {
	var zero T
	if err := scan.SkipWhitespace(s.d.r); err != nil {
		return zero, false, err
	}
	b, ok, err := s.d.r.Peek()
	if err != nil {
		return zero, false, err
	}
	if !ok {
		if s.d.opts.AllowPartialList {
			s.d.logTrace("partial list accepted at EOF")
			return zero, false, nil
		}
		return zero, false, jsonerr.New(jsonerr.EOFWhileParsingList, s.d.r.PeekPosition())
	}
	if b == ']' {
		s.d.r.Discard()
		return zero, false, nil
	}

	if !s.first {
		if b != ',' {
			return zero, false, jsonerr.New(jsonerr.ExpectedListCommaOrEnd, s.d.r.PeekPosition())
		}
		s.d.r.Discard()
		if err := scan.SkipWhitespace(s.d.r); err != nil {
			return zero, false, err
		}
		b2, ok2, err2 := s.d.r.Peek()
		if err2 != nil {
			return zero, false, err2
		}
		if !ok2 {
			if s.d.opts.AllowPartialList {
				s.d.logTrace("partial list accepted at EOF after comma")
				return zero, false, nil
			}
			return zero, false, jsonerr.New(jsonerr.EOFWhileParsingList, s.d.r.PeekPosition())
		}
		if b2 == ']' {
			return zero, false, jsonerr.New(jsonerr.ExpectedSomeValue, s.d.r.PeekPosition())
		}
	}
	s.first = false

	v, err := DeserializeAny(s.d, s.v)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// deserializeObject handles the object rule: as array, but keys must be
// strings and a `:` separates key from value.
func deserializeObject[T any](d *Deserializer, openPos jsonerr.Position, v visit.Visitor[T]) (T, error) {
	var zero T
	if err := d.enter(openPos); err != nil {
		return zero, err
	}
	defer d.exit()

	m := &objMap[T]{d: d, v: v, first: true}
	result, err := v.VisitMap(m)
	if err != nil {
		return zero, err
	}
	return result, nil
}

type objMap[T any] struct {
	d      *Deserializer
	v      visit.Visitor[T]
	first  bool
	inKey  bool
}

func (m *objMap[T]) NextKey() (string, bool, error) {
	if err := scan.SkipWhitespace(m.d.r); err != nil {
		return "", false, err
	}
	b, ok, err := m.d.r.Peek()
	if err != nil {
		return "", false, err
	}
	if !ok {
		if m.d.opts.AllowPartialObject {
			m.d.logTrace("partial object accepted at EOF")
			return "", false, nil
		}
		return "", false, jsonerr.New(jsonerr.EOFWhileParsingObject, m.d.r.PeekPosition())
	}
	if b == '}' {
		m.d.r.Discard()
		return "", false, nil
	}

	if !m.first {
		if b != ',' {
			return "", false, jsonerr.New(jsonerr.ExpectedObjectCommaOrEnd, m.d.r.PeekPosition())
		}
		m.d.r.Discard()
		if err := scan.SkipWhitespace(m.d.r); err != nil {
			return "", false, err
		}
		b2, ok2, err2 := m.d.r.Peek()
		if err2 != nil {
			return "", false, err2
		}
		if !ok2 {
			if m.d.opts.AllowPartialObject {
				m.d.logTrace("partial object accepted at EOF after comma")
				return "", false, nil
			}
			return "", false, jsonerr.New(jsonerr.EOFWhileParsingObject, m.d.r.PeekPosition())
		}
		if b2 == '}' {
			return "", false, jsonerr.New(jsonerr.ExpectedSomeValue, m.d.r.PeekPosition())
		}
		b = b2
	}
	m.first = false

	if b != '"' {
		return "", false, jsonerr.New(jsonerr.KeyMustBeAString, m.d.r.PeekPosition())
	}
	m.d.r.Discard()
	ref, err := m.d.parseString()
	if err != nil {
		return "", false, err
	}
	m.inKey = true
	return ref.Str, true, nil
}

func (m *objMap[T]) NextValue() (T, error) {
	var zero T
	if !m.inKey {
		panic("decode: NextValue called without a preceding NextKey")
	}
	m.inKey = false

	if err := scan.SkipWhitespace(m.d.r); err != nil {
		return zero, err
	}
	b, ok, err := m.d.r.Next()
	if err != nil {
		return zero, jsonerr.Wrap(m.d.r.Position(), err)
	}
	if !ok {
		if m.d.opts.AllowPartialObject {
			return zero, nil
		}
		return zero, jsonerr.New(jsonerr.EOFWhileParsingObject, m.d.r.Position())
	}
	if b != ':' {
		return zero, jsonerr.New(jsonerr.ExpectedColon, m.d.r.Position())
	}

	return DeserializeAny(m.d, m.v)
}
