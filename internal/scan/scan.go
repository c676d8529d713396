// Package scan implements the scanner: whitespace, literal, number, and
// structural-character recognition driven over an internal/read.Read
// source. String scanning itself lives on the Read interface
// (ParseStr/IgnoreStr) since it needs source-specific scratch/zero-copy
// handling; this package only classifies and matches the remaining token
// kinds.
package scan

import (
	"github.com/ngjson/ngjson/internal/jsonerr"
	"github.com/ngjson/ngjson/internal/lexical"
	"github.com/ngjson/ngjson/internal/read"
)

// SkipWhitespace consumes space, tab, newline, and carriage return.
func SkipWhitespace(r read.Read) error {
	for {
		b, ok, err := r.Peek()
		if err != nil {
			return jsonerr.Wrap(r.PeekPosition(), err)
		}
		if !ok {
			return nil
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			r.Discard()
		default:
			return nil
		}
	}
}

// MatchLiteral consumes len(rest) bytes and compares them against rest,
// reporting ExpectedSomeIdent at startPos (the literal's first byte, which
// the caller has already consumed) on any mismatch or premature EOF.
func MatchLiteral(r read.Read, startPos jsonerr.Position, rest string) error {
	for i := 0; i < len(rest); i++ {
		b, ok, err := r.Next()
		if err != nil {
			return jsonerr.Wrap(r.Position(), err)
		}
		if !ok || b != rest[i] {
			return jsonerr.New(jsonerr.ExpectedSomeIdent, startPos)
		}
	}
	return nil
}

// NumberKind classifies a parsed number.
type NumberKind int

const (
	PositiveInteger NumberKind = iota
	NegativeInteger
	Float
)

// Number is the scanner's classified result. Only the field matching Kind
// is meaningful, except F64 which is always populated as a total
// conversion.
type Number struct {
	Kind NumberKind
	I64  int64
	U64  uint64
	F64  float64
}

const maxExpMagnitude = 1 << 28

// ParseNumber classifies and parses one JSON number. first is the token's
// first byte, already consumed by the caller (either '-' or a digit);
// startPos is that byte's position, used for error reporting: every
// scanner routine reports the start of the offending construct, not the
// current index.
func ParseNumber(r read.Read, first byte, startPos jsonerr.Position) (Number, error) {
	neg := false
	if first == '-' {
		neg = true
		b, ok, err := r.Next()
		if err != nil {
			return Number{}, jsonerr.Wrap(r.Position(), err)
		}
		if !ok {
			return Number{}, jsonerr.New(jsonerr.InvalidNumber, startPos)
		}
		first = b
	}
	if first < '0' || first > '9' {
		return Number{}, jsonerr.New(jsonerr.InvalidNumber, startPos)
	}

	integer := []byte{first}
	if first == '0' {
		// A leading zero may not be followed by another digit (e.g. "01"
		// is invalid), but *may* be followed by '.' or an exponent.
		b, ok, err := r.Peek()
		if err != nil {
			return Number{}, jsonerr.Wrap(r.PeekPosition(), err)
		}
		if ok && b >= '0' && b <= '9' {
			return Number{}, jsonerr.New(jsonerr.InvalidNumber, startPos)
		}
	} else {
		for {
			b, ok, err := r.Peek()
			if err != nil {
				return Number{}, jsonerr.Wrap(r.PeekPosition(), err)
			}
			if !ok || b < '0' || b > '9' {
				break
			}
			r.Discard()
			integer = append(integer, b)
		}
	}

	var fraction []byte
	isFloat := false

	b, ok, err := r.Peek()
	if err != nil {
		return Number{}, jsonerr.Wrap(r.PeekPosition(), err)
	}
	if ok && b == '.' {
		isFloat = true
		r.Discard()
		fb, fok, ferr := r.Peek()
		if ferr != nil {
			return Number{}, jsonerr.Wrap(r.PeekPosition(), ferr)
		}
		if !fok || fb < '0' || fb > '9' {
			return Number{}, jsonerr.New(jsonerr.InvalidNumber, startPos)
		}
		for {
			fb, fok, ferr := r.Peek()
			if ferr != nil {
				return Number{}, jsonerr.Wrap(r.PeekPosition(), ferr)
			}
			if !fok || fb < '0' || fb > '9' {
				break
			}
			r.Discard()
			fraction = append(fraction, fb)
		}
		b, ok, err = r.Peek()
		if err != nil {
			return Number{}, jsonerr.Wrap(r.PeekPosition(), err)
		}
	}

	var exponent int64
	if ok && (b == 'e' || b == 'E') {
		isFloat = true
		r.Discard()

		expNeg := false
		eb, eok, eerr := r.Peek()
		if eerr != nil {
			return Number{}, jsonerr.Wrap(r.PeekPosition(), eerr)
		}
		if eok && (eb == '+' || eb == '-') {
			expNeg = eb == '-'
			r.Discard()
		}

		db, dok, derr := r.Peek()
		if derr != nil {
			return Number{}, jsonerr.Wrap(r.PeekPosition(), derr)
		}
		if !dok || db < '0' || db > '9' {
			return Number{}, jsonerr.New(jsonerr.InvalidNumber, startPos)
		}
		var magnitude int64
		for {
			db, dok, derr := r.Peek()
			if derr != nil {
				return Number{}, jsonerr.Wrap(r.PeekPosition(), derr)
			}
			if !dok || db < '0' || db > '9' {
				break
			}
			r.Discard()
			if magnitude < maxExpMagnitude {
				magnitude = magnitude*10 + int64(db-'0')
			}
		}
		if expNeg {
			exponent = -magnitude
		} else {
			exponent = magnitude
		}
	}

	if !isFloat {
		if !neg {
			if u, ok := parseU64(integer); ok {
				return Number{Kind: PositiveInteger, U64: u, F64: float64(u)}, nil
			}
		} else {
			if i, ok := parseI64Neg(integer); ok {
				return Number{Kind: NegativeInteger, I64: i, F64: float64(i)}, nil
			}
		}
		// Overflowed i64/u64: fall back to the float path using the
		// digits already recorded.
	}

	f := lexical.ParseFloat(neg, integer, fraction, exponent)
	return Number{Kind: Float, F64: f}, nil
}

// parseU64 parses an unsigned decimal digit sequence, reporting overflow
// past 2^64-1.
func parseU64(digits []byte) (uint64, bool) {
	var v uint64
	for _, c := range digits {
		d := uint64(c - '0')
		nv := v*10 + d
		if nv < v || (v > 0 && nv/10 != v) {
			return 0, false
		}
		v = nv
	}
	return v, true
}

// parseI64Neg parses a negated decimal digit sequence against the
// asymmetric i64 range ([-2^63, 2^63)), reporting overflow past -2^63.
func parseI64Neg(digits []byte) (int64, bool) {
	const minAbs = uint64(1) << 63 // |math.MinInt64|
	var v uint64
	for _, c := range digits {
		d := uint64(c - '0')
		nv := v*10 + d
		if nv < v || (v > 0 && nv/10 != v) {
			return 0, false
		}
		v = nv
	}
	if v > minAbs {
		return 0, false
	}
	if v == minAbs {
		return int64(-1 << 63), true
	}
	return -int64(v), true
}
