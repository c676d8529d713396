// Package decode implements the parser/deserializer: a visitor-driven
// state machine that pulls tokens from internal/scan and internal/read
// and dispatches into the internal/visit capability set.
//
// Go has no generic methods, so the generic entry points below
// (DeserializeAny, DeserializeRaw, DeserializeSpanned) are free functions
// taking *Deserializer as their first argument rather than methods on it —
// the idiom this module uses everywhere a Rust `fn foo<V: Visitor>(&mut
// self, visitor: V)` method would otherwise become a method with its own
// type parameter.
//
package decode

import (
	"errors"
	"log/slog"

	"github.com/ngjson/ngjson/internal/jsonerr"
	"github.com/ngjson/ngjson/internal/read"
	"github.com/ngjson/ngjson/internal/scan"
	"github.com/ngjson/ngjson/internal/visit"
)

// DefaultRecursionLimit is the depth at which nested containers raise
// RecursionLimitExceeded.
const DefaultRecursionLimit = 128

// BinaryMode selects how the (optional, external) binding layer reads a
// byte-sequence field encoded as either a JSON array of numbers or a hex
// string. Decode does not act on this itself — it is carried here so a
// binding layer built on top of Deserializer can see the caller's choice
// without its own options struct.
type BinaryMode int

const (
	BinaryModeArray BinaryMode = iota
	BinaryModeHex
)

// Options carries the parser's feature flags.
type Options struct {
	RecursionLimit        int
	DisableRecursionLimit bool
	AllowPartialObject    bool
	AllowPartialList      bool
	AllowPartialString    bool
	BinaryMode            BinaryMode
	Logger                *slog.Logger
}

// Deserializer is the parser state machine: a source plus a remaining-
// recursion counter and the feature flags from Options.
type Deserializer struct {
	r       read.Read
	opts    Options
	depth   int
	scratch []byte
}

// New constructs a Deserializer over r.
func New(r read.Read, opts Options) *Deserializer {
	limit := opts.RecursionLimit
	if limit <= 0 {
		limit = DefaultRecursionLimit
	}
	return &Deserializer{r: r, opts: opts, depth: limit}
}

func (d *Deserializer) logTrace(msg string, args ...any) {
	if d.opts.Logger != nil {
		d.opts.Logger.Debug(msg, args...)
	}
}

// enter decrements the recursion counter on descent into a nested
// container, raising RecursionLimitExceeded at openPos (the offset of the
// opening bracket) when the decrement would bring it to zero, so nesting
// as deep as the limit itself is rejected.
func (d *Deserializer) enter(openPos jsonerr.Position) error {
	if d.opts.DisableRecursionLimit {
		return nil
	}
	if d.depth <= 1 {
		return jsonerr.New(jsonerr.RecursionLimitExceeded, openPos)
	}
	d.depth--
	return nil
}

func (d *Deserializer) exit() {
	if d.opts.DisableRecursionLimit {
		return
	}
	d.depth++
}

// Enter and Exit expose the recursion-limit bookkeeping to the stream
// cursor (package stream), which drives its own separator/termination
// rules on top of the same Deserializer rather than going through
// DeserializeAny's SeqAccess/MapAccess push model.
func (d *Deserializer) Enter(openPos jsonerr.Position) error { return d.enter(openPos) }
func (d *Deserializer) Exit()                                { d.exit() }

// SkipWhitespace, PeekByte, DiscardByte, and Position expose the minimum
// source surface the stream cursor needs to implement its own
// separator rule without reaching into internal/read directly.
func (d *Deserializer) SkipWhitespace() error         { return scan.SkipWhitespace(d.r) }
func (d *Deserializer) PeekByte() (byte, bool, error) { return d.r.Peek() }
func (d *Deserializer) DiscardByte()                  { d.r.Discard() }
func (d *Deserializer) Position() jsonerr.Position    { return d.r.PeekPosition() }

// CheckTrailing implements the at-exit policy for a top-level parse:
// consume trailing whitespace, then reject any remaining byte as
// TrailingCharacters at its exact column.
func (d *Deserializer) CheckTrailing() error {
	if err := scan.SkipWhitespace(d.r); err != nil {
		return err
	}
	_, ok, err := d.r.Peek()
	if err != nil {
		return jsonerr.Wrap(d.r.PeekPosition(), err)
	}
	if ok {
		return jsonerr.New(jsonerr.TrailingCharacters, d.r.PeekPosition())
	}
	return nil
}

// parseString wraps read.Read.ParseStr with the AllowPartialString policy:
// an EOF mid-string is accepted and whatever scratch holds so far is
// returned, since a string has no further nested construct and is
// trivially "the outermost still-open construct" whenever it is open at
// all.
func (d *Deserializer) parseString() (read.Reference, error) {
	ref, err := d.r.ParseStr(&d.scratch, true)
	if err != nil {
		var se *jsonerr.SyntaxError
		if d.opts.AllowPartialString && errors.As(err, &se) && se.Code == jsonerr.EOFWhileParsingString {
			d.logTrace("partial string accepted at EOF")
			return read.Reference{Borrowed: false, Str: string(d.scratch)}, nil
		}
		return read.Reference{}, err
	}
	return ref, nil
}

// ParseKeyString parses a quoted string starting just after the opening
// quote, which the caller must already have discarded via DiscardByte.
// Exposed for the stream cursor (package stream), which parses object
// keys directly rather than through a MapAccess.
func (d *Deserializer) ParseKeyString() (string, error) {
	ref, err := d.parseString()
	if err != nil {
		return "", err
	}
	return ref.Str, nil
}

// DeserializeAny dispatches on the next non-whitespace byte and calls the
// matching Visitor method.
func DeserializeAny[T any](d *Deserializer, v visit.Visitor[T]) (T, error) {
	var zero T
	if err := scan.SkipWhitespace(d.r); err != nil {
		return zero, err
	}
	startPos := d.r.PeekPosition()
	b, ok, err := d.r.Next()
	if err != nil {
		return zero, jsonerr.Wrap(d.r.Position(), err)
	}
	if !ok {
		return zero, jsonerr.New(jsonerr.EOFWhileParsingValue, startPos)
	}

	switch {
	case b == 'n':
		if err := scan.MatchLiteral(d.r, startPos, "ull"); err != nil {
			return zero, err
		}
		return v.VisitNull()
	case b == 't':
		if err := scan.MatchLiteral(d.r, startPos, "rue"); err != nil {
			return zero, err
		}
		return v.VisitBool(true)
	case b == 'f':
		if err := scan.MatchLiteral(d.r, startPos, "alse"); err != nil {
			return zero, err
		}
		return v.VisitBool(false)
	case b == '"':
		ref, err := d.parseString()
		if err != nil {
			return zero, err
		}
		if ref.Borrowed {
			return v.VisitBorrowedStr(ref.Str)
		}
		return v.VisitStr(ref.Str)
	case b == '[':
		return deserializeArray(d, startPos, v)
	case b == '{':
		return deserializeObject(d, startPos, v)
	case b == '-' || (b >= '0' && b <= '9'):
		num, err := scan.ParseNumber(d.r, b, startPos)
		if err != nil {
			return zero, err
		}
		switch num.Kind {
		case scan.PositiveInteger:
			return v.VisitU64(num.U64)
		case scan.NegativeInteger:
			return v.VisitI64(num.I64)
		default:
			return v.VisitF64(num.F64)
		}
	default:
		return zero, jsonerr.New(jsonerr.ExpectedSomeValue, startPos)
	}
}

// DeserializeRaw captures the exact bytes of the next JSON value
// verbatim: it marks the source offset, delegates to the normal value
// parser (discarding the built result), and returns the byte range.
func DeserializeRaw(d *Deserializer) ([]byte, error) {
	if err := scan.SkipWhitespace(d.r); err != nil {
		return nil, err
	}
	d.r.BeginRawBuffering()
	if _, err := DeserializeAny[struct{}](d, discardVisitor{}); err != nil {
		d.r.EndRawBuffering()
		return nil, err
	}
	return d.r.EndRawBuffering(), nil
}

// DeserializeSpanned parses one value and reports its start/end byte
// offsets alongside the result. Callers that want the
// `$start`/`$end`/`$value` marker-field presentation build it from these
// three return values (see the root package's Span type).
func DeserializeSpanned[T any](d *Deserializer, v visit.Visitor[T]) (start, end uint64, result T, err error) {
	if err = scan.SkipWhitespace(d.r); err != nil {
		return 0, 0, result, err
	}
	start = d.r.ByteOffset()
	result, err = DeserializeAny(d, v)
	if err != nil {
		return 0, 0, result, err
	}
	end = d.r.ByteOffset()
	return start, end, result, nil
}

// discardVisitor walks a value without building a result, used by
// DeserializeRaw to advance the source while a raw-buffering region
// captures the bytes.
type discardVisitor struct{}

func (discardVisitor) VisitNull() (struct{}, error)          { return struct{}{}, nil }
func (discardVisitor) VisitBool(bool) (struct{}, error)       { return struct{}{}, nil }
func (discardVisitor) VisitI64(int64) (struct{}, error)       { return struct{}{}, nil }
func (discardVisitor) VisitU64(uint64) (struct{}, error)      { return struct{}{}, nil }
func (discardVisitor) VisitF64(float64) (struct{}, error)     { return struct{}{}, nil }
func (discardVisitor) VisitBorrowedStr(string) (struct{}, error) { return struct{}{}, nil }
func (discardVisitor) VisitStr(string) (struct{}, error)      { return struct{}{}, nil }
func (discardVisitor) VisitBytes([]byte) (struct{}, error)    { return struct{}{}, nil }

func (discardVisitor) VisitSeq(seq visit.SeqAccess[struct{}]) (struct{}, error) {
	for {
		_, ok, err := seq.NextElement()
		if err != nil {
			return struct{}{}, err
		}
		if !ok {
			return struct{}{}, nil
		}
	}
}

func (discardVisitor) VisitMap(m visit.MapAccess[struct{}]) (struct{}, error) {
	for {
		_, ok, err := m.NextKey()
		if err != nil {
			return struct{}{}, err
		}
		if !ok {
			return struct{}{}, nil
		}
		if _, err := m.NextValue(); err != nil {
			return struct{}{}, err
		}
	}
}
