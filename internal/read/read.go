// Package read implements the source readers: a uniform byte-stream
// contract with peek/next/discard, position tracking, and the
// string-scanning helpers the scanner (internal/scan) drives, with
// concrete implementations for in-memory slices, strings, and io.Reader.
package read

import "github.com/ngjson/ngjson/internal/jsonerr"

// Reference describes where a parsed string's bytes live: borrowed
// directly from the source buffer, or copied into the source's scratch
// buffer because it contained an escape sequence.
type Reference struct {
	Borrowed bool
	Str      string
}

// Read is the common contract implemented by every source variant.
// Position tracking, peek/next/discard, and string scanning are all
// defined here so the scanner and deserializer never need to know
// which variant they are driving.
type Read interface {
	// Next consumes and returns the next byte, or ok=false at EOF.
	Next() (b byte, ok bool, err error)
	// Peek returns the next byte without consuming it. Calling Peek
	// repeatedly without an intervening Next/Discard returns the same
	// byte and has no further side effects.
	Peek() (b byte, ok bool, err error)
	// Discard consumes the byte most recently returned by Peek. Calling
	// Discard without a prior successful Peek is undefined — implementations
	// may panic.
	Discard()

	// Position reports the location just past the most recently consumed
	// byte, i.e. where the next unconsumed byte sits.
	Position() jsonerr.Position
	// PeekPosition reports the location of the byte that the next call
	// to Peek/Next will return.
	PeekPosition() jsonerr.Position
	// ByteOffset returns the absolute offset of the next byte to be
	// returned.
	ByteOffset() uint64

	// ParseStr scans a string body starting just after the opening
	// quote (already consumed by the caller) through the matching
	// closing quote (consumed by this call), decoding escape sequences.
	// validate controls whether invalid UTF-8 in unescaped runs is
	// rejected (callers parsing into []byte/bytes mode may skip it).
	ParseStr(scratch *[]byte, validate bool) (Reference, error)
	// IgnoreStr consumes a string body (as ParseStr would) and discards
	// the decoded result, used when a visitor does not need the key spelled out
	// (not currently exercised by the public API, but kept for parity with
	// the rest of the Read contract).
	IgnoreStr() error

	// BeginRawBuffering marks the current byte offset as the start of a
	// raw-capture region.
	BeginRawBuffering()
	// EndRawBuffering returns the exact bytes from the mark to the
	// current offset and clears the mark.
	EndRawBuffering() []byte
}

const eof = byte(0)
