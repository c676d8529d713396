// Package jsonerr defines the error taxonomy shared by the scanner, the
// deserializer, and the serializer. It is a leaf package so that both
// internal/decode and internal/encode (and the root package) can depend on
// it without creating an import cycle.
package jsonerr

import "fmt"

// Position locates a byte within JSON source text. Line is 1-indexed;
// Column is 0-indexed.
type Position struct {
	Line   uint64
	Column uint64
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Code identifies an error kind from the error taxonomy. Every Code
// carries a Position when surfaced as a *SyntaxError.
type Code int

const (
	_ Code = iota

	// Structural
	EOFWhileParsingValue
	EOFWhileParsingList
	EOFWhileParsingObject
	EOFWhileParsingString
	ExpectedColon
	ExpectedListCommaOrEnd
	ExpectedObjectCommaOrEnd
	ExpectedSomeValue
	ExpectedSomeIdent
	TrailingCharacters
	KeyMustBeAString
	RecursionLimitExceeded

	// Lexical
	InvalidNumber
	NumberOutOfRange
	InvalidEscape
	UnexpectedEndOfHexEscape
	LoneLeadingSurrogateInHexEscape
	InvalidUnicodeCodePoint

	// Binding
	UnknownField
	MissingField
	DuplicateField
	Custom

	// I/O / serialize
	IoError
	NonFiniteFloat
)

var codeNames = map[Code]string{
	EOFWhileParsingValue:            "EOF while parsing a value",
	EOFWhileParsingList:             "EOF while parsing a list",
	EOFWhileParsingObject:           "EOF while parsing an object",
	EOFWhileParsingString:           "EOF while parsing a string",
	ExpectedColon:                   "expected `:`",
	ExpectedListCommaOrEnd:          "expected `,` or `]`",
	ExpectedObjectCommaOrEnd:        "expected `,` or `}`",
	ExpectedSomeValue:               "expected value",
	ExpectedSomeIdent:               "expected ident",
	TrailingCharacters:              "trailing characters",
	KeyMustBeAString:                "key must be a string",
	RecursionLimitExceeded:          "recursion limit exceeded",
	InvalidNumber:                   "invalid number",
	NumberOutOfRange:                "number out of range",
	InvalidEscape:                   "invalid escape",
	UnexpectedEndOfHexEscape:        "unexpected end of hex escape",
	LoneLeadingSurrogateInHexEscape: "lone leading surrogate in hex escape",
	InvalidUnicodeCodePoint:         "invalid unicode code point",
	UnknownField:                    "unknown field",
	MissingField:                    "missing field",
	DuplicateField:                  "duplicate field",
	Custom:                          "custom",
	IoError:                         "I/O error",
	NonFiniteFloat:                  "non-finite float",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown error"
}

// SyntaxError is the error type returned by the scanner, deserializer, and
// serializer. It always carries the Position of the first offending byte
// of the token in question, where known.
type SyntaxError struct {
	Code    Code
	Pos     Position
	Detail  string // optional extra context, e.g. a field name
	Wrapped error  // set for IoError
}

func (e *SyntaxError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s at %s: %v", e.Code, e.Pos, e.Wrapped)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s at %s: %s", e.Code, e.Pos, e.Detail)
	}
	return fmt.Sprintf("%s at %s", e.Code, e.Pos)
}

func (e *SyntaxError) Unwrap() error { return e.Wrapped }

// New builds a *SyntaxError at pos with no extra detail.
func New(code Code, pos Position) *SyntaxError {
	return &SyntaxError{Code: code, Pos: pos}
}

// Newf builds a *SyntaxError at pos with a formatted detail message.
func Newf(code Code, pos Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Code: code, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds an I/O *SyntaxError around cause; I/O errors propagate
// verbatim and abort parsing.
func Wrap(pos Position, cause error) *SyntaxError {
	return &SyntaxError{Code: IoError, Pos: pos, Wrapped: cause}
}
