package ngjson

import (
	"fmt"

	"github.com/ngjson/ngjson/internal/jsonerr"
)

// wrapParseErr attaches the ErrParse sentinel to err so callers that only
// check errors.Is(err, ngjson.ErrParse) don't need to know about
// *SyntaxError, while errors.As(err, &syntaxErr) still finds the
// underlying *SyntaxError with its Position and ErrorCode.
func wrapParseErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrParse, err)
}

// Position locates a byte within JSON source text: Line is 1-indexed,
// Column is 0-indexed. Its String method renders "line:column".
type Position = jsonerr.Position

// ErrorCode identifies an error kind from the parse/bind/serialize error
// taxonomy; every ErrorCode carries a Position when surfaced as a
// *SyntaxError.
type ErrorCode = jsonerr.Code

// SyntaxError is the error type behind parse failures from Unmarshal and
// the Decoder methods, and behind Marshal/Encoder.Encode's rejection of a
// non-finite float. It always carries the Position of the first offending
// byte, where known. Parse errors are returned wrapped together with
// ErrParse, so errors.Is(err, ErrParse) matches them; Marshal and Encode
// return it unwrapped.
type SyntaxError = jsonerr.SyntaxError

const (
	EOFWhileParsingValue            = jsonerr.EOFWhileParsingValue
	EOFWhileParsingList             = jsonerr.EOFWhileParsingList
	EOFWhileParsingObject           = jsonerr.EOFWhileParsingObject
	EOFWhileParsingString           = jsonerr.EOFWhileParsingString
	ExpectedColon                   = jsonerr.ExpectedColon
	ExpectedListCommaOrEnd          = jsonerr.ExpectedListCommaOrEnd
	ExpectedObjectCommaOrEnd        = jsonerr.ExpectedObjectCommaOrEnd
	ExpectedSomeValue               = jsonerr.ExpectedSomeValue
	ExpectedSomeIdent               = jsonerr.ExpectedSomeIdent
	TrailingCharacters              = jsonerr.TrailingCharacters
	KeyMustBeAString                = jsonerr.KeyMustBeAString
	RecursionLimitExceeded          = jsonerr.RecursionLimitExceeded
	InvalidNumber                   = jsonerr.InvalidNumber
	NumberOutOfRange                = jsonerr.NumberOutOfRange
	InvalidEscape                   = jsonerr.InvalidEscape
	UnexpectedEndOfHexEscape        = jsonerr.UnexpectedEndOfHexEscape
	LoneLeadingSurrogateInHexEscape = jsonerr.LoneLeadingSurrogateInHexEscape
	InvalidUnicodeCodePoint         = jsonerr.InvalidUnicodeCodePoint
	UnknownField                    = jsonerr.UnknownField
	MissingField                    = jsonerr.MissingField
	DuplicateField                  = jsonerr.DuplicateField
	Custom                          = jsonerr.Custom
	IoError                         = jsonerr.IoError
	NonFiniteFloat                  = jsonerr.NonFiniteFloat
)
