package scan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngjson/ngjson/internal/jsonerr"
	"github.com/ngjson/ngjson/internal/read"
	"github.com/ngjson/ngjson/internal/scan"
)

func TestSkipWhitespaceConsumesAllWhitespaceBytes(t *testing.T) {
	r := read.NewSlice([]byte(" \t\n\r x"))
	require.NoError(t, scan.SkipWhitespace(r))
	b, ok, err := r.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, byte('x'), b)
}

func TestSkipWhitespaceStopsAtEOF(t *testing.T) {
	r := read.NewSlice([]byte("   "))
	require.NoError(t, scan.SkipWhitespace(r))
	_, ok, err := r.Peek()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMatchLiteralAcceptsExactMatch(t *testing.T) {
	r := read.NewSlice([]byte("rue"))
	require.NoError(t, scan.MatchLiteral(r, jsonerr.Position{}, "rue"))
}

func TestMatchLiteralRejectsMismatch(t *testing.T) {
	r := read.NewSlice([]byte("ulz"))
	err := scan.MatchLiteral(r, jsonerr.Position{Line: 1, Column: 1}, "ull")
	require.Error(t, err)
	var se *jsonerr.SyntaxError
	require.ErrorAs(t, err, &se)
	require.Equal(t, jsonerr.ExpectedSomeIdent, se.Code)
}

func TestMatchLiteralRejectsPrematureEOF(t *testing.T) {
	r := read.NewSlice([]byte("al"))
	err := scan.MatchLiteral(r, jsonerr.Position{}, "alse")
	require.Error(t, err)
}

func parseNumber(t *testing.T, s string) scan.Number {
	t.Helper()
	r := read.NewSlice([]byte(s[1:]))
	n, err := scan.ParseNumber(r, s[0], jsonerr.Position{})
	require.NoError(t, err)
	return n
}

func TestParseNumberPositiveInteger(t *testing.T) {
	n := parseNumber(t, "42")
	require.Equal(t, scan.PositiveInteger, n.Kind)
	require.Equal(t, uint64(42), n.U64)
	require.Equal(t, float64(42), n.F64)
}

func TestParseNumberNegativeInteger(t *testing.T) {
	n := parseNumber(t, "-17")
	require.Equal(t, scan.NegativeInteger, n.Kind)
	require.Equal(t, int64(-17), n.I64)
}

func TestParseNumberZero(t *testing.T) {
	n := parseNumber(t, "0")
	require.Equal(t, scan.PositiveInteger, n.Kind)
	require.Equal(t, uint64(0), n.U64)
}

func TestParseNumberLeadingZeroFollowedByDigitIsInvalid(t *testing.T) {
	r := read.NewSlice([]byte("1"))
	_, err := scan.ParseNumber(r, '0', jsonerr.Position{})
	require.Error(t, err)
}

func TestParseNumberFraction(t *testing.T) {
	n := parseNumber(t, "3.5")
	require.Equal(t, scan.Float, n.Kind)
	require.Equal(t, 3.5, n.F64)
}

func TestParseNumberFractionMissingDigitIsInvalid(t *testing.T) {
	r := read.NewSlice([]byte("."))
	_, err := scan.ParseNumber(r, '1', jsonerr.Position{})
	require.Error(t, err)
}

func TestParseNumberExponent(t *testing.T) {
	n := parseNumber(t, "1e2")
	require.Equal(t, scan.Float, n.Kind)
	require.Equal(t, 100.0, n.F64)
}

func TestParseNumberNegativeExponent(t *testing.T) {
	n := parseNumber(t, "1e-2")
	require.Equal(t, scan.Float, n.Kind)
	require.Equal(t, 0.01, n.F64)
}

func TestParseNumberOverflowsToFloat(t *testing.T) {
	n := parseNumber(t, "99999999999999999999999999")
	require.Equal(t, scan.Float, n.Kind)
	require.InDelta(t, 1e26, n.F64, 1e20)
}

func TestParseNumberInvalidLeadChar(t *testing.T) {
	r := read.NewSlice([]byte("a"))
	_, err := scan.ParseNumber(r, 'a', jsonerr.Position{})
	require.Error(t, err)
}
