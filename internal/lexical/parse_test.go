package lexical_test

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngjson/ngjson/internal/lexical"
)

// call splits a decimal literal into the (neg, integer, fraction, exp)
// shape the scanner hands to ParseFloat and parses it; callers compare the
// result against strconv.ParseFloat as an independent oracle.
func call(t *testing.T, neg bool, integer, fraction string, exp int64) float64 {
	t.Helper()
	return lexical.ParseFloat(neg, []byte(integer), []byte(fraction), exp)
}

func TestParseFloatMatchesStrconvOracle(t *testing.T) {
	cases := []struct {
		neg            bool
		integer        string
		fraction       string
		exp            int64
		literal        string // the equivalent literal, for the oracle
	}{
		{false, "0", "", 0, "0"},
		{false, "1", "", 0, "1"},
		{true, "1", "", 0, "-1"},
		{false, "3", "14159", 0, "3.14159"},
		{false, "1", "", 10, "1e10"},
		{false, "1", "", -10, "1e-10"},
		{true, "2", "5", 3, "-2.5e3"},
		{false, "123456789012345", "", 0, "123456789012345"},
		{false, "9", "999999999999999", 0, "9.999999999999999"},
		{false, "1", "", 300, "1e300"},
		{false, "1", "", -300, "1e-300"},
		{false, "17976931348623157", "", 292, "17976931348623157e292"},
		{false, "5", "", -324, "5e-324"},
		{false, "0", "1", 0, "0.1"},
		{false, "100000000000000000000", "", 0, "100000000000000000000"},
	}
	for _, c := range cases {
		t.Run(c.literal, func(t *testing.T) {
			want, err := strconv.ParseFloat(c.literal, 64)
			require.NoError(t, err)
			got := call(t, c.neg, c.integer, c.fraction, c.exp)
			require.Equal(t, want, got, "parsing %s", c.literal)
		})
	}
}

func TestParseFloatOverflowSaturatesToInf(t *testing.T) {
	got := call(t, false, "1", "", 400)
	require.True(t, math.IsInf(got, 1))
}

func TestParseFloatUnderflowFlushesToZero(t *testing.T) {
	got := call(t, true, "1", "", 400)
	require.True(t, math.IsInf(got, -1))

	gotZero := call(t, false, "1", "", -400)
	require.Equal(t, float64(0), gotZero)
}

func TestParseFloatHugeExponentMagnitudeClamps(t *testing.T) {
	// Exponent magnitudes beyond the scanner's saturation cap must still
	// resolve to +/-Inf or 0 rather than panicking or looping.
	got := call(t, false, "1", "", 1<<60)
	require.True(t, math.IsInf(got, 1))
}

func TestParseFloatNegativeExponentModeratePathSweep(t *testing.T) {
	// mantExp below -22 misses the fast path and must resolve through the
	// moderate path's negative cached power rather than falling through to
	// the exact bigint comparison for every one of these.
	cases := []string{
		"1.5e-30", "1.5e-23", "7.3e-50", "1e-100", "9.999999999999999e-200",
		"1.23456789012345e-280", "2.2250738585072014e-308", "1e-45",
	}
	for _, literal := range cases {
		t.Run(literal, func(t *testing.T) {
			want, err := strconv.ParseFloat(literal, 64)
			require.NoError(t, err)

			neg, integer, fraction, exp := splitLiteral(literal)
			got := call(t, neg, integer, fraction, exp)
			require.Equal(t, want, got, "parsing %s", literal)
		})
	}
}

// splitLiteral decomposes a simple "[-]D.DDDe-E" literal into the pieces
// ParseFloat takes, for tests that want to generate literals programmatically
// rather than spell out each field by hand.
func splitLiteral(literal string) (neg bool, integer, fraction string, exp int64) {
	s := literal
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	mantissa := s
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.ParseInt(s[i+1:], 10, 64)
		if err != nil {
			panic(err)
		}
		exp = e
	}
	if i := strings.IndexByte(mantissa, '.'); i >= 0 {
		integer = mantissa[:i]
		fraction = mantissa[i+1:]
	} else {
		integer = mantissa
	}
	return neg, integer, fraction, exp
}

func TestParseFloatManyDigitsUsesBigintFallback(t *testing.T) {
	// A mantissa wide enough to defeat the fast and moderate paths
	// exercises the exact big-integer fallback (largeAtof, as the scaled
	// exponent is non-negative).
	integer := ""
	for i := 0; i < 30; i++ {
		integer += strconv.Itoa((i % 9) + 1)
	}
	literal := fmt.Sprintf("%se10", integer)
	want, err := strconv.ParseFloat(literal, 64)
	require.NoError(t, err)
	got := call(t, false, integer, "", 10)
	require.Equal(t, want, got)
}
