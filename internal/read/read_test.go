package read_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngjson/ngjson/internal/read"
)

func drain(t *testing.T, r read.Read) []byte {
	t.Helper()
	var out []byte
	for {
		b, ok, err := r.Next()
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, b)
	}
}

func TestSliceReaderPeekNextDiscard(t *testing.T) {
	r := read.NewSlice([]byte("ab"))

	b, ok, err := r.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, byte('a'), b)

	// Repeated Peek without Discard/Next returns the same byte.
	b2, ok2, err2 := r.Peek()
	require.NoError(t, err2)
	require.True(t, ok2)
	require.Equal(t, b, b2)

	r.Discard()

	b3, ok3, err3 := r.Next()
	require.NoError(t, err3)
	require.True(t, ok3)
	require.Equal(t, byte('b'), b3)

	_, ok4, err4 := r.Next()
	require.NoError(t, err4)
	require.False(t, ok4)
}

func TestSliceReaderPeekThenNextConsumesPeekedByteOnly(t *testing.T) {
	r := read.NewSlice([]byte("null"))

	b, ok, err := r.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, byte('n'), b)

	// Next() after a bare Peek() (no Discard) must consume the peeked
	// byte and advance past it, the sequence scan.SkipWhitespace followed
	// by decode.DeserializeAny's Next() produces.
	b2, ok2, err2 := r.Next()
	require.NoError(t, err2)
	require.True(t, ok2)
	require.Equal(t, byte('n'), b2)

	require.Equal(t, []byte("ull"), drain(t, r))
}

func TestMutSliceReaderPeekThenNextConsumesPeekedByteOnly(t *testing.T) {
	r := read.NewMutSlice([]byte("null"))
	_, _, _ = r.Peek()
	b, ok, _ := r.Next()
	require.True(t, ok)
	require.Equal(t, byte('n'), b)
	require.Equal(t, []byte("ull"), drain(t, r))
}

func TestStrReaderPeekThenNextConsumesPeekedByteOnly(t *testing.T) {
	r := read.NewStr("null")
	_, _, _ = r.Peek()
	b, ok, _ := r.Next()
	require.True(t, ok)
	require.Equal(t, byte('n'), b)
	require.Equal(t, []byte("ull"), drain(t, r))
}

func TestSliceReaderByteOffsetAndPosition(t *testing.T) {
	r := read.NewSlice([]byte("a\nbc"))
	for i := 0; i < 3; i++ {
		_, _, _ = r.Next()
	}
	require.Equal(t, uint64(3), r.ByteOffset())
	pos := r.Position()
	require.Equal(t, uint64(2), pos.Line)
	require.Equal(t, uint64(1), pos.Column)
}

func TestSliceReaderRawBuffering(t *testing.T) {
	r := read.NewSlice([]byte("hello world"))
	for i := 0; i < 5; i++ {
		_, _, _ = r.Next()
	}
	r.BeginRawBuffering()
	for i := 0; i < 6; i++ {
		_, _, _ = r.Next()
	}
	require.Equal(t, " world", string(r.EndRawBuffering()))
	// Without an active mark, EndRawBuffering reports nothing.
	require.Nil(t, r.EndRawBuffering())
}

func TestSliceReaderDiscardWithoutPeekPanics(t *testing.T) {
	r := read.NewSlice([]byte("a"))
	require.Panics(t, func() { r.Discard() })
}

func TestSliceReaderParseStrBorrowsUnescaped(t *testing.T) {
	r := read.NewSlice([]byte(`abc"rest`))
	var scratch []byte
	ref, err := r.ParseStr(&scratch, true)
	require.NoError(t, err)
	require.True(t, ref.Borrowed)
	require.Equal(t, "abc", ref.Str)
	require.Equal(t, []byte("rest"), drain(t, r))
}

func TestSliceReaderParseStrDecodesEscapes(t *testing.T) {
	r := read.NewSlice([]byte(`a\nbA"`))
	var scratch []byte
	ref, err := r.ParseStr(&scratch, true)
	require.NoError(t, err)
	require.False(t, ref.Borrowed)
	require.Equal(t, "a\nbA", ref.Str)
}

func TestSliceReaderParseStrSurrogatePair(t *testing.T) {
	r := read.NewSlice([]byte("\\ud83d\\ude00\""))
	var scratch []byte
	ref, err := r.ParseStr(&scratch, true)
	require.NoError(t, err)
	require.Equal(t, "\U0001F600", ref.Str)
}

func TestSliceReaderParseStrUnterminatedReportsEOF(t *testing.T) {
	r := read.NewSlice([]byte(`abc`))
	var scratch []byte
	_, err := r.ParseStr(&scratch, true)
	require.Error(t, err)
}

func TestSliceReaderParseStrInvalidEscape(t *testing.T) {
	r := read.NewSlice([]byte(`a\q"`))
	var scratch []byte
	_, err := r.ParseStr(&scratch, true)
	require.Error(t, err)
}

func TestSliceReaderIgnoreStrConsumesBody(t *testing.T) {
	r := read.NewSlice([]byte(`"escaped"` + "rest"))
	// Skip the opening quote the caller would normally have consumed.
	b, ok, _ := r.Next()
	require.True(t, ok)
	require.Equal(t, byte('"'), b)
	err := r.IgnoreStr()
	require.NoError(t, err)
	require.Equal(t, []byte("rest"), drain(t, r))
}

func TestStrReaderNeverRevalidatesUTF8(t *testing.T) {
	r := read.NewStr(`café"`)
	var scratch []byte
	ref, err := r.ParseStr(&scratch, true)
	require.NoError(t, err)
	require.Equal(t, "café", ref.Str)
}

func TestMutSliceReaderParseStrOverwritesInPlace(t *testing.T) {
	buf := []byte(`a\nb"rest`)
	r := read.NewMutSlice(buf)
	var scratch []byte
	ref, err := r.ParseStr(&scratch, true)
	require.NoError(t, err)
	require.True(t, ref.Borrowed)
	require.Equal(t, "a\nb", ref.Str)
	require.Equal(t, []byte("rest"), drain(t, r))
}

func TestMutSliceReaderParseStrNoEscapeBorrowsDirectly(t *testing.T) {
	buf := []byte(`plain"rest`)
	r := read.NewMutSlice(buf)
	var scratch []byte
	ref, err := r.ParseStr(&scratch, true)
	require.NoError(t, err)
	require.Equal(t, "plain", ref.Str)
}

func TestIoReaderMatchesSliceReaderBehavior(t *testing.T) {
	src := "abc"
	r := read.NewIo(strings.NewReader(src), 0)
	require.Equal(t, []byte(src), drain(t, r))
}

func TestIoReaderParseStrDecodesEscapes(t *testing.T) {
	r := read.NewIo(strings.NewReader(`a\tb"rest`), 0)
	var scratch []byte
	ref, err := r.ParseStr(&scratch, true)
	require.NoError(t, err)
	require.Equal(t, "a\tb", ref.Str)
	require.Equal(t, []byte("rest"), drain(t, r))
}

func TestIoReaderByteOffsetAdvances(t *testing.T) {
	r := read.NewIo(strings.NewReader("abcd"), 0)
	_, _, _ = r.Next()
	_, _, _ = r.Next()
	require.Equal(t, uint64(2), r.ByteOffset())
}
