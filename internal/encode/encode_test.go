package encode_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ngjson/ngjson/internal/encode"
)

func TestCompactSerializerScalars(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, nil)
	require.NoError(t, s.WriteNull())
	require.NoError(t, s.WriteBool(true))
	require.NoError(t, s.WriteI64(-5))
	require.NoError(t, s.WriteU64(5))
	require.NoError(t, s.WriteF64(1.5))
	require.Equal(t, "nulltrue-551.5", buf.String())
}

func TestCompactSerializerFloatAlwaysKeepsDecimalMarker(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, encode.CompactFormatter{})
	require.NoError(t, s.WriteF64(5))
	require.Equal(t, "5.0", buf.String())
}

func TestCompactSerializerRejectsNonFiniteFloat(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, nil)
	err := s.WriteF64(math.Inf(1))
	require.Error(t, err)
}

func TestCompactSerializerArrayAndObject(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, nil)
	require.NoError(t, s.BeginArray())
	require.NoError(t, s.BeginArrayValue(true))
	require.NoError(t, s.WriteU64(1))
	require.NoError(t, s.EndArrayValue())
	require.NoError(t, s.BeginArrayValue(false))
	require.NoError(t, s.WriteU64(2))
	require.NoError(t, s.EndArrayValue())
	require.NoError(t, s.EndArray())
	require.Equal(t, "[1,2]", buf.String())

	buf.Reset()
	require.NoError(t, s.BeginObject())
	require.NoError(t, s.BeginObjectKey(true))
	require.NoError(t, s.WriteString("k"))
	require.NoError(t, s.EndObjectKey())
	require.NoError(t, s.BeginObjectValue())
	require.NoError(t, s.WriteU64(9))
	require.NoError(t, s.EndObjectValue())
	require.NoError(t, s.EndObject())
	require.Equal(t, `{"k":9}`, buf.String())
}

func TestSerializerWriteStringEscapesControlAndQuote(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, nil)
	require.NoError(t, s.WriteString("a\"b\\c\nd\x01"))
	require.Equal(t, "\"a\\\"b\\\\c\\nd\\u0001\"", buf.String())
}

func TestSerializerWriteStringLeavesSlashAndNonASCIIUnescaped(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, nil)
	require.NoError(t, s.WriteString("a/bé"))
	require.Equal(t, "\"a/bé\"", buf.String())
}

func TestASCIIOnlyFormatterEscapesNonASCII(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, encode.NewASCIIOnly(encode.CompactFormatter{}))
	require.NoError(t, s.WriteString("café"))
	require.Equal(t, "\"caf\\u00e9\"", buf.String())
}

func TestASCIIOnlyFormatterEscapesAstralAsSurrogatePair(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, encode.NewASCIIOnly(encode.CompactFormatter{}))
	require.NoError(t, s.WriteString("\U0001F600"))
	require.Equal(t, "\"\\ud83d\\ude00\"", buf.String())
}

func TestWriteBytesArrayMode(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, nil)
	require.NoError(t, s.WriteBytes([]byte{1, 2, 255}, encode.BinaryModeArray))
	require.Equal(t, "[1,2,255]", buf.String())
}

func TestWriteBytesHexMode(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, nil)
	require.NoError(t, s.WriteBytes([]byte{0x0A, 0xFF}, encode.BinaryModeHex))
	require.Equal(t, `"0aff"`, buf.String())
}

func TestPrettyFormatterIndentsNestedContainers(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, encode.NewPretty("  "))
	require.NoError(t, s.BeginObject())
	require.NoError(t, s.BeginObjectKey(true))
	require.NoError(t, s.WriteString("a"))
	require.NoError(t, s.EndObjectKey())
	require.NoError(t, s.BeginObjectValue())
	require.NoError(t, s.BeginArray())
	require.NoError(t, s.BeginArrayValue(true))
	require.NoError(t, s.WriteU64(1))
	require.NoError(t, s.EndArrayValue())
	require.NoError(t, s.EndArray())
	require.NoError(t, s.EndObjectValue())
	require.NoError(t, s.EndObject())

	want := "{\n  \"a\": [\n    1\n  ]\n}"
	require.Equal(t, want, buf.String())
}

func TestPrettyFormatterEmptyContainersHaveNoBlankLine(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, encode.NewPretty("  "))
	require.NoError(t, s.BeginArray())
	require.NoError(t, s.EndArray())
	require.Equal(t, "[]", buf.String())
}

func TestWriteRawFragmentPassesBytesThrough(t *testing.T) {
	var buf bytes.Buffer
	s := encode.New(&buf, nil)
	require.NoError(t, s.WriteRawFragment([]byte(`{"raw":true}`)))
	require.Equal(t, `{"raw":true}`, buf.String())
}
