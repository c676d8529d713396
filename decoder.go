package ngjson

import (
	"io"

	"github.com/ngjson/ngjson/internal/decode"
	"github.com/ngjson/ngjson/internal/read"
	"github.com/ngjson/ngjson/stream"
)

// Decoder reads a sequence of JSON values from an io.Reader, one call to
// Decode (or one stream cursor walk) at a time. It does not insert or
// expect any separator between values beyond whitespace.
type Decoder struct {
	d    *decode.Deserializer
	opts DecodeOptions
}

// NewDecoder wraps r for decoding.
func NewDecoder(r io.Reader, opts DecodeOptions) *Decoder {
	return &Decoder{d: decode.New(read.NewIo(r, 0), opts.toInternal()), opts: opts}
}

// Decode parses the next JSON value into a Value tree.
func (dec *Decoder) Decode() (*Value, error) {
	v, err := decode.DeserializeAny[*Value](dec.d, valueVisitor{})
	if err != nil {
		return nil, wrapParseErr(err)
	}
	return v, nil
}

// DecodeRaw captures the exact bytes of the next JSON value without
// building a tree.
func (dec *Decoder) DecodeRaw() ([]byte, error) {
	b, err := decode.DeserializeRaw(dec.d)
	if err != nil {
		return nil, wrapParseErr(err)
	}
	return b, nil
}

// DecodeSpanned parses the next value into a Value tree and reports its
// start/end byte offsets alongside it.
func (dec *Decoder) DecodeSpanned() (Span, *Value, error) {
	start, end, v, err := decode.DeserializeSpanned[*Value](dec.d, valueVisitor{})
	if err != nil {
		return Span{}, nil, wrapParseErr(err)
	}
	return Span{Start: start, End: end}, v, nil
}

// End checks that nothing but whitespace remains in the source,
// rejecting any further non-whitespace byte as TrailingCharacters.
func (dec *Decoder) End() error {
	return wrapParseErr(dec.d.CheckTrailing())
}

// Stream returns the explicit, typestate stream cursor over this
// Decoder's source, for callers that want to walk containers
// element-by-element instead of materializing a Value tree.
func (dec *Decoder) Stream() *stream.Root {
	return stream.NewRoot(dec.d)
}

// Decode binds the next JSON value from dec directly into v's result
// type, bypassing the Value tree. It is a free function rather than a
// method because Go does not allow a generic method on a non-generic
// type.
func Decode[T any](dec *Decoder, v Visitor[T]) (T, error) {
	result, err := decode.DeserializeAny(dec.d, v)
	if err != nil {
		return result, wrapParseErr(err)
	}
	return result, nil
}
