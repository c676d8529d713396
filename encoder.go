package ngjson

import (
	"io"

	"github.com/ngjson/ngjson/internal/encode"
)

// Encoder writes a sequence of JSON values to an io.Writer.
type Encoder struct {
	s    *encode.Serializer
	opts EncodeOptions
}

// NewEncoder wraps w for encoding.
func NewEncoder(w io.Writer, opts EncodeOptions) *Encoder {
	return &Encoder{s: encode.New(w, opts.newFormatter()), opts: opts}
}

// Encode writes v.
func (enc *Encoder) Encode(v *Value) error {
	return writeValue(enc.s, v)
}

// WriteBytes writes b as a byte sequence using this Encoder's configured
// BinaryMode, for a binding layer driving the Serializer directly
// instead of going through a Value tree.
func (enc *Encoder) WriteBytes(b []byte) error {
	return enc.s.WriteBytes(b, encode.BinaryMode(enc.opts.BinaryMode))
}

// Serializer exposes the underlying visitor sink for callers binding
// their own Go type directly, bypassing the Value tree — the encode-side
// counterpart of Decode[T].
func (enc *Encoder) Serializer() *encode.Serializer {
	return enc.s
}
