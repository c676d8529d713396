package ngjson

import (
	"bytes"

	"github.com/ngjson/ngjson/internal/decode"
	"github.com/ngjson/ngjson/internal/read"
)

// Unmarshal parses data into a Value tree. The input is decoded in place
// (MutSliceReader): unescaped string runs borrow directly from data, so
// callers that need to retain data separately from the returned tree
// should pass a copy.
func Unmarshal(data []byte, opts DecodeOptions) (*Value, error) {
	d := decode.New(read.NewMutSlice(data), opts.toInternal())
	v, err := decode.DeserializeAny[*Value](d, valueVisitor{})
	if err != nil {
		return nil, wrapParseErr(err)
	}
	if err := d.CheckTrailing(); err != nil {
		return nil, wrapParseErr(err)
	}
	return v, nil
}

// UnmarshalString parses s into a Value tree. s is never mutated; every
// unescaped string run borrows directly from s.
func UnmarshalString(s string, opts DecodeOptions) (*Value, error) {
	d := decode.New(read.NewStr(s), opts.toInternal())
	v, err := decode.DeserializeAny[*Value](d, valueVisitor{})
	if err != nil {
		return nil, wrapParseErr(err)
	}
	if err := d.CheckTrailing(); err != nil {
		return nil, wrapParseErr(err)
	}
	return v, nil
}

// Marshal renders v as JSON text.
func Marshal(v *Value, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf, opts).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
