package encode

import (
	"io"
	"math"

	"github.com/ngjson/ngjson/internal/jsonerr"
)

// BinaryMode selects how Serializer.WriteBytes renders a byte sequence,
// mirroring internal/decode.BinaryMode for the encode side of the same
// choice: byte sequences follow binary_mode.
type BinaryMode int

const (
	BinaryModeArray BinaryMode = iota
	BinaryModeHex
)

// Serializer is the visitor sink: it owns the output writer and
// delegates every punctuation and value hook to a Formatter.
type Serializer struct {
	w io.Writer
	f Formatter
}

// New constructs a Serializer writing to w through f (CompactFormatter if
// f is nil).
func New(w io.Writer, f Formatter) *Serializer {
	if f == nil {
		f = CompactFormatter{}
	}
	return &Serializer{w: w, f: f}
}

func (s *Serializer) WriteNull() error        { return s.f.WriteNull(s.w) }
func (s *Serializer) WriteBool(v bool) error  { return s.f.WriteBool(s.w, v) }
func (s *Serializer) WriteI64(v int64) error  { return s.f.WriteI64(s.w, v) }
func (s *Serializer) WriteU64(v uint64) error { return s.f.WriteU64(s.w, v) }

// WriteF64 rejects NaN/±Inf; a caller that wants non-finite floats
// mapped to null instead should substitute WriteNull itself.
func (s *Serializer) WriteF64(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return jsonerr.New(jsonerr.NonFiniteFloat, jsonerr.Position{})
	}
	return s.f.WriteF64(s.w, v)
}

// shortControlEscape returns the two-character escape for a control byte
// that has one (\b \t \n \f \r), or "" if it must fall back to \u00XX.
func shortControlEscape(b byte) string {
	switch b {
	case 0x08:
		return `\b`
	case 0x09:
		return `\t`
	case 0x0A:
		return `\n`
	case 0x0C:
		return `\f`
	case 0x0D:
		return `\r`
	default:
		return ""
	}
}

func uEscapeControl(b byte) string {
	return string([]byte{'\\', 'u', '0', '0', hexDigits[(b>>4)&0xF], hexDigits[b&0xF]})
}

// WriteString writes a fully quoted, escaped JSON string, escaping `"`,
// `\`, and every byte < 0x20 per RFC 8259; `/` is left unescaped and
// non-ASCII bytes pass through as UTF-8 unless the Formatter is wrapped
// with NewASCIIOnly. Escape-free runs are handed to the Formatter's
// WriteStringFragment so a decorator (e.g. the ASCII-only formatter) can
// intercept them.
func (s *Serializer) WriteString(str string) error {
	if err := writeByte(s.w, '"'); err != nil {
		return err
	}
	start := 0
	for i := 0; i < len(str); i++ {
		b := str[i]
		if b >= 0x20 && b != '"' && b != '\\' {
			continue
		}
		if start < i {
			if err := s.f.WriteStringFragment(s.w, str[start:i]); err != nil {
				return err
			}
		}
		var esc string
		switch {
		case b == '"':
			esc = `\"`
		case b == '\\':
			esc = `\\`
		default:
			if e := shortControlEscape(b); e != "" {
				esc = e
			} else {
				esc = uEscapeControl(b)
			}
		}
		if err := writeStr(s.w, esc); err != nil {
			return err
		}
		start = i + 1
	}
	if start < len(str) {
		if err := s.f.WriteStringFragment(s.w, str[start:]); err != nil {
			return err
		}
	}
	return writeByte(s.w, '"')
}

// WriteBytes renders b per mode: BinaryModeArray as a JSON array of byte
// values, BinaryModeHex as a quoted string of lowercase hex pairs.
func (s *Serializer) WriteBytes(b []byte, mode BinaryMode) error {
	if mode == BinaryModeHex {
		if err := writeByte(s.w, '"'); err != nil {
			return err
		}
		for _, c := range b {
			if err := writeStr(s.w, string([]byte{hexDigits[c>>4], hexDigits[c&0xF]})); err != nil {
				return err
			}
		}
		return writeByte(s.w, '"')
	}
	if err := s.BeginArray(); err != nil {
		return err
	}
	for i, c := range b {
		if err := s.BeginArrayValue(i == 0); err != nil {
			return err
		}
		if err := s.WriteU64(uint64(c)); err != nil {
			return err
		}
		if err := s.EndArrayValue(); err != nil {
			return err
		}
	}
	return s.EndArray()
}

func (s *Serializer) WriteRawFragment(b []byte) error { return s.f.WriteRawFragment(s.w, b) }

func (s *Serializer) BeginArray() error                  { return s.f.BeginArray(s.w) }
func (s *Serializer) EndArray() error                    { return s.f.EndArray(s.w) }
func (s *Serializer) BeginArrayValue(isFirst bool) error { return s.f.BeginArrayValue(s.w, isFirst) }
func (s *Serializer) EndArrayValue() error               { return s.f.EndArrayValue(s.w) }
func (s *Serializer) BeginObject() error                 { return s.f.BeginObject(s.w) }
func (s *Serializer) EndObject() error                   { return s.f.EndObject(s.w) }
func (s *Serializer) BeginObjectKey(isFirst bool) error  { return s.f.BeginObjectKey(s.w, isFirst) }
func (s *Serializer) EndObjectKey() error                { return s.f.EndObjectKey(s.w) }
func (s *Serializer) BeginObjectValue() error            { return s.f.BeginObjectValue(s.w) }
func (s *Serializer) EndObjectValue() error              { return s.f.EndObjectValue(s.w) }
