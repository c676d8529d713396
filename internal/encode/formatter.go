// Package encode implements the serializer: a visitor sink that
// delegates byte emission to a Formatter, with Compact and Pretty
// built-ins.
package encode

import "io"

// Formatter is the capability set the serializer calls into: one hook
// per punctuation boundary and one per value kind. Implementations are
// stateful (PrettyFormatter tracks depth) and are not safe for
// concurrent use by more than one in-flight Serializer.
type Formatter interface {
	BeginArray(w io.Writer) error
	EndArray(w io.Writer) error
	BeginArrayValue(w io.Writer, isFirst bool) error
	EndArrayValue(w io.Writer) error

	BeginObject(w io.Writer) error
	EndObject(w io.Writer) error
	BeginObjectKey(w io.Writer, isFirst bool) error
	EndObjectKey(w io.Writer) error
	BeginObjectValue(w io.Writer) error
	EndObjectValue(w io.Writer) error

	WriteNull(w io.Writer) error
	WriteBool(w io.Writer, v bool) error
	WriteI64(w io.Writer, v int64) error
	WriteU64(w io.Writer, v uint64) error
	WriteF64(w io.Writer, v float64) error
	WriteStringFragment(w io.Writer, s string) error
	WriteRawFragment(w io.Writer, b []byte) error
}

func writeByte(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeStr(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
