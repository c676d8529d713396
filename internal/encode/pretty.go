package encode

import "io"

// PrettyFormatter emits JSON with a newline before each entry and
// indentation scaled by depth. It is stateful (tracks
// current depth and whether the current container has emitted a value
// yet, to render `[]`/`{}` without a spurious blank line) and must not be
// shared across two in-flight Serializer instances.
type PrettyFormatter struct {
	Indent string

	depth    int
	hasValue []bool
}

// NewPretty constructs a PrettyFormatter using indent for each depth
// level ("  " if indent is empty).
func NewPretty(indent string) *PrettyFormatter {
	if indent == "" {
		indent = "  "
	}
	return &PrettyFormatter{Indent: indent}
}

func (f *PrettyFormatter) writeIndent(w io.Writer) error {
	for i := 0; i < f.depth; i++ {
		if err := writeStr(w, f.Indent); err != nil {
			return err
		}
	}
	return nil
}

func (f *PrettyFormatter) open(w io.Writer, b byte) error {
	f.depth++
	f.hasValue = append(f.hasValue, false)
	return writeByte(w, b)
}

func (f *PrettyFormatter) close(w io.Writer, b byte) error {
	f.depth--
	last := f.hasValue[len(f.hasValue)-1]
	f.hasValue = f.hasValue[:len(f.hasValue)-1]
	if last {
		if err := writeByte(w, '\n'); err != nil {
			return err
		}
		if err := f.writeIndent(w); err != nil {
			return err
		}
	}
	return writeByte(w, b)
}

func (f *PrettyFormatter) beginEntry(w io.Writer, isFirst bool) error {
	if !isFirst {
		if err := writeByte(w, ','); err != nil {
			return err
		}
	}
	if err := writeByte(w, '\n'); err != nil {
		return err
	}
	return f.writeIndent(w)
}

func (f *PrettyFormatter) markHasValue() {
	f.hasValue[len(f.hasValue)-1] = true
}

func (f *PrettyFormatter) BeginArray(w io.Writer) error { return f.open(w, '[') }
func (f *PrettyFormatter) EndArray(w io.Writer) error   { return f.close(w, ']') }

func (f *PrettyFormatter) BeginArrayValue(w io.Writer, isFirst bool) error {
	return f.beginEntry(w, isFirst)
}
func (f *PrettyFormatter) EndArrayValue(w io.Writer) error {
	f.markHasValue()
	return nil
}

func (f *PrettyFormatter) BeginObject(w io.Writer) error { return f.open(w, '{') }
func (f *PrettyFormatter) EndObject(w io.Writer) error   { return f.close(w, '}') }

func (f *PrettyFormatter) BeginObjectKey(w io.Writer, isFirst bool) error {
	return f.beginEntry(w, isFirst)
}
func (f *PrettyFormatter) EndObjectKey(w io.Writer) error { return nil }

func (f *PrettyFormatter) BeginObjectValue(w io.Writer) error { return writeStr(w, ": ") }
func (f *PrettyFormatter) EndObjectValue(w io.Writer) error {
	f.markHasValue()
	return nil
}

func (f *PrettyFormatter) WriteNull(w io.Writer) error { return writeStr(w, "null") }

func (f *PrettyFormatter) WriteBool(w io.Writer, v bool) error {
	if v {
		return writeStr(w, "true")
	}
	return writeStr(w, "false")
}

func (f *PrettyFormatter) WriteI64(w io.Writer, v int64) error {
	return CompactFormatter{}.WriteI64(w, v)
}
func (f *PrettyFormatter) WriteU64(w io.Writer, v uint64) error {
	return CompactFormatter{}.WriteU64(w, v)
}
func (f *PrettyFormatter) WriteF64(w io.Writer, v float64) error {
	return CompactFormatter{}.WriteF64(w, v)
}
func (f *PrettyFormatter) WriteStringFragment(w io.Writer, s string) error {
	return writeStr(w, s)
}
func (f *PrettyFormatter) WriteRawFragment(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}
