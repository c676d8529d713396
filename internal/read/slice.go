package read

import "github.com/ngjson/ngjson/internal/jsonerr"

// SliceReader is a zero-copy Read over a borrowed []byte. Positions are not
// tracked incrementally; they are computed lazily by scanning the consumed
// prefix, since the common case (a successful parse) never needs them.
type SliceReader struct {
	buf   []byte
	index int

	hasPeek  bool
	peekByte byte

	rawStart  int
	rawActive bool
}

// NewSlice wraps buf for zero-copy reading. buf is not retained beyond the
// lifetime of borrowed string references handed back by ParseStr.
func NewSlice(buf []byte) *SliceReader {
	return &SliceReader{buf: buf}
}

func (r *SliceReader) Next() (byte, bool, error) {
	if r.hasPeek {
		r.hasPeek = false
		r.index++
		return r.peekByte, true, nil
	}
	if r.index >= len(r.buf) {
		return 0, false, nil
	}
	b := r.buf[r.index]
	r.index++
	return b, true, nil
}

func (r *SliceReader) Peek() (byte, bool, error) {
	if r.hasPeek {
		return r.peekByte, true, nil
	}
	if r.index >= len(r.buf) {
		return 0, false, nil
	}
	r.peekByte = r.buf[r.index]
	r.hasPeek = true
	return r.peekByte, true, nil
}

func (r *SliceReader) Discard() {
	if !r.hasPeek {
		panic("read: Discard called without a prior Peek")
	}
	r.hasPeek = false
	r.index++
}

// position computes the line/column of consumedIndex by scanning the bytes
// before it. Only called on error paths.
func (r *SliceReader) position(consumedIndex int) jsonerr.Position {
	line := uint64(1)
	col := uint64(0)
	for i := 0; i < consumedIndex && i < len(r.buf); i++ {
		if r.buf[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return jsonerr.Position{Line: line, Column: col}
}

func (r *SliceReader) Position() jsonerr.Position {
	return r.position(r.index)
}

func (r *SliceReader) PeekPosition() jsonerr.Position {
	return r.position(r.index)
}

func (r *SliceReader) ByteOffset() uint64 {
	return uint64(r.index)
}

func (r *SliceReader) BeginRawBuffering() {
	r.rawStart = r.index
	r.rawActive = true
}

func (r *SliceReader) EndRawBuffering() []byte {
	if !r.rawActive {
		return nil
	}
	r.rawActive = false
	return r.buf[r.rawStart:r.index]
}

func (r *SliceReader) ParseStr(scratch *[]byte, validate bool) (Reference, error) {
	return parseStrFromSlice(r, r.buf, &r.index, scratch, validate)
}

func (r *SliceReader) IgnoreStr() error {
	return ignoreStrFromSlice(r, r.buf, &r.index)
}

// StrReader is identical to SliceReader except the backing buffer is
// statically known to be valid UTF-8 (constructed from a Go string), so
// ParseStr never re-validates unescaped runs.
type StrReader struct {
	SliceReader
}

// NewStr wraps s for zero-copy reading.
func NewStr(s string) *StrReader {
	return &StrReader{SliceReader: SliceReader{buf: []byte(s)}}
}

func (r *StrReader) ParseStr(scratch *[]byte, _ bool) (Reference, error) {
	return parseStrFromSlice(&r.SliceReader, r.buf, &r.index, scratch, false)
}
