package read

import (
	"io"

	"github.com/ngjson/ngjson/internal/jsonerr"
)

const defaultBufferSize = 8 * 1024 // 8 KiB default ring buffer

// IoReader wraps an io.Reader with an owned, fixed-size ring buffer. Unlike
// the slice-backed variants, ParseStr always copies into scratch because
// the bytes of a string may span more than one refill.
type IoReader struct {
	src io.Reader
	buf []byte

	// valid is the half-open range [readPos, writeEnd) of buf holding
	// bytes not yet consumed.
	readPos  int
	writeEnd int
	eof      bool

	line uint64
	col  uint64

	hasPeek  bool
	peekByte byte

	byteOffset uint64

	rawActive bool
	rawBuf    []byte
}

// NewIo wraps r with a buffer of size bufSize (defaultBufferSize if <= 0).
func NewIo(r io.Reader, bufSize int) *IoReader {
	if bufSize <= 0 {
		bufSize = defaultBufferSize
	}
	return &IoReader{
		src:  r,
		buf:  make([]byte, bufSize),
		line: 1,
	}
}

// fill refills the ring buffer when it is exhausted. It does no
// raw-buffering work itself: an active raw-capture region is unaffected
// because captureRaw appends each byte to rawBuf as it is consumed.
func (r *IoReader) fill() error {
	if r.eof {
		return nil
	}
	n, err := r.src.Read(r.buf)
	r.readPos = 0
	r.writeEnd = n
	if err != nil {
		if err == io.EOF {
			r.eof = true
			if n == 0 {
				return nil
			}
		} else {
			return err
		}
	}
	return nil
}

func (r *IoReader) nextByte() (byte, bool, error) {
	if r.hasPeek {
		r.hasPeek = false
		r.advancePos(r.peekByte)
		r.byteOffset++
		r.captureRaw(r.peekByte)
		return r.peekByte, true, nil
	}
	for r.readPos >= r.writeEnd {
		if r.eof {
			return 0, false, nil
		}
		if err := r.fill(); err != nil {
			return 0, false, err
		}
		if r.readPos >= r.writeEnd && r.eof {
			return 0, false, nil
		}
	}
	b := r.buf[r.readPos]
	r.readPos++
	r.advancePos(b)
	r.byteOffset++
	r.captureRaw(b)
	return b, true, nil
}

// captureRaw appends a just-consumed byte to the in-flight raw-capture
// buffer, if one is active. Capturing per byte (rather than per buffer
// window) is what makes raw buffering transparent across refills: no
// special-casing is needed when fill() replaces the ring buffer mid-value.
func (r *IoReader) captureRaw(b byte) {
	if r.rawActive {
		r.rawBuf = append(r.rawBuf, b)
	}
}

func (r *IoReader) advancePos(b byte) {
	if b == '\n' {
		r.line++
		r.col = 0
	} else {
		r.col++
	}
}

func (r *IoReader) Next() (byte, bool, error) {
	return r.nextByte()
}

func (r *IoReader) Peek() (byte, bool, error) {
	if r.hasPeek {
		return r.peekByte, true, nil
	}
	for r.readPos >= r.writeEnd {
		if r.eof {
			return 0, false, nil
		}
		if err := r.fill(); err != nil {
			return 0, false, err
		}
		if r.readPos >= r.writeEnd && r.eof {
			return 0, false, nil
		}
	}
	r.peekByte = r.buf[r.readPos]
	r.readPos++
	r.hasPeek = true
	return r.peekByte, true, nil
}

func (r *IoReader) Discard() {
	if !r.hasPeek {
		panic("read: Discard called without a prior Peek")
	}
	r.hasPeek = false
	r.advancePos(r.peekByte)
	r.byteOffset++
	r.captureRaw(r.peekByte)
}

func (r *IoReader) Position() jsonerr.Position {
	return jsonerr.Position{Line: r.line, Column: r.col}
}

func (r *IoReader) PeekPosition() jsonerr.Position {
	return r.Position()
}

func (r *IoReader) ByteOffset() uint64 {
	return r.byteOffset
}

func (r *IoReader) BeginRawBuffering() {
	r.rawActive = true
	r.rawBuf = r.rawBuf[:0]
}

func (r *IoReader) EndRawBuffering() []byte {
	if !r.rawActive {
		return nil
	}
	r.rawActive = false
	return r.rawBuf
}

func (r *IoReader) ParseStr(scratch *[]byte, validate bool) (Reference, error) {
	*scratch = (*scratch)[:0]
	for {
		b, ok, err := r.nextByte()
		if err != nil {
			return Reference{}, jsonerr.Wrap(r.Position(), err)
		}
		if !ok {
			return Reference{}, jsonerr.New(jsonerr.EOFWhileParsingString, r.Position())
		}
		switch {
		case b == '"':
			return Reference{Borrowed: false, Str: string(*scratch)}, nil
		case b == '\\':
			if err := r.decodeEscapeStreaming(scratch); err != nil {
				return Reference{}, err
			}
		case b < 0x20:
			return Reference{}, jsonerr.New(jsonerr.EOFWhileParsingString, r.Position())
		default:
			if validate && b >= 0x80 {
				if err := r.decodeMultiByteStreaming(b, scratch); err != nil {
					return Reference{}, err
				}
			} else {
				*scratch = append(*scratch, b)
			}
		}
	}
}

func (r *IoReader) readByteOrErr(what jsonerr.Code) (byte, error) {
	b, ok, err := r.nextByte()
	if err != nil {
		return 0, jsonerr.Wrap(r.Position(), err)
	}
	if !ok {
		return 0, jsonerr.New(what, r.Position())
	}
	return b, nil
}

func (r *IoReader) decodeEscapeStreaming(scratch *[]byte) error {
	pos := r.Position()
	c, err := r.readByteOrErr(jsonerr.EOFWhileParsingString)
	if err != nil {
		return err
	}
	switch c {
	case '"', '\\', '/':
		*scratch = append(*scratch, c)
		return nil
	case 'b':
		*scratch = append(*scratch, '\b')
		return nil
	case 'f':
		*scratch = append(*scratch, '\f')
		return nil
	case 'n':
		*scratch = append(*scratch, '\n')
		return nil
	case 'r':
		*scratch = append(*scratch, '\r')
		return nil
	case 't':
		*scratch = append(*scratch, '\t')
		return nil
	case 'u':
		cp, err := r.readHex4Streaming(pos)
		if err != nil {
			return err
		}
		if cp >= 0xD800 && cp <= 0xDBFF {
			b1, err := r.readByteOrErr(jsonerr.LoneLeadingSurrogateInHexEscape)
			if err != nil {
				return err
			}
			b2, err := r.readByteOrErr(jsonerr.LoneLeadingSurrogateInHexEscape)
			if err != nil {
				return err
			}
			if b1 != '\\' || b2 != 'u' {
				return jsonerr.New(jsonerr.LoneLeadingSurrogateInHexEscape, pos)
			}
			low, err := r.readHex4Streaming(pos)
			if err != nil {
				return err
			}
			if low < 0xDC00 || low > 0xDFFF {
				return jsonerr.New(jsonerr.LoneLeadingSurrogateInHexEscape, pos)
			}
			rn := 0x10000 + (rune(cp)-0xD800)<<10 + (rune(low) - 0xDC00)
			var tmp [4]byte
			n := encodeRune(tmp[:], rn)
			*scratch = append(*scratch, tmp[:n]...)
			return nil
		}
		if cp >= 0xDC00 && cp <= 0xDFFF {
			return jsonerr.New(jsonerr.LoneLeadingSurrogateInHexEscape, pos)
		}
		var tmp [4]byte
		n := encodeRune(tmp[:], rune(cp))
		*scratch = append(*scratch, tmp[:n]...)
		return nil
	default:
		return jsonerr.New(jsonerr.InvalidEscape, pos)
	}
}

// readHex4Streaming reads four hex digits one byte at a time. This is the
// seam where a \u escape split across a refill boundary is naturally
// handled: each digit comes through nextByte, which transparently
// refills mid-sequence.
func (r *IoReader) readHex4Streaming(escPos jsonerr.Position) (uint16, error) {
	var v uint16
	for k := 0; k < 4; k++ {
		c, err := r.readByteOrErr(jsonerr.UnexpectedEndOfHexEscape)
		if err != nil {
			return 0, err
		}
		var d uint16
		switch {
		case c >= '0' && c <= '9':
			d = uint16(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint16(c-'A') + 10
		default:
			return 0, jsonerr.New(jsonerr.UnexpectedEndOfHexEscape, escPos)
		}
		v = v<<4 | d
	}
	return v, nil
}

func (r *IoReader) decodeMultiByteStreaming(first byte, scratch *[]byte) error {
	var need int
	switch {
	case first&0xE0 == 0xC0:
		need = 1
	case first&0xF0 == 0xE0:
		need = 2
	case first&0xF8 == 0xF0:
		need = 3
	default:
		return jsonerr.New(jsonerr.InvalidUnicodeCodePoint, r.Position())
	}
	buf := [4]byte{first}
	for k := 0; k < need; k++ {
		b, err := r.readByteOrErr(jsonerr.InvalidUnicodeCodePoint)
		if err != nil {
			return err
		}
		if b&0xC0 != 0x80 {
			return jsonerr.New(jsonerr.InvalidUnicodeCodePoint, r.Position())
		}
		buf[k+1] = b
	}
	rn, size := decodeRuneSafe(buf[:need+1])
	if rn == 0xFFFD && size == 1 {
		return jsonerr.New(jsonerr.InvalidUnicodeCodePoint, r.Position())
	}
	*scratch = append(*scratch, buf[:need+1]...)
	return nil
}

func (r *IoReader) IgnoreStr() error {
	var scratch []byte
	_, err := r.ParseStr(&scratch, false)
	return err
}

// NewBufferedIo returns an IoReader that uses buf, a caller-supplied
// buffer, as its ring buffer, kept as a distinct constructor even
// though the implementation is shared: the distinction that matters to
// callers is whether they want this package allocating the ring buffer
// (NewIo) or reusing one the caller already manages (NewBufferedIo).
func NewBufferedIo(r io.Reader, buf []byte) *IoReader {
	if len(buf) == 0 {
		buf = make([]byte, defaultBufferSize)
	}
	return &IoReader{src: r, buf: buf, line: 1}
}
