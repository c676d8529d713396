package read

import "github.com/ngjson/ngjson/internal/jsonerr"

// strErr carries a byte-offset-relative error out of the core string
// scanner; callers translate the offset into a Position using whatever
// positioning strategy their Read variant uses.
type strErr struct {
	code   jsonerr.Code
	offset int
}

func (e *strErr) Error() string { return e.code.String() }

// scanStringCore scans a string body starting at buf[start] (the byte just
// after the opening quote) and returns the index just past the closing
// quote. If no escape sequence is present, ref.Borrowed is true and ref.Str
// aliases buf directly; otherwise the decoded bytes are appended to
// *scratch (which is truncated to zero length first) and ref borrows from
// scratch instead.
func scanStringCore(buf []byte, start int, scratch *[]byte, validate bool) (end int, ref Reference, serr *strErr) {
	i := start
	// Fast path: scan for the first '"' or '\\' without allocating.
	for i < len(buf) {
		c := buf[i]
		if c == '"' {
			return i + 1, Reference{Borrowed: true, Str: string(buf[start:i])}, nil
		}
		if c == '\\' {
			break
		}
		if c < 0x20 {
			return i, Reference{}, &strErr{code: jsonerr.EOFWhileParsingString, offset: i}
		}
		i++
	}
	if i >= len(buf) {
		*scratch = append((*scratch)[:0], buf[start:i]...)
		return i, Reference{}, &strErr{code: jsonerr.EOFWhileParsingString, offset: start - 1}
	}

	// Slow path: an escape was found. Copy everything seen so far, then
	// continue decoding into scratch.
	*scratch = append((*scratch)[:0], buf[start:i]...)
	for {
		if i >= len(buf) {
			return i, Reference{}, &strErr{code: jsonerr.EOFWhileParsingString, offset: start - 1}
		}
		c := buf[i]
		switch {
		case c == '"':
			return i + 1, Reference{Borrowed: false, Str: string(*scratch)}, nil
		case c == '\\':
			i++
			if i >= len(buf) {
				return i, Reference{}, &strErr{code: jsonerr.EOFWhileParsingString, offset: start - 1}
			}
			n, decErr := decodeEscape(buf, &i, scratch)
			if decErr != nil {
				return i, Reference{}, decErr
			}
			_ = n
		case c < 0x20:
			return i, Reference{}, &strErr{code: jsonerr.EOFWhileParsingString, offset: i}
		default:
			if validate {
				r, size := decodeRuneSafe(buf[i:])
				if r == 0xFFFD && size == 1 {
					return i, Reference{}, &strErr{code: jsonerr.InvalidUnicodeCodePoint, offset: i}
				}
				*scratch = append(*scratch, buf[i:i+size]...)
				i += size
			} else {
				*scratch = append(*scratch, c)
				i++
			}
		}
	}
}

// decodeEscape decodes the escape sequence starting at buf[*i] (the byte
// right after the backslash) and appends the decoded bytes to *scratch. On
// return *i points just past the consumed escape.
func decodeEscape(buf []byte, i *int, scratch *[]byte) (int, *strErr) {
	c := buf[*i]
	switch c {
	case '"', '\\', '/':
		*scratch = append(*scratch, c)
		*i++
		return 1, nil
	case 'b':
		*scratch = append(*scratch, '\b')
		*i++
		return 1, nil
	case 'f':
		*scratch = append(*scratch, '\f')
		*i++
		return 1, nil
	case 'n':
		*scratch = append(*scratch, '\n')
		*i++
		return 1, nil
	case 'r':
		*scratch = append(*scratch, '\r')
		*i++
		return 1, nil
	case 't':
		*scratch = append(*scratch, '\t')
		*i++
		return 1, nil
	case 'u':
		start := *i - 1
		*i++
		cp, err := readHex4(buf, i, start)
		if err != nil {
			return 0, err
		}
		if cp >= 0xD800 && cp <= 0xDBFF {
			// Leading surrogate: must be followed by \u + trailing surrogate.
			if *i+1 >= len(buf) || buf[*i] != '\\' || buf[*i+1] != 'u' {
				return 0, &strErr{code: jsonerr.LoneLeadingSurrogateInHexEscape, offset: start}
			}
			*i += 2
			lowStart := *i - 2
			low, err := readHex4(buf, i, lowStart)
			if err != nil {
				return 0, err
			}
			if low < 0xDC00 || low > 0xDFFF {
				return 0, &strErr{code: jsonerr.LoneLeadingSurrogateInHexEscape, offset: start}
			}
			r := 0x10000 + (rune(cp)-0xD800)<<10 + (rune(low) - 0xDC00)
			var tmp [4]byte
			n := encodeRune(tmp[:], r)
			*scratch = append(*scratch, tmp[:n]...)
			return n, nil
		}
		if cp >= 0xDC00 && cp <= 0xDFFF {
			return 0, &strErr{code: jsonerr.LoneLeadingSurrogateInHexEscape, offset: start}
		}
		var tmp [4]byte
		n := encodeRune(tmp[:], rune(cp))
		*scratch = append(*scratch, tmp[:n]...)
		return n, nil
	default:
		return 0, &strErr{code: jsonerr.InvalidEscape, offset: *i - 1}
	}
}

func readHex4(buf []byte, i *int, escStart int) (uint16, *strErr) {
	if *i+4 > len(buf) {
		return 0, &strErr{code: jsonerr.UnexpectedEndOfHexEscape, offset: escStart}
	}
	var v uint16
	for k := 0; k < 4; k++ {
		c := buf[*i+k]
		var d uint16
		switch {
		case c >= '0' && c <= '9':
			d = uint16(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint16(c-'A') + 10
		default:
			return 0, &strErr{code: jsonerr.UnexpectedEndOfHexEscape, offset: escStart}
		}
		v = v<<4 | d
	}
	*i += 4
	return v, nil
}

// decodeRuneSafe is a small UTF-8 decoder so this package does not need to
// import "unicode/utf8" twice over; kept local since it is only used for
// the validate-on-the-fly path.
func decodeRuneSafe(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0xFFFD, 0
	}
	c0 := b[0]
	switch {
	case c0 < 0x80:
		return rune(c0), 1
	case c0&0xE0 == 0xC0:
		if len(b) < 2 || b[1]&0xC0 != 0x80 {
			return 0xFFFD, 1
		}
		r := rune(c0&0x1F)<<6 | rune(b[1]&0x3F)
		if r < 0x80 {
			return 0xFFFD, 1
		}
		return r, 2
	case c0&0xF0 == 0xE0:
		if len(b) < 3 || b[1]&0xC0 != 0x80 || b[2]&0xC0 != 0x80 {
			return 0xFFFD, 1
		}
		r := rune(c0&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
		if r < 0x800 {
			return 0xFFFD, 1
		}
		return r, 3
	case c0&0xF8 == 0xF0:
		if len(b) < 4 || b[1]&0xC0 != 0x80 || b[2]&0xC0 != 0x80 || b[3]&0xC0 != 0x80 {
			return 0xFFFD, 1
		}
		r := rune(c0&0x07)<<18 | rune(b[1]&0x3F)<<12 | rune(b[2]&0x3F)<<6 | rune(b[3]&0x3F)
		if r < 0x10000 || r > 0x10FFFF {
			return 0xFFFD, 1
		}
		return r, 4
	default:
		return 0xFFFD, 1
	}
}

func encodeRune(buf []byte, r rune) int {
	switch {
	case r < 0x80:
		buf[0] = byte(r)
		return 1
	case r < 0x800:
		buf[0] = 0xC0 | byte(r>>6)
		buf[1] = 0x80 | byte(r&0x3F)
		return 2
	case r < 0x10000:
		buf[0] = 0xE0 | byte(r>>12)
		buf[1] = 0x80 | byte((r>>6)&0x3F)
		buf[2] = 0x80 | byte(r&0x3F)
		return 3
	default:
		buf[0] = 0xF0 | byte(r>>18)
		buf[1] = 0x80 | byte((r>>12)&0x3F)
		buf[2] = 0x80 | byte((r>>6)&0x3F)
		buf[3] = 0x80 | byte(r&0x3F)
		return 4
	}
}

// positioner is implemented by the slice-backed Read variants so the
// shared helpers below can translate a byte offset into a Position.
type positioner interface {
	position(offset int) jsonerr.Position
}

func parseStrFromSlice(p positioner, buf []byte, index *int, scratch *[]byte, validate bool) (Reference, error) {
	end, ref, serr := scanStringCore(buf, *index, scratch, validate)
	if serr != nil {
		*index = end
		return Reference{}, jsonerr.New(serr.code, p.position(serr.offset))
	}
	*index = end
	return ref, nil
}

func ignoreStrFromSlice(p positioner, buf []byte, index *int) error {
	var scratch []byte
	end, _, serr := scanStringCore(buf, *index, &scratch, false)
	if serr != nil {
		*index = end
		return jsonerr.New(serr.code, p.position(serr.offset))
	}
	*index = end
	return nil
}
