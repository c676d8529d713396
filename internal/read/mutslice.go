package read

import "github.com/ngjson/ngjson/internal/jsonerr"

// MutSliceReader behaves like SliceReader but is permitted to overwrite the
// input slice with the decoded form of escaped strings, so even an escaped
// string can be returned zero-copy.
type MutSliceReader struct {
	SliceReader
}

// NewMutSlice wraps buf for in-place decoding. The caller must not reuse buf
// after this call except through the returned reader.
func NewMutSlice(buf []byte) *MutSliceReader {
	return &MutSliceReader{SliceReader: SliceReader{buf: buf}}
}

func (r *MutSliceReader) ParseStr(scratch *[]byte, validate bool) (Reference, error) {
	buf := r.buf
	start := r.index
	end, writeEnd, serr := scanStringInPlace(buf, start, validate)
	if serr != nil {
		r.index = end
		*scratch = append((*scratch)[:0], buf[start:writeEnd]...)
		return Reference{}, jsonerr.New(serr.code, r.position(serr.offset))
	}
	r.index = end
	return Reference{Borrowed: true, Str: string(buf[start:writeEnd])}, nil
}

// scanStringInPlace mirrors scanStringCore but writes decoded bytes back
// into buf starting at the opening-quote-relative offset, relying on every
// escape sequence decoding to no more bytes than it consumed so the write
// cursor never overtakes the read cursor.
func scanStringInPlace(buf []byte, start int, validate bool) (end int, writeEnd int, serr *strErr) {
	i := start
	for i < len(buf) {
		c := buf[i]
		if c == '"' {
			return i + 1, i, nil
		}
		if c == '\\' {
			break
		}
		if c < 0x20 {
			return i, i, &strErr{code: jsonerr.EOFWhileParsingString, offset: i}
		}
		i++
	}
	if i >= len(buf) {
		return i, i, &strErr{code: jsonerr.EOFWhileParsingString, offset: start - 1}
	}

	wp := i
	for {
		if i >= len(buf) {
			return i, wp, &strErr{code: jsonerr.EOFWhileParsingString, offset: start - 1}
		}
		c := buf[i]
		switch {
		case c == '"':
			return i + 1, wp, nil
		case c == '\\':
			i++
			if i >= len(buf) {
				return i, wp, &strErr{code: jsonerr.EOFWhileParsingString, offset: start - 1}
			}
			n, nerr := decodeEscapeInPlace(buf, &i, buf, &wp)
			if nerr != nil {
				return i, wp, nerr
			}
			_ = n
		case c < 0x20:
			return i, wp, &strErr{code: jsonerr.EOFWhileParsingString, offset: i}
		default:
			if validate {
				r, size := decodeRuneSafe(buf[i:])
				if r == 0xFFFD && size == 1 {
					return i, wp, &strErr{code: jsonerr.InvalidUnicodeCodePoint, offset: i}
				}
				copy(buf[wp:], buf[i:i+size])
				wp += size
				i += size
			} else {
				buf[wp] = c
				wp++
				i++
			}
		}
	}
}

// decodeEscapeInPlace decodes the escape at src[*i] (just past the
// backslash) and writes the decoded bytes into dst[*wp:], advancing *wp.
// dst and src alias the same backing array; writes never pass the read
// cursor since every escape form is at least as long as its decoding.
func decodeEscapeInPlace(src []byte, i *int, dst []byte, wp *int) (int, *strErr) {
	c := src[*i]
	put := func(b byte) { dst[*wp] = b; *wp++ }
	switch c {
	case '"', '\\', '/':
		put(c)
		*i++
		return 1, nil
	case 'b':
		put('\b')
		*i++
		return 1, nil
	case 'f':
		put('\f')
		*i++
		return 1, nil
	case 'n':
		put('\n')
		*i++
		return 1, nil
	case 'r':
		put('\r')
		*i++
		return 1, nil
	case 't':
		put('\t')
		*i++
		return 1, nil
	case 'u':
		start := *i - 1
		*i++
		cp, err := readHex4(src, i, start)
		if err != nil {
			return 0, err
		}
		if cp >= 0xD800 && cp <= 0xDBFF {
			if *i+1 >= len(src) || src[*i] != '\\' || src[*i+1] != 'u' {
				return 0, &strErr{code: jsonerr.LoneLeadingSurrogateInHexEscape, offset: start}
			}
			*i += 2
			lowStart := *i - 2
			low, err := readHex4(src, i, lowStart)
			if err != nil {
				return 0, err
			}
			if low < 0xDC00 || low > 0xDFFF {
				return 0, &strErr{code: jsonerr.LoneLeadingSurrogateInHexEscape, offset: start}
			}
			r := 0x10000 + (rune(cp)-0xD800)<<10 + (rune(low) - 0xDC00)
			var tmp [4]byte
			n := encodeRune(tmp[:], r)
			for k := 0; k < n; k++ {
				put(tmp[k])
			}
			return n, nil
		}
		if cp >= 0xDC00 && cp <= 0xDFFF {
			return 0, &strErr{code: jsonerr.LoneLeadingSurrogateInHexEscape, offset: start}
		}
		var tmp [4]byte
		n := encodeRune(tmp[:], rune(cp))
		for k := 0; k < n; k++ {
			put(tmp[k])
		}
		return n, nil
	default:
		return 0, &strErr{code: jsonerr.InvalidEscape, offset: *i - 1}
	}
}
