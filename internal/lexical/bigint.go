// Package lexical implements an exact decimal-to-float64 engine: a fast
// path (direct f64 multiplication), a moderate path (extended-
// precision multiply by cached powers of ten), and a big-integer
// halfway-comparison fallback, so that parsing round-trips every finite
// f64 bit for bit.
//
// The big-integer fallback is specialized to float64 directly rather
// than generic over float width, and uses a plain Go slice of 32-bit
// limbs rather than a growable arbitrary-width type.
package lexical

// bigint is a little-endian dynamic sequence of 32-bit limbs. 32-bit
// limbs (rather than 64-bit) keep imulSmall's internal product inside a
// uint64 without a second carry register.
type bigint struct {
	limbs []uint32
}

func newBigintFromU64(v uint64) *bigint {
	b := &bigint{limbs: make([]uint32, 0, 4)}
	b.limbs = append(b.limbs, uint32(v), uint32(v>>32))
	b.normalize()
	return b
}

func (b *bigint) normalize() {
	n := len(b.limbs)
	for n > 0 && b.limbs[n-1] == 0 {
		n--
	}
	b.limbs = b.limbs[:n]
}

func (b *bigint) isZero() bool { return len(b.limbs) == 0 }

// imulSmall multiplies the bigint in place by a small (<= 32-bit) value.
func (b *bigint) imulSmall(m uint32) {
	if m == 0 {
		b.limbs = b.limbs[:0]
		return
	}
	var carry uint64
	for i := range b.limbs {
		p := uint64(b.limbs[i])*uint64(m) + carry
		b.limbs[i] = uint32(p)
		carry = p >> 32
	}
	for carry != 0 {
		b.limbs = append(b.limbs, uint32(carry))
		carry >>= 32
	}
	b.normalize()
}

// iaddSmall adds a small value in place.
func (b *bigint) iaddSmall(a uint32) {
	carry := uint64(a)
	for i := 0; i < len(b.limbs) && carry != 0; i++ {
		s := uint64(b.limbs[i]) + carry
		b.limbs[i] = uint32(s)
		carry = s >> 32
	}
	for carry != 0 {
		b.limbs = append(b.limbs, uint32(carry))
		carry >>= 32
	}
	b.normalize()
}

// imulPow2 multiplies in place by 2^n.
func (b *bigint) imulPow2(n uint32) {
	if b.isZero() || n == 0 {
		return
	}
	limbShift := n / 32
	bitShift := n % 32
	if bitShift != 0 {
		var carry uint32
		for i := range b.limbs {
			v := b.limbs[i]
			b.limbs[i] = (v << bitShift) | carry
			carry = v >> (32 - bitShift)
		}
		if carry != 0 {
			b.limbs = append(b.limbs, carry)
		}
	}
	if limbShift != 0 {
		shifted := make([]uint32, limbShift, int(limbShift)+len(b.limbs))
		shifted = append(shifted, b.limbs...)
		b.limbs = shifted
	}
}

// imulPow5 multiplies in place by 5^n, via repeated multiplication by the
// largest cached power of 5 that fits a uint32 (5^13 = 1220703125).
func (b *bigint) imulPow5(n uint32) {
	const chunkExp = 13
	const chunkVal = 1220703125 // 5^13
	for n >= chunkExp {
		b.imulSmall(chunkVal)
		n -= chunkExp
	}
	if n > 0 {
		v := uint32(1)
		for i := uint32(0); i < n; i++ {
			v *= 5
		}
		b.imulSmall(v)
	}
}

// imulPow10 multiplies in place by 10^n = 2^n * 5^n.
func (b *bigint) imulPow10(n uint32) {
	b.imulPow5(n)
	b.imulPow2(n)
}

// bitLength returns the number of bits needed to represent the value
// (0 for zero).
func (b *bigint) bitLength() int {
	if b.isZero() {
		return 0
	}
	top := b.limbs[len(b.limbs)-1]
	bits := 0
	for top != 0 {
		bits++
		top >>= 1
	}
	return (len(b.limbs)-1)*32 + bits
}

// hi64 returns the top 64 bits of the value (left-justified is not
// performed; this returns the most-significant 64 bits as a value), plus
// whether any lower bits were non-zero (truncated).
func (b *bigint) hi64() (hi uint64, truncated bool) {
	bl := b.bitLength()
	if bl <= 64 {
		var v uint64
		for i := len(b.limbs) - 1; i >= 0; i-- {
			v = v<<32 | uint64(b.limbs[i])
		}
		return v, false
	}
	shift := bl - 64
	limbShift := shift / 32
	bitShift := uint(shift % 32)

	// Check whether any bits below `shift` are set, for truncation.
	truncated = false
	for i := 0; i < limbShift && i < len(b.limbs); i++ {
		if b.limbs[i] != 0 {
			truncated = true
			break
		}
	}
	if !truncated && bitShift != 0 && limbShift < len(b.limbs) {
		mask := uint32(1)<<bitShift - 1
		if b.limbs[limbShift]&mask != 0 {
			truncated = true
		}
	}

	get := func(i int) uint64 {
		if i < 0 || i >= len(b.limbs) {
			return 0
		}
		return uint64(b.limbs[i])
	}
	idx := limbShift
	if bitShift == 0 {
		hi = get(idx+1)<<32 | get(idx)
		// hi currently holds bits [idx*32, idx*32+64); we want the top 64
		// bits of the whole number, i.e. bits [shift, shift+64).
		return hi, truncated
	}
	lo := (get(idx) >> bitShift) | (get(idx+1) << (32 - bitShift))
	hiPart := (get(idx+1) >> bitShift) | (get(idx+2) << (32 - bitShift))
	hi = hiPart<<32 | lo
	return hi, truncated
}

// isub subtracts other from b in place. The caller must ensure b >= other
// (typically via a prior compare); used by the restoring-division loop in
// negPow10 to compute negative powers of ten without a standard-library
// float parse.
func (b *bigint) isub(other *bigint) {
	var borrow int64
	for i := range b.limbs {
		var o int64
		if i < len(other.limbs) {
			o = int64(other.limbs[i])
		}
		d := int64(b.limbs[i]) - o - borrow
		if d < 0 {
			d += 1 << 32
			borrow = 1
		} else {
			borrow = 0
		}
		b.limbs[i] = uint32(d)
	}
	b.normalize()
}

// compare returns -1, 0, or 1 as b is less than, equal to, or greater than
// other.
func (b *bigint) compare(other *bigint) int {
	if len(b.limbs) != len(other.limbs) {
		if len(b.limbs) < len(other.limbs) {
			return -1
		}
		return 1
	}
	for i := len(b.limbs) - 1; i >= 0; i-- {
		if b.limbs[i] != other.limbs[i] {
			if b.limbs[i] < other.limbs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
