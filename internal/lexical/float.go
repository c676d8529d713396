package lexical

const (
	mantissaBits  = 52
	exponentBias  = 1023
	maxExactInt   = 1 << 53 // 2^53: largest integer exactly representable in f64
	float64Digits = 17      // enough decimal digits to round-trip any f64
)

// pow10Exact holds the exact f64 values of 10^0..10^22 (the largest range
// where both mantissa and the power of ten are exactly representable),
// used by the fast path.
var pow10Exact = [23]float64{
	1e0, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10,
	1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19, 1e20, 1e21, 1e22,
}

// fastPath handles the common case: when the mantissa and the power
// of ten are both exactly representable in f64 and no digits were
// truncated, multiplying (or dividing) directly is exact.
func fastPath(mantissa uint64, exp int) (float64, bool) {
	if mantissa >= maxExactInt {
		return 0, false
	}
	if exp < -22 || exp > 22 {
		return 0, false
	}
	f := float64(mantissa)
	if exp >= 0 {
		return f * pow10Exact[exp], true
	}
	return f / pow10Exact[-exp], true
}

// extendedFloat is a (mantissa, exponent) pair meaning mantissa * 2^exponent.
type extendedFloat struct {
	mant uint64
	exp  int32
}

// mulExt multiplies two extended floats with a 64x64->128 multiply, keeping
// the high 64 bits rounded to nearest (a discarded half rounds up), per the
// standard extended-precision multiply used by Grisu-family algorithms.
// The result is not normalized.
func mulExt(a, b extendedFloat) extendedFloat {
	hi, lo := mul64(a.mant, b.mant)
	// Round the 128-bit product to the upper 64 bits, rounding the
	// half-way case up, so the error is at most half a unit of hi.
	if lo&(1<<63) != 0 {
		hi++
	}
	return extendedFloat{mant: hi, exp: a.exp + b.exp + 64}
}

func mul64(a, b uint64) (hi, lo uint64) {
	aLo, aHi := a&0xFFFFFFFF, a>>32
	bLo, bHi := b&0xFFFFFFFF, b>>32

	lolo := aLo * bLo
	lohi := aLo * bHi
	hilo := aHi * bLo
	hihi := aHi * bHi

	mid1 := lohi + (lolo >> 32)
	mid2 := hilo + (mid1 & 0xFFFFFFFF)
	lo = (lolo & 0xFFFFFFFF) | (mid2 << 32)
	hi = hihi + (mid1 >> 32) + (mid2 >> 32)
	return hi, lo
}

// normalize left-shifts mant until its top bit is set, adjusting exp to
// compensate, so the mantissa occupies the full 64 bits.
func (f extendedFloat) normalize() extendedFloat {
	if f.mant == 0 {
		return f
	}
	shift := 0
	for f.mant&(1<<63) == 0 {
		f.mant <<= 1
		shift++
	}
	f.exp -= int32(shift)
	return f
}

// negPow10 computes an extendedFloat approximation of 10^-n (n > 0) by
// exact bigint restoring division: 2^k is divided by 5^n for a k chosen so
// the quotient lands just above 2^64, giving floor(2^k/5^n) as the top 64
// bits of 5^-n; the 2^-n factor of 10^-n = 5^-n * 2^-n then folds into the
// exponent for free. Every division step floors, so the returned mantissa
// always underestimates the true value, by strictly less than one unit in
// its own last place — moderatePath widens its tie margin to cover that
// extra, one-directional error before trusting the result.
func negPow10(n uint32) extendedFloat {
	divisor := newBigintFromU64(1)
	divisor.imulPow5(n)
	k := divisor.bitLength() + 64

	rem := newBigintFromU64(1)
	quot := &bigint{}
	for i := 0; i < k; i++ {
		rem.imulPow2(1)
		quot.imulPow2(1)
		if rem.compare(divisor) >= 0 {
			rem.isub(divisor)
			quot.iaddSmall(1)
		}
	}

	hi, _ := quot.hi64()
	bits := quot.bitLength()
	return extendedFloat{mant: hi, exp: int32(bits-64) - int32(k) - int32(n)}
}

// cachedPow10 returns an extendedFloat approximating 10^exp for exp in
// [-400, 400]. exact reports whether the mantissa is the precise top 64
// bits of 10^exp, which is only possible for exp >= 0 (computed exactly as
// a bigint); for exp < 0 the mantissa comes from negPow10's division and is
// always a slight underestimate, so exact is always false there and
// moderatePath must apply a wider safety margin before trusting it. ok is
// false only when exp falls outside the supported range.
func cachedPow10(exp int) (f extendedFloat, exact bool, ok bool) {
	if exp < -400 || exp > 400 {
		return extendedFloat{}, false, false
	}
	if exp < 0 {
		return negPow10(uint32(-exp)), false, true
	}
	b := newBigintFromU64(1)
	b.imulPow10(uint32(exp))
	hi, truncated := b.hi64()
	bits := b.bitLength()
	if bits < 64 {
		hi <<= uint(64 - bits)
	}
	return extendedFloat{mant: hi, exp: int32(bits - 64)}, !truncated, true
}
