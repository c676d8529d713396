package lexical

import "math"

const mantissaMask = (uint64(1) << 52) - 1

// moderatePath implements the moderate path: multiply the full-precision
// mantissa (left-justified to 64 bits) by a cached power-of-ten
// extendedFloat (exact for a non-negative decimal exponent, a bounded
// underestimate from negPow10 for a negative one), then round to a native
// float64 — but only when the rounding decision isn't close enough to a
// halfway point that the multiply's own rounding (see mulExt) or, for
// negative exponents, the cached power's own approximation error, could
// have flipped it. When unsafe, ok is false and the caller must fall back
// to bhcomp.
func moderatePath(mantissa uint64, mantExp int) (float64, bool) {
	pow10, exact, ok := cachedPow10(mantExp)
	if !ok {
		return 0, false
	}

	lz := 0
	m := mantissa
	for m&(1<<63) == 0 {
		m <<= 1
		lz++
	}
	mf := extendedFloat{mant: m, exp: int32(-lz)}
	prod := mulExt(mf, pow10).normalize()

	const shift = 11 // 64 - 53 (52 explicit mantissa bits + 1 implicit)
	const half = uint64(1) << (shift - 1)

	// An exact cached power only carries mulExt's own rounding error (at
	// most half a unit in prod's last place). A negative-exponent power
	// comes from negPow10's division instead, which adds up to a further
	// whole unit of one-directional error, so its margin has to be wider
	// to keep catching every case that error could flip.
	margin := int64(4)
	if !exact {
		margin = 12
	}

	low := prod.mant & (1<<shift - 1)
	diff := int64(low) - int64(half)
	if diff < 0 {
		diff = -diff
	}
	if diff <= margin {
		return 0, false // too close to a tie; let bhcomp decide exactly
	}

	mant53 := prod.mant >> shift
	if low > half {
		mant53++
	}
	binExp := prod.exp + shift
	if mant53 == (uint64(1) << 53) {
		mant53 = uint64(1) << 52
		binExp++
	}

	biasedExp := int64(binExp) + 52 + exponentBias
	if biasedExp <= 0 || biasedExp >= 0x7FF {
		return 0, false // subnormal or overflow: let bhcomp (or direct Inf/0) handle it
	}

	bits := uint64(biasedExp)<<52 | (mant53 & mantissaMask)
	return math.Float64frombits(bits), true
}

// parseMantissaBigint reads up to float64Digits decimal digits from the
// concatenation of integer and fraction into a bigint, appending a final
// "1" digit if any further digits remain — mirroring bhcomp.rs's
// parse_mantissa, which uses this trailing 1 to guarantee the comparison
// against b+h never spuriously reports equality for truncated input.
func parseMantissaBigint(digits []byte) *bigint {
	const maxDigits = float64Digits
	b := &bigint{}
	n := 0
	for _, c := range digits {
		if n == maxDigits {
			break
		}
		b.imulSmall(10)
		b.iaddSmall(uint32(c - '0'))
		n++
	}
	if n < len(digits) {
		b.imulSmall(10)
		b.iaddSmall(1)
	}
	return b
}

// bExtended returns the extendedFloat representation of the candidate f.
func bExtended(f float64) extendedFloat {
	bits := math.Float64bits(f)
	exp := int32((bits>>52)&0x7FF) - exponentBias - 52
	mant := bits & mantissaMask
	if (bits>>52)&0x7FF != 0 {
		mant |= uint64(1) << 52
	} else {
		exp++ // subnormal: same exponent as the smallest normal
	}
	return extendedFloat{mant: mant, exp: exp}
}

// bhExtended returns b+h, the midpoint between f and its successor.
func bhExtended(f float64) extendedFloat {
	b := bExtended(f)
	return extendedFloat{mant: (b.mant << 1) + 1, exp: b.exp - 1}
}

// nextPositive returns the next representable float64 above f (f must be
// finite and non-negative).
func nextPositive(f float64) float64 {
	bits := math.Float64bits(f)
	return math.Float64frombits(bits + 1)
}

// roundPositiveEven rounds f to even at its last bit (used when the
// halfway comparison finds an exact tie).
func roundPositiveEven(f float64) float64 {
	bits := math.Float64bits(f)
	if bits&1 == 1 {
		return math.Float64frombits(bits + 1)
	}
	return f
}

// bhcomp implements the exact big-integer fallback.
// candidate is a float64 within one ULP of the true value (fallback seeds
// it with seedCandidate); bhcomp compares the decimal digits against the
// halfway point b+h above it and keeps it, moves to its successor, or
// rounds to even on a tie. digits is the concatenation of integer and
// fraction (leading zeros already stripped by the caller).
func bhcomp(candidate float64, digits []byte, sciExp int) float64 {
	theor := bhExtended(candidate)
	theorDigits := newBigintFromU64(theor.mant)
	theorExp := theor.exp

	realDigits := parseMantissaBigint(digits)
	count := len(digits)
	if count > float64Digits {
		count = float64Digits + 1 // parseMantissaBigint's trailing "1"
	}
	realExp := sciExp + 1 - count

	binaryExp := int(theorExp) - realExp
	halfRadixExp := -realExp

	if halfRadixExp > 0 {
		theorDigits.imulPow5(uint32(halfRadixExp))
	}
	if binaryExp > 0 {
		theorDigits.imulPow2(uint32(binaryExp))
	} else if binaryExp < 0 {
		realDigits.imulPow2(uint32(-binaryExp))
	}

	switch realDigits.compare(theorDigits) {
	case 1:
		return nextPositive(candidate)
	case -1:
		return candidate
	default:
		return roundPositiveEven(candidate)
	}
}

// largeAtof implements the positive-scaled-exponent branch of
// the fallback: the full decimal mantissa is scaled up by 10^exponent
// exactly as a bigint, then rounded once to float64.
func largeAtof(digits []byte, exponent int) float64 {
	b := parseMantissaBigint(digits)
	if exponent > 0 {
		b.imulPow10(uint32(exponent))
	}
	hi, truncated := b.hi64()
	bits := b.bitLength()
	if bits == 0 {
		return 0
	}
	if bits < 64 {
		hi <<= uint(64 - bits)
	}
	fp := extendedFloat{mant: hi, exp: int32(bits) - 64}
	return roundExtendedTiesAway(fp, truncated)
}

// roundExtendedTiesAway rounds fp (already left-justified so its top bit is
// the MSB of the true value) to the nearest float64, rounding a genuine
// tie up when the source digits were truncated (since truncation means the
// true value is strictly above the representable halfway point).
func roundExtendedTiesAway(fp extendedFloat, truncatedBelow bool) float64 {
	const shift = 11
	if fp.mant>>63 == 0 {
		// fewer than 64 significant bits; normalize left.
		for fp.mant != 0 && fp.mant>>63 == 0 {
			fp.mant <<= 1
			fp.exp--
		}
	}
	low := fp.mant & (1<<shift - 1)
	half := uint64(1) << (shift - 1)
	mant53 := fp.mant >> shift
	switch {
	case low > half, low == half && truncatedBelow:
		mant53++
	case low == half:
		if mant53&1 == 1 {
			mant53++
		}
	}
	binExp := int64(fp.exp) + shift
	if mant53 == uint64(1)<<53 {
		mant53 = uint64(1) << 52
		binExp++
	}
	biasedExp := binExp + 52 + exponentBias
	if biasedExp >= 0x7FF {
		return math.Inf(1)
	}
	if biasedExp <= 0 {
		return 0 // underflow to zero; subnormal precision loss is out of
		// scope for the large-exponent branch, which only runs when the
		// decimal exponent pushed the value far from zero in the first
		// place.
	}
	bits := uint64(biasedExp)<<52 | (mant53 & mantissaMask)
	return math.Float64frombits(bits)
}
