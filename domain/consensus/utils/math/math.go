package math

import (
	"math/big"
)

var (
	// bigOne is 1 represented as a big.Int. It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// oneLsh256 is 1 shifted left 256 bits.
	oneLsh256 = new(big.Int).Lsh(bigOne, 256)

	// mask256 is 2^256 - 1.
	mask256 = new(big.Int).Sub(oneLsh256, bigOne)
)

// CompactToBig converts a compact representation of a whole number N to an
// unsigned 32-bit number. The representation is similar to IEEE754 floating
// point numbers.
//
// The most significant 8 bits are the unsigned base 256 exponent, bit 23 is
// the sign bit and the least significant 23 bits are the mantissa.
//
// The formula to calculate N is:
//
//	N = (-1^sign) * mantissa * 256^(exponent-3)
//
// The result is not truncated to 256 bits. Consensus code should use
// CompactToTarget, which reports negative and overflowed encodings.
func CompactToBig(compact uint32) *big.Int {
	// Extract the mantissa, sign bit, and exponent.
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := uint(compact >> 24)

	// Since the base for the exponent is 256, the exponent can be treated
	// as the number of bytes to represent the full 256-bit number. So,
	// treat the exponent as the number of bytes and shift the mantissa
	// right or left accordingly. This is equivalent to:
	// N = mantissa * 256^(exponent-3)
	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, 8*(exponent-3))
	}

	// Make it negative if the sign bit is set.
	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// BigToCompact converts a whole number N to a compact representation using
// an unsigned 32-bit number. The compact representation only provides 23 bits
// of precision, so values larger than (2^23 - 1) only encode the most
// significant digits of the number. See CompactToBig for details.
func BigToCompact(n *big.Int) uint32 {
	// No need to do any work if it's zero.
	if n.Sign() == 0 {
		return 0
	}

	// Since the base for the exponent is 256, the exponent can be treated
	// as the number of bytes. So, shift the number right or left
	// accordingly. This is equivalent to:
	// mantissa = mantissa / 256^(exponent-3)
	var mantissa uint32
	exponent := uint(len(n.Bytes()))
	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		// Use a copy to avoid modifying the caller's original number.
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	// When the mantissa already has the sign bit set, the number is too
	// large to fit into the available 23-bits, so divide the number by 256
	// and increment the exponent accordingly.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	// Pack the exponent, sign bit, and mantissa into an unsigned 32-bit
	// int and return it.
	compact := uint32(exponent<<24) | mantissa
	if n.Sign() < 0 {
		compact |= 0x00800000
	}
	return compact
}

// CompactToTarget decodes compact into an unsigned 256-bit target the way
// every node on the network does. The magnitude is truncated to 256 bits.
// isNegative is set when the sign bit is set on a non-zero mantissa and
// isOverflow when the encoded value needs more than 256 bits.
func CompactToTarget(compact uint32) (target *big.Int, isNegative bool, isOverflow bool) {
	size := compact >> 24
	word := compact & 0x007fffff

	target = new(big.Int)
	if size <= 3 {
		word >>= 8 * (3 - size)
		target.SetUint64(uint64(word))
	} else {
		target.SetUint64(uint64(word))
		target.Lsh(target, uint(8*(size-3)))
		Truncate256(target)
	}

	isNegative = word != 0 && compact&0x00800000 != 0
	isOverflow = word != 0 && (size > 34 ||
		(word > 0xff && size > 33) ||
		(word > 0xffff && size > 32))
	return target, isNegative, isOverflow
}

// TargetToCompact encodes a non-negative target. It is BigToCompact
// restricted to the values CompactToTarget produces.
func TargetToCompact(target *big.Int) uint32 {
	return BigToCompact(target)
}

// Truncate256 reduces n modulo 2^256 in place and returns it, mirroring the
// wrap-around of fixed-width 256-bit arithmetic.
func Truncate256(n *big.Int) *big.Int {
	return n.And(n, mask256)
}

// Mul256 sets n to n*m modulo 2^256 and returns it.
func Mul256(n *big.Int, m int64) *big.Int {
	n.Mul(n, big.NewInt(m))
	return Truncate256(n)
}

// Lsh256 sets n to n<<shift modulo 2^256 and returns it.
func Lsh256(n *big.Int, shift uint) *big.Int {
	n.Lsh(n, shift)
	return Truncate256(n)
}

// ScaleTarget multiplies target by numerator and divides by denominator
// with 256-bit arithmetic. Targets wider than 235 bits are shifted right by
// one bit for the multiplication and back afterwards, so the intermediate
// product can't lose its top bit.
func ScaleTarget(target *big.Int, numerator, denominator int64) *big.Int {
	result := new(big.Int).Set(target)
	shift := result.BitLen() > 235
	if shift {
		result.Rsh(result, 1)
	}
	Mul256(result, numerator)
	result.Quo(result, big.NewInt(denominator))
	if shift {
		Lsh256(result, 1)
	}
	return result
}
