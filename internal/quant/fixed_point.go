// Package quant implements fixed-point helpers and quantized int8 kernels.
//
// Kernels are pure functions over slices and a parameter struct. They keep
// no state, so disjoint ranges of one buffer can be processed concurrently.
package quant

import (
	"math"
)

// QuantArg describes an affine quantization: real = Scale * (q - ZeroPoint).
type QuantArg struct {
	Scale     float64
	ZeroPoint int32
}

// SaturatingRoundingDoublingHighMul returns the high 32 bits of 2*a*b,
// rounded to nearest. The single overflowing case (MinInt32 * MinInt32)
// saturates to MaxInt32.
func SaturatingRoundingDoublingHighMul(a, b int32) int32 {
	if a == b && a == math.MinInt32 {
		return math.MaxInt32
	}
	ab := int64(a) * int64(b)
	nudge := int64(1 << 30)
	if ab < 0 {
		nudge = 1 - (1 << 30)
	}
	return int32((ab + nudge) / (1 << 31))
}

// RoundingDivideByPOT divides x by 2^exponent, rounding half away from zero.
func RoundingDivideByPOT(x int32, exponent int) int32 {
	mask := int32(1)<<exponent - 1
	remainder := x & mask
	threshold := mask >> 1
	if x < 0 {
		threshold++
	}
	result := x >> exponent
	if remainder > threshold {
		result++
	}
	return result
}

// QuantizeMultiplier splits a positive real multiplier into a Q31 fixed-point
// multiplier and a power-of-two shift such that
// value ≈ multiplier * 2^(shift-31). A negative shift is a right shift.
func QuantizeMultiplier(value float64) (multiplier int32, shift int) {
	if value == 0 {
		return 0, 0
	}
	frac, exp := math.Frexp(value)
	q := int64(math.Round(frac * (1 << 31)))
	if q == 1<<31 {
		q /= 2
		exp++
	}
	return int32(q), exp
}

// ShiftsFromExponent returns the left and right shift amounts used by the
// kernels for a QuantizeMultiplier exponent. RightShift is stored negated,
// the way kernels pass it to RoundingDivideByPOT.
func ShiftsFromExponent(shift int) (left, right int) {
	if shift > 0 {
		return shift, 0
	}
	return 0, shift
}

// Quantize maps a real value into the int8 domain of q, saturating at the
// int8 bounds.
func (q QuantArg) Quantize(value float64) int32 {
	v := int64(math.Round(value/q.Scale)) + int64(q.ZeroPoint)
	return int32(min(max(v, math.MinInt8), math.MaxInt8))
}

// Dequantize maps a quantized value back to a real number.
func (q QuantArg) Dequantize(v int8) float64 {
	return q.Scale * float64(int32(v)-q.ZeroPoint)
}
