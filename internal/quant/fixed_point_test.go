package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaturatingRoundingDoublingHighMul(t *testing.T) {
	tests := []struct {
		a, b int32
		want int32
	}{
		{math.MinInt32, math.MinInt32, math.MaxInt32},
		{1 << 30, 1 << 30, 1 << 29},
		{100, math.MaxInt32, 100},
		{-100, math.MaxInt32, -100},
		{5, 1 << 30, 3},
		{0, math.MaxInt32, 0},
	}

	for _, tt := range tests {
		got := SaturatingRoundingDoublingHighMul(tt.a, tt.b)
		assert.Equal(t, tt.want, got, "SRDHM(%d, %d)", tt.a, tt.b)
	}
}

func TestRoundingDivideByPOT(t *testing.T) {
	tests := []struct {
		x        int32
		exponent int
		want     int32
	}{
		{5, 1, 3},
		{-5, 1, -3},
		{7, 2, 2},
		{6, 2, 2},
		{5, 2, 1},
		{-6, 2, -2},
		{42, 0, 42},
		{-42, 0, -42},
	}

	for _, tt := range tests {
		got := RoundingDivideByPOT(tt.x, tt.exponent)
		assert.Equal(t, tt.want, got, "RoundingDivideByPOT(%d, %d)", tt.x, tt.exponent)
	}
}

func TestQuantizeMultiplier(t *testing.T) {
	tests := []struct {
		value     float64
		wantMul   int32
		wantShift int
	}{
		{0, 0, 0},
		{0.5, 1 << 30, 0},
		{1, 1 << 30, 1},
		{0.25, 1 << 30, -1},
		{0.75, 3 << 29, 0},
	}

	for _, tt := range tests {
		mul, shift := QuantizeMultiplier(tt.value)
		assert.Equal(t, tt.wantMul, mul, "multiplier for %g", tt.value)
		assert.Equal(t, tt.wantShift, shift, "shift for %g", tt.value)
	}

	// Values that round up to 1.0 renormalize into the next exponent.
	mul, shift := QuantizeMultiplier(math.Nextafter(1, 0))
	assert.Equal(t, int32(1<<30), mul)
	assert.Equal(t, 1, shift)
}

func TestShiftsFromExponent(t *testing.T) {
	left, right := ShiftsFromExponent(3)
	assert.Equal(t, 3, left)
	assert.Equal(t, 0, right)

	left, right = ShiftsFromExponent(-4)
	assert.Equal(t, 0, left)
	assert.Equal(t, -4, right)

	left, right = ShiftsFromExponent(0)
	assert.Zero(t, left)
	assert.Zero(t, right)
}

func TestQuantArg(t *testing.T) {
	q := QuantArg{Scale: 0.5, ZeroPoint: -20}
	assert.Equal(t, int32(-8), q.Quantize(6))
	assert.Equal(t, int32(-20), q.Quantize(0))
	assert.Equal(t, int32(math.MaxInt8), q.Quantize(1000))
	assert.Equal(t, int32(math.MinInt8), q.Quantize(-1000))

	assert.InDelta(t, 6.0, q.Dequantize(-8), 1e-12)
	assert.InDelta(t, 0.0, q.Dequantize(-20), 1e-12)
}
