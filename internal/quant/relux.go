package quant

import (
	"fmt"
	"math"

	"github.com/born-ml/tensorcore/internal/parallel"
)

// ReluXQuantArg holds the parameters of a quantized ReLU-family activation.
type ReluXQuantArg struct {
	Input  QuantArg
	Output QuantArg

	// InputMultiplier, LeftShift and RightShift encode Input.Scale/Output.Scale
	// in fixed point. RightShift is zero or negative.
	InputMultiplier int32
	LeftShift       int
	RightShift      int

	// QuantizedOutputMin is carried for parity with the other activation
	// kernels; ReluXInt8 clamps against QuantizedOutputMax only.
	QuantizedOutputMin int32
	QuantizedOutputMax int32
}

// NewReluXQuantArg derives the fixed-point parameters for an activation
// clipping at maxValue (6 for ReLU6). A maxValue of +Inf gives plain ReLU,
// limited only by the int8 range.
func NewReluXQuantArg(in, out QuantArg, maxValue float64) (*ReluXQuantArg, error) {
	if in.Scale <= 0 || out.Scale <= 0 {
		return nil, fmt.Errorf("quant: scales must be positive, got input %g output %g", in.Scale, out.Scale)
	}
	multiplier, exp := QuantizeMultiplier(in.Scale / out.Scale)
	left, right := ShiftsFromExponent(exp)

	arg := &ReluXQuantArg{
		Input:              in,
		Output:             out,
		InputMultiplier:    multiplier,
		LeftShift:          left,
		RightShift:         right,
		QuantizedOutputMin: out.ZeroPoint,
		QuantizedOutputMax: math.MaxInt8,
	}
	if !math.IsInf(maxValue, 1) {
		arg.QuantizedOutputMax = out.Quantize(maxValue)
	}
	return arg, nil
}

// ReluXInt8 applies the activation to src, writing len(src) values to dst.
// Inputs at or below the input zero point map to the output zero point; the
// rest are rescaled and clamped to QuantizedOutputMax.
func ReluXInt8(src, dst []int8, arg *ReluXQuantArg) {
	dst = dst[:len(src)]
	for i, v := range src {
		if int32(v) <= arg.Input.ZeroPoint {
			dst[i] = int8(arg.Output.ZeroPoint)
			continue
		}
		inputVal := int32(v) - arg.Input.ZeroPoint
		scaled := SaturatingRoundingDoublingHighMul(inputVal, arg.InputMultiplier)
		shifted := RoundingDivideByPOT(scaled*(1<<arg.LeftShift), -arg.RightShift)
		output := shifted + arg.Output.ZeroPoint
		dst[i] = int8(min(output, arg.QuantizedOutputMax))
	}
}

// ReluXInt8Parallel runs ReluXInt8 over disjoint ranges of src concurrently.
func ReluXInt8Parallel(src, dst []int8, arg *ReluXQuantArg, cfg parallel.Config) {
	dst = dst[:len(src)]
	parallel.ForRange(len(src), func(start, end int) {
		ReluXInt8(src[start:end], dst[start:end], arg)
	}, cfg)
}
