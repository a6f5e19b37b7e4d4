package main

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/born-ml/tensorcore/internal/logger"
	"github.com/born-ml/tensorcore/internal/parallel"
	"github.com/born-ml/tensorcore/internal/quant"
	core "github.com/born-ml/tensorcore/internal/tensor"
)

// reluxReport is the --json output of relux.
type reluxReport struct {
	Multiplier int32     `json:"multiplier"`
	LeftShift  int       `json:"left_shift"`
	RightShift int       `json:"right_shift"`
	OutputMax  int32     `json:"output_max"`
	Input      []int8    `json:"input"`
	Output     []int8    `json:"output"`
	Real       []float64 `json:"real"`
}

func reluxCmd() *cli.Command {
	var (
		values      string
		inScale     float64
		inZeroPoint int64
		outScale    float64
		outZP       int64
		maxValue    float64
		useParallel bool
		asJSON      bool
	)

	return &cli.Command{
		Name:  "relux",
		Usage: "Run the quantized int8 ReLU/ReLU6 kernel over a list of values",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "values",
				Usage:       "comma separated int8 inputs",
				Required:    true,
				Destination: &values,
			},
			&cli.Float64Flag{
				Name:        "in-scale",
				Usage:       "input quantization scale",
				Value:       1,
				Destination: &inScale,
			},
			&cli.Int64Flag{
				Name:        "in-zp",
				Usage:       "input zero point",
				Destination: &inZeroPoint,
			},
			&cli.Float64Flag{
				Name:        "out-scale",
				Usage:       "output quantization scale",
				Value:       1,
				Destination: &outScale,
			},
			&cli.Int64Flag{
				Name:        "out-zp",
				Usage:       "output zero point",
				Destination: &outZP,
			},
			&cli.Float64Flag{
				Name:        "max",
				Usage:       "upper clip in real units (6 for ReLU6, inf for ReLU)",
				Value:       6,
				Destination: &maxValue,
			},
			&cli.BoolFlag{
				Name:        "parallel",
				Usage:       "split the input across CPU cores",
				Destination: &useParallel,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print a JSON report",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyReluXConfig(cmd, LoadConfig(), &useParallel)

			src, err := parseInt8s(values)
			if err != nil {
				return err
			}
			if err := checkZeroPoint("in-zp", inZeroPoint); err != nil {
				return err
			}
			if err := checkZeroPoint("out-zp", outZP); err != nil {
				return err
			}

			in := quant.QuantArg{Scale: inScale, ZeroPoint: int32(inZeroPoint)}
			out := quant.QuantArg{Scale: outScale, ZeroPoint: int32(outZP)}
			arg, err := quant.NewReluXQuantArg(in, out, maxValue)
			if err != nil {
				return err
			}
			log.Debug("relux parameters",
				"multiplier", arg.InputMultiplier,
				"left_shift", arg.LeftShift,
				"right_shift", arg.RightShift,
				"output_max", arg.QuantizedOutputMax)

			dst := make([]int8, len(src))
			cfg := parallel.Sequential()
			if useParallel {
				cfg = parallel.DefaultConfig()
			}
			quant.ReluXInt8Parallel(src, dst, arg, cfg)

			w := cmd.Root().Writer
			if asJSON {
				report := reluxReport{
					Multiplier: arg.InputMultiplier,
					LeftShift:  arg.LeftShift,
					RightShift: arg.RightShift,
					OutputMax:  arg.QuantizedOutputMax,
					Input:      src,
					Output:     dst,
					Real:       make([]float64, len(dst)),
				}
				for i, v := range dst {
					report.Real[i] = out.Dequantize(v)
				}
				b, err := json.Marshal(report)
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				_, err = fmt.Fprintln(w, string(b))
				return err
			}

			result, err := core.FromSlice(core.Int8, core.Shape{len(dst)}, dst)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, result.StringVerbose())
			return err
		},
	}
}

func checkZeroPoint(name string, zp int64) error {
	if zp < math.MinInt8 || zp > math.MaxInt8 {
		return fmt.Errorf("--%s %d is outside the int8 range", name, zp)
	}
	return nil
}

// parseInt8s parses a comma separated list of int8 values.
func parseInt8s(s string) ([]int8, error) {
	parts := strings.Split(s, ",")
	out := make([]int8, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid int8 %q: %w", p, err)
		}
		out = append(out, int8(v))
	}
	return out, nil
}
