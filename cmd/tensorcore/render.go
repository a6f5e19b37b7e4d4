package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/born-ml/tensorcore/internal/abstract"
	"github.com/born-ml/tensorcore/internal/logger"
	"github.com/born-ml/tensorcore/internal/rawfile"
	core "github.com/born-ml/tensorcore/internal/tensor"
	"github.com/born-ml/tensorcore/tensor"
)

// tensorReport is the --json output of render.
type tensorReport struct {
	ID       string `json:"id"`
	DType    string `json:"dtype"`
	Shape    []int  `json:"shape"`
	Elements int    `json:"elements"`
	NBytes   int    `json:"nbytes"`
	Hash     uint64 `json:"hash"`
	Abstract string `json:"abstract"`
	Value    string `json:"value"`
}

func renderCmd() *cli.Command {
	var (
		dtypeName string
		shapeText string
		values    string
		fillRange bool
		filePath  string
		srcName   string
		asName    string
		verbose   bool
		asJSON    bool
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Build a tensor and print it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dtype",
				Aliases:     []string{"t"},
				Usage:       "element type (bool, int8 ... float64, half, float, double)",
				Value:       "float32",
				Destination: &dtypeName,
			},
			&cli.StringFlag{
				Name:        "shape",
				Aliases:     []string{"s"},
				Usage:       "comma separated dimensions; empty for a scalar",
				Destination: &shapeText,
			},
			&cli.StringFlag{
				Name:        "values",
				Usage:       "comma separated values",
				Destination: &values,
			},
			&cli.BoolFlag{
				Name:        "range",
				Usage:       "fill with 0, 1, 2, ...",
				Destination: &fillRange,
			},
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "raw little-endian file to load",
				Destination: &filePath,
			},
			&cli.StringFlag{
				Name:        "src-dtype",
				Usage:       "element type stored in --file (defaults to --dtype)",
				Destination: &srcName,
			},
			&cli.StringFlag{
				Name:        "as",
				Usage:       "convert to this element type before printing",
				Destination: &asName,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "always print values",
				Destination: &verbose,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print a JSON report",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyRenderConfig(cmd, LoadConfig(), &dtypeName, &verbose)

			dtype, err := core.ParseDataType(dtypeName)
			if err != nil {
				return err
			}

			var x *core.Tensor
			switch {
			case filePath != "":
				src := dtype
				if srcName != "" {
					if src, err = core.ParseDataType(srcName); err != nil {
						return err
					}
				}
				var shape core.Shape
				if cmd.IsSet("shape") {
					if shape, err = core.ParseShape(shapeText); err != nil {
						return err
					}
				}
				x, err = rawfile.Load(filePath, dtype, shape, src)
			default:
				x, err = buildTensor(dtype, shapeText, values, fillRange)
			}
			if err != nil {
				return err
			}
			log.Debug("built tensor", "id", x.ID(), "dtype", x.DataType(), "shape", x.Shape())

			if asName != "" {
				to, err := core.ParseDataType(asName)
				if err != nil {
					return err
				}
				if _, err := x.SetDataType(to); err != nil {
					return err
				}
			}

			w := cmd.Root().Writer
			if asJSON {
				report, err := newReport(x)
				if err != nil {
					return err
				}
				out, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
				_, err = fmt.Fprintln(w, string(out))
				return err
			}

			text := x.String()
			if verbose {
				text = x.StringVerbose()
			}
			_, err = fmt.Fprintln(w, text)
			return err
		},
	}
}

// buildTensor creates a tensor from CLI input. With neither values nor
// range the buffer stays unallocated.
func buildTensor(dtype core.DataType, shapeText, values string, fillRange bool) (*core.Tensor, error) {
	if values != "" && fillRange {
		return nil, errors.New("--values and --range are mutually exclusive")
	}

	var vals []float64
	if values != "" {
		var err error
		if vals, err = parseFloats(values); err != nil {
			return nil, err
		}
	}

	shape, err := core.ParseShape(shapeText)
	if err != nil {
		return nil, err
	}
	if shapeText == "" && len(vals) > 1 {
		shape = core.Shape{len(vals)}
	}

	switch {
	case vals != nil:
		return core.FromSlice(dtype, shape, vals)
	case fillRange:
		seq := make([]int64, shape.NumElements())
		for i := range seq {
			seq[i] = int64(i)
		}
		return core.FromSlice(dtype, shape, seq)
	default:
		return core.New(dtype, shape)
	}
}

func newReport(x *core.Tensor) (*tensorReport, error) {
	abs, err := abstract.FromTensor(x)
	if err != nil {
		return nil, err
	}
	pub := tensor.Wrap(x)
	return &tensorReport{
		ID:       x.ID(),
		DType:    pub.DataType().String(),
		Shape:    append([]int{}, pub.Shape()...),
		Elements: pub.ElementsNum(),
		NBytes:   pub.Size(),
		Hash:     pub.Hash(),
		Abstract: abs.String(),
		Value:    x.Storage().Render(x.DataType(), x.Shape()),
	}, nil
}

// parseFloats parses a comma separated list such as "1, -2.5, 3e2".
func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
