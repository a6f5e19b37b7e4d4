// Package main provides the tensorcore CLI for building, converting and
// printing tensors and running the quantized activation kernel.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:   "tensorcore",
		Usage:  "Tensor storage, rendering and int8 kernel toolbox",
		Flags:  loggingFlags(),
		Before: setupLogging,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			renderCmd(),
			reluxCmd(),
			versionCmd(),
		},
	}
}
