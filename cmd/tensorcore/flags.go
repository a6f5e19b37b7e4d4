package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/born-ml/tensorcore/internal/logger"
	"github.com/born-ml/tensorcore/internal/tensor"
)

var (
	logLevel  string
	logFormat string
	debug     bool
)

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

// setupLogging builds the process logger from flags and the config file and
// installs it in the context and the tensor package.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	applyLogConfig(cmd, LoadConfig())

	level := logger.ParseLevel(logLevel)
	if debug {
		level = logger.ParseLevel("debug")
	}
	log := logger.FromFormat(os.Stderr, logFormat, level)
	tensor.SetLogger(log)
	return logger.WithContext(ctx, log), nil
}
