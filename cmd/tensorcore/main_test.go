package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/tensorcore/internal/rawfile"
	core "github.com/born-ml/tensorcore/internal/tensor"
)

// run executes the CLI with args and returns stdout. Config is read from
// configYAML, or from a missing file when it is empty.
func run(t *testing.T, configYAML string, args ...string) string {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if configYAML != "" {
		require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0o644))
	}
	t.Setenv("TENSORCORE_CONFIG", cfgPath)

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	require.NoError(t, app.Run(context.Background(), append([]string{"tensorcore"}, args...)))
	return out.String()
}

func TestRenderValues(t *testing.T) {
	got := run(t, "", "render", "--dtype", "int32", "--shape", "3", "--values=1,-2,3")
	assert.Equal(t, "Tensor shape:[3]int32, value:[ 1 -2  3]\n", got)
}

func TestRenderRangeSummarized(t *testing.T) {
	got := run(t, "", "render", "--dtype", "int32", "--shape", "2,8", "--range", "--verbose")
	assert.Equal(t, "Tensor shape:[2, 8]int32\nvalue:[[ 0  1  2 ...  5  6  7]\n [ 8  9  10 ...  13  14  15]]\n", got)
}

func TestRenderConvert(t *testing.T) {
	got := run(t, "", "render", "--dtype", "float64", "--values=1.9,-1.9", "--as", "int8")
	assert.Equal(t, "Tensor shape:[2]int8, value:[ 1 -1]\n", got)
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.bin")
	src := core.MustFromSlice(core.Int16, core.Shape{4}, []int16{1, 2, 3, 4})
	require.NoError(t, rawfile.Save(path, src))

	got := run(t, "", "render", "--file", path, "--src-dtype", "int16", "--dtype", "int64", "--shape", "2,2")
	assert.Equal(t, "Tensor shape:[2, 2]int64, value:[[ 1  2]\n [ 3  4]]\n", got)
}

func TestRenderJSON(t *testing.T) {
	got := run(t, "", "render", "--shape", "2", "--values=0.5,1", "--json")

	var report tensorReport
	require.NoError(t, json.Unmarshal([]byte(got), &report))
	assert.Equal(t, "float32", report.DType)
	assert.Equal(t, []int{2}, report.Shape)
	assert.Equal(t, 2, report.Elements)
	assert.Equal(t, 8, report.NBytes)
	assert.NotZero(t, report.Hash)
	assert.Equal(t, "Tensor(float32)[2]", report.Abstract)
	assert.Equal(t, "[ 5.00000000e-01  1.00000000e+00]", report.Value)
}

func TestRenderConfigDefaults(t *testing.T) {
	cfg := "default_dtype: int16\nverbose: true\n"
	got := run(t, cfg, "render", "--shape", "2", "--range")
	assert.Equal(t, "Tensor shape:[2]int16\nvalue:[ 0  1]\n", got)

	// Explicit flags win over the config file.
	got = run(t, cfg, "render", "--dtype", "uint8", "--shape", "2", "--range")
	assert.Equal(t, "Tensor shape:[2]uint8\nvalue:[0 1]\n", got)
}

func TestReluX(t *testing.T) {
	got := run(t, "", "relux", "--values=-11,-9,10,127",
		"--in-scale", "0.125", "--in-zp=-10", "--out-scale", "0.5", "--out-zp=-20")
	assert.Equal(t, "Tensor shape:[4]int8\nvalue:[-20 -19 -15 -8]\n", got)
}

func TestReluXJSON(t *testing.T) {
	got := run(t, "parallel: true\n", "relux", "--values=0,4", "--in-scale", "0.5", "--out-scale", "1", "--json")

	var report reluxReport
	require.NoError(t, json.Unmarshal([]byte(got), &report))
	assert.Equal(t, int32(1<<30), report.Multiplier)
	assert.Equal(t, []int8{0, 4}, report.Input)
	assert.Equal(t, []int8{0, 2}, report.Output)
	assert.Equal(t, []float64{0, 2}, report.Real)
	assert.Equal(t, int32(6), report.OutputMax)
}

func TestVersion(t *testing.T) {
	got := run(t, "", "version")
	assert.Contains(t, got, "version:    "+version)
}
