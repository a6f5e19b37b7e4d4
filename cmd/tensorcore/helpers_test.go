package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/born-ml/tensorcore/internal/tensor"
)

func TestParseFloats(t *testing.T) {
	got, err := parseFloats(" 1, -2.5 ,3e2,")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2.5, 300}, got)

	_, err = parseFloats("1,x")
	assert.Error(t, err)
}

func TestParseInt8s(t *testing.T) {
	got, err := parseInt8s("-128, 0, 127")
	require.NoError(t, err)
	assert.Equal(t, []int8{-128, 0, 127}, got)

	_, err = parseInt8s("128")
	assert.Error(t, err)
}

func TestBuildTensor(t *testing.T) {
	x, err := buildTensor(core.Float32, "", "1,2,3", false)
	require.NoError(t, err)
	assert.Equal(t, core.Shape{3}, x.Shape(), "shape is inferred from values")

	s, err := buildTensor(core.Int32, "", "7", false)
	require.NoError(t, err)
	assert.Empty(t, s.Shape(), "a single value is a scalar")

	lazy, err := buildTensor(core.Int32, "2,2", "", false)
	require.NoError(t, err)
	assert.Equal(t, core.Unallocated, lazy.Storage().State())

	_, err = buildTensor(core.Int32, "2", "1,2", true)
	assert.Error(t, err)

	_, err = buildTensor(core.Int32, "2,2", "1,2,3", false)
	assert.ErrorIs(t, err, core.ErrShapeMismatch)
}

func TestParseConfig(t *testing.T) {
	cfg := parseConfig([]byte("log_level: debug\ndefault_dtype: half\nverbose: false\n"))
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "half", cfg.DefaultDType)
	require.NotNil(t, cfg.Verbose)
	assert.False(t, *cfg.Verbose)
	assert.Nil(t, cfg.Parallel)

	assert.Equal(t, Config{}, parseConfig([]byte("::not yaml")))
}

func TestCheckZeroPoint(t *testing.T) {
	assert.NoError(t, checkZeroPoint("in-zp", -128))
	assert.Error(t, checkZeroPoint("in-zp", 200))
}
