package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Defaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(nil, &buf))

	out := buf.String()
	assert.Contains(t, out, "Digital filter (converter rate)")
	assert.Contains(t, out, "Reconstruction filter (source rate)")
	assert.Contains(t, out, "Gain at cutoff: -3.0103 dB")
	assert.Equal(t, 2, strings.Count(out, "DC gain: 1.0000000000"))
	assert.Contains(t, out, "Gain at 1600 Hz")
}

func TestRun_InvalidDesign(t *testing.T) {
	var buf bytes.Buffer
	err := run([]string{"-cutoff", "1000"}, &buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Digital filter")
}

func TestRun_InvalidPoints(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, run([]string{"-points", "1"}, &buf))
}
