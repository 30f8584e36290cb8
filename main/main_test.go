package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/tdstime/pkg/datetime"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(args, &out, zerolog.Nop())
	return strings.TrimSpace(out.String()), err
}

func TestEncodeCommand(t *testing.T) {
	out, err := runCLI(t, "encode", "-kind", "datetime", "2024-03-15T12:30:45.5")
	require.NoError(t, err)
	assert.Equal(t, "34b10000b233ce00", out)

	out, err = runCLI(t, "encode", "-kind", "offset", "2024-03-15T12:30:45.5+02:00")
	require.NoError(t, err)
	assert.Equal(t, "34b10000323ead000000", out)
}

func TestDecodeCommand(t *testing.T) {
	out, err := runCLI(t, "decode", "-kind", "datetime", "34b10000b233ce00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15T12:30:45.5", out)

	out, err = runCLI(t, "decode", "-kind", "date", "-tag", "0x6f", "0x34b10000b233ce00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", out)

	_, err = runCLI(t, "decode", "-kind", "datetime", "-width", "4", "34b10000")
	assert.ErrorIs(t, err, datetime.ErrIncompatible)
}

func TestDecodeTrimsFraction(t *testing.T) {
	out, err := runCLI(t, "decode", "-kind", "time", "00000000b233ce00")
	require.NoError(t, err)
	assert.Equal(t, "12:30:45.5", out)

	out, err = runCLI(t, "decode", "-kind", "time", "0000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "00:00:00", out)

	// last tick of the day reads back as 23:59:59.997
	out, err = runCLI(t, "decode", "-kind", "datetime", "00000000ff818b01")
	require.NoError(t, err)
	assert.Equal(t, "1900-01-01T23:59:59.997", out)
}

func TestJSONOutput(t *testing.T) {
	out, err := runCLI(t, "decode", "-json", "-kind", "time", "00000000b233ce00")
	require.NoError(t, err)
	var res result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "time", res.Kind)
	assert.Equal(t, "timen(8)", res.Type)
	assert.Equal(t, "12:30:45.5", res.Value)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.toml")
	require.NoError(t, os.WriteFile(path, []byte("rounding = \"truncate\"\n"), 0o600))
	out, err := runCLI(t, "decode", "-config", path, "-kind", "datetime", "0000000001000000")
	require.NoError(t, err)
	assert.Equal(t, "1900-01-01T00:00:00", out)
}

func TestUsageErrors(t *testing.T) {
	_, err := runCLI(t)
	assert.ErrorContains(t, err, "usage")
	_, err = runCLI(t, "explode", "x")
	assert.ErrorContains(t, err, "unknown command")
	_, err = runCLI(t, "encode", "-kind", "year", "2024")
	assert.ErrorContains(t, err, "unknown kind")
	_, err = runCLI(t, "decode", "zz")
	assert.ErrorContains(t, err, "parse hex")
}
