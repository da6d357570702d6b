package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// moneycalc runs the CLI with an empty config directory.
func moneycalc(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"-config", t.TempDir()}, args...)
	code = realMain(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "USD 10.00", "USD 5.00"}, "USD 15.00\n"},
		{[]string{"add", "10", "5.5"}, "USD 15.50\n"},
		{[]string{"sub", "EUR 1.00", "EUR 2.50"}, "EUR -1.50\n"},
		{[]string{"mul", "USD 10.00", "0.3333"}, "USD 3.33\n"},
		{[]string{"-rounding", "up", "mul", "USD 10.00", "0.3333"}, "USD 3.34\n"},
		{[]string{"quo", "USD 10.00", "3"}, "USD 3.33\n"},
		{[]string{"quo", "JPY 1000", "-3"}, "JPY -333\n"},
		{[]string{"rat", "USD 10.00", "USD 4.00", "2"}, "2.50\n"},
		{[]string{"round", "USD", "2.345"}, "USD 2.34\n"},
		{[]string{"round", "USD", "2.345", "half-up"}, "USD 2.35\n"},
		{[]string{"round", "KWD", "-1.0005", "floor"}, "KWD -1.001\n"},
		{[]string{"float", "USD", "2.675", "half-up"}, "USD 2.67\n"},
		{[]string{"float", "JPY", "0.5"}, "JPY 0\n"},
		{[]string{"cmp", "USD 1.00", "USD 2.00"}, "-1\n"},
		{[]string{"cmp", "USD 2", "USD 2.00"}, "0\n"},
		{[]string{"split", "USD 100", "3"}, "USD 33.34\nUSD 33.33\nUSD 33.33\n"},
		{[]string{"split", "USD -0.05", "2"}, "USD -0.03\nUSD -0.02\n"},
		{[]string{"inc", "JPY 5"}, "JPY 6\n"},
		{[]string{"neg", "USD 5.00"}, "USD -5.00\n"},
		{[]string{"abs", "USD -5.00"}, "USD 5.00\n"},
	}
	for _, tt := range tests {
		code, stdout, stderr := moneycalc(t, tt.args...)
		assert.Equal(t, 0, code, "moneycalc %q: %s", tt.args, stderr)
		assert.Equal(t, tt.want, stdout, "moneycalc %q", tt.args)
	}
}

func TestCommands_Errors(t *testing.T) {
	tests := map[string][]string{
		"no command":        {},
		"unknown command":   {"pow", "USD 1.00", "2"},
		"missing argument":  {"add", "USD 1.00"},
		"too many":          {"neg", "USD 1.00", "USD 2.00"},
		"currency mismatch": {"add", "USD 10.00", "EUR 10.00"},
		"precision loss":    {"add", "USD 1.001", "USD 1.00"},
		"unknown currency":  {"neg", "UUU 1.00"},
		"division by zero":  {"quo", "USD 1.00", "0"},
		"inexact ratio":     {"rat", "USD 10.00", "USD 3.00", "2"},
		"bad scale":         {"rat", "USD 10.00", "USD 3.00", "x"},
		"unnecessary":       {"round", "USD", "2.345", "unnecessary"},
		"bad mode":          {"round", "USD", "2.345", "nearest"},
		"bad rounding flag": {"-rounding", "nearest", "neg", "USD 1.00"},
		"nan":               {"float", "USD", "NaN"},
		"bad parts":         {"split", "USD 1.00", "0"},
		"bad flag":          {"-verbose", "neg", "USD 1.00"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			code, stdout, stderr := moneycalc(t, args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.NotEmpty(t, stderr)
		})
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := "currency = \"JPY\"\nrounding = \"ceiling\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moneycalc.toml"), []byte(content), 0o600))

	var out, errOut bytes.Buffer
	code := realMain([]string{"-config", dir, "quo", "10", "3"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "JPY 4\n", out.String())
}

func TestDebugLogging(t *testing.T) {
	code, stdout, stderr := moneycalc(t, "-log-level", "debug", "add", "USD 1.00", "USD 2.00")
	require.Equal(t, 0, code)
	assert.Equal(t, "USD 3.00\n", stdout)
	assert.Contains(t, stderr, "Evaluated")
	assert.Contains(t, stderr, "USD 3.00")

	code, _, stderr = moneycalc(t, "add", "USD 1.00", "EUR 2.00")
	require.Equal(t, 1, code)
	assert.Contains(t, stderr, "Command failed")
	assert.Contains(t, stderr, "currency mismatch")
}

func TestHelp(t *testing.T) {
	code, _, stderr := moneycalc(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Commands:")
	assert.Contains(t, stderr, "split")
}

func TestBuiltinDefaults(t *testing.T) {
	t.Setenv("MONEYCALC_CURRENCY", "JPY")

	var out, errOut bytes.Buffer
	code := realMain([]string{"-config", "", "add", "1", "2"}, &out, &errOut)
	require.Equal(t, 0, code, errOut.String())
	assert.Equal(t, "USD 3.00\n", out.String())
}

func TestCommands_ISOScales(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "IQD 1.000", "IQD 0.125"}, "IQD 1.125\n"},
		{[]string{"round", "IRR", "10.505", "half-up"}, "IRR 10.51\n"},
		{[]string{"inc", "UYW 1"}, "UYW 1.0001\n"},
	}
	for _, tt := range tests {
		code, stdout, stderr := moneycalc(t, tt.args...)
		assert.Equal(t, 0, code, "moneycalc %q: %s", tt.args, stderr)
		assert.Equal(t, tt.want, stdout, "moneycalc %q", tt.args)
	}
}
