package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestValidateFile_Valid(t *testing.T) {
	in := writeInput(t, t.TempDir(), "ok.ndjson", "{\"a\":1}\n[2]\n")
	code, out, _ := runCLI(t, "validate-file", in)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "All files are valid!")
}

func TestValidateFile_Invalid(t *testing.T) {
	in := writeInput(t, t.TempDir(), "bad.ndjson", "{\"a\":1}\nnope\n")
	code, out, stderr := runCLI(t, "validate-file", "--backend", "fast", in)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "Line 2: nope")
	assert.Empty(t, stderr)
}

func TestValidateFile_Clean(t *testing.T) {
	in := writeInput(t, t.TempDir(), "c.ndjson", "1\nx\n2\n")
	outDir := filepath.Join(t.TempDir(), "cleaned")
	code, _, _ := runCLI(t, "validate-file", "--clean", "-o", outDir, in)
	assert.Equal(t, exitInvalid, code)

	b, err := os.ReadFile(filepath.Join(outDir, "c.ndjson"))
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", string(b))
}

func TestCleanRequiresOutputDir(t *testing.T) {
	in := writeInput(t, t.TempDir(), "c.ndjson", "1\n")
	code, _, stderr := runCLI(t, "validate-file", "--clean", in)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "output-dir")
}

func TestUnknownBackend(t *testing.T) {
	in := writeInput(t, t.TempDir(), "u.ndjson", "1\n")
	outDir := filepath.Join(t.TempDir(), "never")
	code, _, stderr := runCLI(t, "validate-file", "--backend", "nope", "--clean", "-o", outDir, in)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "unknown JSON backend")
	_, err := os.Stat(outDir)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "validate-file", filepath.Join(t.TempDir(), "gone.ndjson"))
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "gone.ndjson")
}

func TestValidateFiles_JSON(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.ndjson", "1\n")
	b := writeInput(t, dir, "b.ndjson", "x\ny\n")
	code, out, _ := runCLI(t, "validate-files", "--format", "json", "--workers", "2", a, b)
	assert.Equal(t, exitInvalid, code)

	var rep struct {
		Summary struct {
			TotalFiles  int `json:"total_files"`
			TotalErrors int `json:"total_errors"`
		} `json:"summary"`
		Errors []struct {
			File       string `json:"file"`
			LineNumber int    `json:"line_number"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 2, rep.Summary.TotalFiles)
	assert.Equal(t, 2, rep.Summary.TotalErrors)
	require.Len(t, rep.Errors, 2)
	assert.Equal(t, b, rep.Errors[0].File)
	assert.Equal(t, 1, rep.Errors[0].LineNumber)
	assert.Equal(t, 2, rep.Errors[1].LineNumber)
}

func TestValidateFiles_BestEffort(t *testing.T) {
	dir := t.TempDir()
	a := writeInput(t, dir, "a.ndjson", "1\n")
	code, out, _ := runCLI(t, "validate-files", "--policy", "best-effort", a, filepath.Join(dir, "gone.ndjson"))
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "Failed files:")
}

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeInput(t, dir, "a.ndjson", "1\n")
	writeInput(t, dir, "b.partial.ndjson", "broken\n")
	code, out, _ := runCLI(t, "validate-dir", "--exclude", "*.partial.ndjson", dir)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "Total files processed: 1")

	code, _, _ = runCLI(t, "validate-dir", dir)
	assert.Equal(t, exitInvalid, code)
}

func TestBlankLinesFlag(t *testing.T) {
	in := writeInput(t, t.TempDir(), "b.ndjson", "1\n\n2\n")
	code, _, _ := runCLI(t, "validate-file", in)
	assert.Equal(t, exitInvalid, code)
	code, out, _ := runCLI(t, "validate-file", "--blank-lines", "skip", in)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "1 blank skipped")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "d.ndjson", "{\"a\":1,\"a\":2}\n")
	outDir := filepath.Join(dir, "out")
	cfg := writeInput(t, dir, "cfg.yaml", "backend: jscan\noutput_dir: "+outDir+"\nlimits:\n  reject_duplicate_keys: true\n")

	code, out, _ := runCLI(t, "validate-file", "--config", cfg, "--clean", in)
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, out, "duplicated")

	b, err := os.ReadFile(filepath.Join(outDir, "d.ndjson"))
	require.NoError(t, err)
	assert.Empty(t, b)

	// flags win over the file
	code, _, _ = runCLI(t, "validate-file", "--config", cfg, "--reject-duplicate-keys=false", in)
	assert.Equal(t, exitOK, code)
}

func TestBackends(t *testing.T) {
	code, out, _ := runCLI(t, "backends")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "standard\n")
	assert.Contains(t, out, "sonic (alias of fast)")
	assert.Contains(t, out, "jscan\n")
}

func TestBadFlagValues(t *testing.T) {
	in := writeInput(t, t.TempDir(), "f.ndjson", "1\n")
	for _, args := range [][]string{
		{"validate-file", "--format", "xml", in},
		{"validate-file", "--policy", "maybe", in},
		{"validate-file", "--log-level", "loud", in},
		{"validate-file", "--workers", "-1", in},
		{"validate-file"},
	} {
		code, _, _ := runCLI(t, args...)
		assert.Equal(t, exitFailure, code, "%v", args)
	}
}
