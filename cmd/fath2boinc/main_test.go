package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cpid = "0123456789abcdef0123456789abcdef"

func TestRun_UsageError(t *testing.T) {
	var stderr bytes.Buffer

	code := run(context.Background(), []string{"only", "two"}, &stderr)

	assert.Equal(t, exitUsage, code)
	assert.Equal(t, 1, strings.Count(stderr.String(), "\n"), "single-line usage")
	assert.True(t, strings.HasPrefix(stderr.String(), "USAGE: fath2boinc"))
}

func TestRun_Success(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "local.csv")
	summary := filepath.Join(dir, "summary.txt")
	out := filepath.Join(dir, "boinc.xml")
	require.NoError(t, os.WriteFile(summary, []byte("team_GRC_"+cpid+"\t100.0\tx\ty\n"), 0o600))

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-log-format", "json", local, summary, out}, &stderr)

	require.Equal(t, exitOK, code, stderr.String())
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<cpid>"+cpid+"</cpid>")
	assert.FileExists(t, local)
}

func TestRun_MissingSummary(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer

	code := run(context.Background(), []string{
		filepath.Join(dir, "local.csv"),
		filepath.Join(dir, "absent.txt"),
		filepath.Join(dir, "boinc.xml"),
	}, &stderr)

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "absent.txt")
}

func TestRun_CorruptCheckpoint(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "local.csv")
	summary := filepath.Join(dir, "summary.txt")
	require.NoError(t, os.WriteFile(local, []byte("not,a,valid,row\n"), 0o600))
	require.NoError(t, os.WriteFile(summary, []byte(""), 0o600))

	var stderr bytes.Buffer
	code := run(context.Background(), []string{local, summary, filepath.Join(dir, "boinc.xml")}, &stderr)

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "corrupt checkpoint")
}

func TestRun_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer

	code := run(context.Background(), []string{"-c", filepath.Join(dir, "nope.json"), "a", "b", "c"}, &stderr)

	assert.Equal(t, exitError, code)
}
