package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamplesCommand_SetAndList(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "cache")

	textPath := filepath.Join(tmpDir, "example.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("Example resume text"), 0644))

	cmd := exec.Command(binaryPath, "examples",
		"--cache-dir", cacheDir,
		"--set", "default_example_resume",
		"--file", textPath)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "Stored")

	cmd = exec.Command(binaryPath, "examples", "--cache-dir", cacheDir)
	output, err = cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "cached (19 characters)")
}

func TestExamplesCommand_RejectsUnknownKey(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	textPath := filepath.Join(tmpDir, "example.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("text"), 0644))

	cmd := exec.Command(binaryPath, "examples",
		"--cache-dir", filepath.Join(tmpDir, "cache"),
		"--set", "bogus_key",
		"--file", textPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "unknown")
}
