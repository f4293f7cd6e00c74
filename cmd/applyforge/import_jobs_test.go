package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJobsCSV = `company,position,location
Acme Corp,Backend Engineer,Remote
Globex,SRE,Berlin
`

func TestImportJobsCommand_ParsesCSV(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	csvPath := filepath.Join(tmpDir, "jobs.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleJobsCSV), 0644))

	outPath := filepath.Join(tmpDir, "jobs.json")
	cmd := exec.Command(binaryPath, "import-jobs", "--in", csvPath, "--out", outPath)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "2 jobs imported")
	assert.Contains(t, string(output), "Backend Engineer @ Acme Corp")
	assert.FileExists(t, outPath)
}

func TestImportJobsCommand_EmptyCSV(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	csvPath := filepath.Join(tmpDir, "empty.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("company,position\n"), 0644))

	cmd := exec.Command(binaryPath, "import-jobs", "--in", csvPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "no jobs imported")
}

func TestImportJobsCommand_MissingInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "import-jobs")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}
