package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/applyforge/internal/types"
)

func sampleJobs() []types.JobTarget {
	return []types.JobTarget{
		{ID: "a", CompanyName: "Acme", Position: "Backend Engineer"},
		{ID: "b", CompanyName: "Globex", Position: "SRE"},
		{ID: "c", CompanyName: "Initech", Position: "Platform Engineer"},
	}
}

func TestApplySelection_All(t *testing.T) {
	jobs := sampleJobs()
	require.NoError(t, applySelection(jobs, "all"))
	assert.Len(t, types.SelectedJobs(jobs), 3)
}

func TestApplySelection_Indices(t *testing.T) {
	jobs := sampleJobs()
	require.NoError(t, applySelection(jobs, "1, 3"))

	selected := types.SelectedJobs(jobs)
	require.Len(t, selected, 2)
	assert.Equal(t, "a", selected[0].ID)
	assert.Equal(t, "c", selected[1].ID)
}

func TestApplySelection_OutOfRange(t *testing.T) {
	jobs := sampleJobs()
	err := applySelection(jobs, "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestApplySelection_NotANumber(t *testing.T) {
	jobs := sampleJobs()
	err := applySelection(jobs, "1,two")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --select")
}
