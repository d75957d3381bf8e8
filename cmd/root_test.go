package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/interrupt-sim/internal/testutil"
	"github.com/inference-sim/interrupt-sim/sim/trace"
	"github.com/inference-sim/interrupt-sim/sim/workload"
)

func noneChanged(string) bool { return false }

func TestResolveRunConfig_MissingImplicitDefaults_UsesBuiltins(t *testing.T) {
	// GIVEN a defaults path that does not exist and was not set explicitly
	path := filepath.Join(t.TempDir(), "absent.yaml")

	// WHEN resolved
	cfg, err := resolveRunConfig(path, false, noneChanged)

	// THEN built-in defaults apply
	require.NoError(t, err)
	assert.Equal(t, DefaultRunConfig(), cfg)
}

func TestResolveRunConfig_MissingExplicitDefaults_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	_, err := resolveRunConfig(path, true, noneChanged)

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestResolveRunConfig_ChangedFlagWinsOverFile(t *testing.T) {
	// GIVEN a file choosing exact matching and a flag choosing prefix
	path := writeYAML(t, "label_matching: exact\noutput: from-file.txt\n")
	labelMatching = "prefix"
	t.Cleanup(func() { labelMatching = DefaultRunConfig().LabelMatching })

	// WHEN only label-matching was set on the command line
	cfg, err := resolveRunConfig(path, true, func(name string) bool { return name == "label-matching" })

	// THEN the flag wins for that key and the file wins for the rest
	require.NoError(t, err)
	assert.Equal(t, "prefix", cfg.LabelMatching)
	assert.Equal(t, "from-file.txt", cfg.Output)
}

func TestResolveRunConfig_InvalidFlagValue_Error(t *testing.T) {
	maxDevices = -1
	t.Cleanup(func() { maxDevices = DefaultRunConfig().MaxDevices })

	_, err := resolveRunConfig(filepath.Join(t.TempDir(), "absent.yaml"), false,
		func(name string) bool { return name == "max-devices" })

	require.Error(t, err)
}

func TestRunSimulation_GoldenDataset_WritesExecutionFile(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			// GIVEN the scenario's inputs and an output path
			dir := t.TempDir()
			tracePath, vectorPath, devicePath := testutil.WriteInputs(t, dir, tc)
			cfg := DefaultRunConfig()
			cfg.LabelMatching = tc.LabelMatching
			cfg.Output = filepath.Join(dir, "execution.txt")

			// WHEN the simulation runs twice
			require.NoError(t, runSimulation(cfg, tracePath, vectorPath, devicePath, &bytes.Buffer{}))
			first, err := os.ReadFile(cfg.Output)
			require.NoError(t, err)
			require.NoError(t, runSimulation(cfg, tracePath, vectorPath, devicePath, &bytes.Buffer{}))
			second, err := os.ReadFile(cfg.Output)
			require.NoError(t, err)

			// THEN the file matches the golden log and is overwritten identically
			assert.Equal(t, tc.ExecutionText(), string(first))
			assert.Equal(t, first, second)
		})
	}
}

func TestRunSimulation_SummaryAndResults(t *testing.T) {
	// GIVEN the reference scenario with metrics enabled
	tc := testutil.LoadGoldenDataset(t).Tests[0]
	dir := t.TempDir()
	tracePath, vectorPath, devicePath := testutil.WriteInputs(t, dir, tc)
	cfg := DefaultRunConfig()
	cfg.Output = filepath.Join(dir, "execution.txt")
	cfg.Summary = true
	cfg.ResultsPath = filepath.Join(dir, "results.json")

	// WHEN run
	var stdout bytes.Buffer
	require.NoError(t, runSimulation(cfg, tracePath, vectorPath, devicePath, &stdout))

	// THEN metrics are printed and saved
	assert.Contains(t, stdout.String(), "Simulation Metrics")
	assert.Contains(t, stdout.String(), `"sim_ended_time_ticks": 59`)
	assert.Contains(t, stdout.String(), "=== Execution Trace ===")
	assert.Contains(t, stdout.String(), "Records: 7, Ticks: 59")
	_, err := os.Stat(cfg.ResultsPath)
	assert.NoError(t, err)
}

func TestRunSimulation_SummaryOverMixedTrace_ContiguityHolds(t *testing.T) {
	// GIVEN the scenario with skipped activities between interrupts
	tc := testutil.LoadGoldenDataset(t).Tests[1]
	dir := t.TempDir()
	tracePath, vectorPath, devicePath := testutil.WriteInputs(t, dir, tc)
	cfg := DefaultRunConfig()
	cfg.Output = filepath.Join(dir, "execution.txt")
	cfg.Summary = true

	// WHEN run with the runtime contiguity check enabled
	var stdout bytes.Buffer
	err := runSimulation(cfg, tracePath, vectorPath, devicePath, &stdout)

	// THEN the check passes and every label is counted
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Records: 20, Ticks: 232")
	assert.Contains(t, stdout.String(), "IRET")
}

func TestPrintTraceSummary_LabelsSorted(t *testing.T) {
	summary := &trace.TraceSummary{
		TotalRecords:      3,
		TotalDuration:     12,
		LabelDistribution: map[string]int{"IRET": 1, "CPU burst": 2},
	}
	var buf bytes.Buffer

	require.NoError(t, printTraceSummary(&buf, summary))

	out := buf.String()
	assert.Less(t, strings.Index(out, "CPU burst"), strings.Index(out, "IRET"))
}

func TestRunSimulation_NoVectors_FatalError(t *testing.T) {
	tc := testutil.LoadGoldenDataset(t).Tests[0]
	tc.VectorTable = nil
	dir := t.TempDir()
	tracePath, vectorPath, devicePath := testutil.WriteInputs(t, dir, tc)
	cfg := DefaultRunConfig()
	cfg.Output = filepath.Join(dir, "execution.txt")

	err := runSimulation(cfg, tracePath, vectorPath, devicePath, &bytes.Buffer{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, workload.ErrNoVectors))
	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr), "output must not be created when inputs are invalid")
}

func TestRunSimulation_UnwritableOutput_Error(t *testing.T) {
	tc := testutil.LoadGoldenDataset(t).Tests[0]
	dir := t.TempDir()
	tracePath, vectorPath, devicePath := testutil.WriteInputs(t, dir, tc)
	cfg := DefaultRunConfig()
	cfg.Output = filepath.Join(dir, "missing-dir", "execution.txt")

	err := runSimulation(cfg, tracePath, vectorPath, devicePath, &bytes.Buffer{})

	require.Error(t, err)
}

func TestRootCmd_TooFewArgs_Error(t *testing.T) {
	// GIVEN only two positional arguments
	err := rootCmd.Args(rootCmd, []string{"trace.txt", "vector_table.txt"})

	// THEN argument validation fails before any file is read
	assert.Error(t, err)
}
