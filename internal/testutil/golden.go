// Package testutil provides shared test infrastructure for the interrupt simulator.
// It holds the golden dataset types and loader used by sim/ and cmd/ tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one end-to-end scenario: the three input files as inline
// text plus the expected execution log and skip count.
type GoldenTestCase struct {
	Name          string   `json:"name"`
	LabelMatching string   `json:"label_matching"`
	Trace         []string `json:"trace"`
	VectorTable   []string `json:"vector_table"`
	DeviceTable   []string `json:"device_table"`
	Execution     []string `json:"execution"`
	Skipped       int      `json:"skipped"`
}

// TraceText joins the trace lines into file content.
func (tc GoldenTestCase) TraceText() string { return joinLines(tc.Trace) }

// VectorTableText joins the vector table lines into file content.
func (tc GoldenTestCase) VectorTableText() string { return joinLines(tc.VectorTable) }

// DeviceTableText joins the device table lines into file content.
func (tc GoldenTestCase) DeviceTableText() string { return joinLines(tc.DeviceTable) }

// ExecutionText is the expected execution.txt content.
func (tc GoldenTestCase) ExecutionText() string { return joinLines(tc.Execution) }

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// WriteInputs writes the test case's input files into dir and returns their
// paths in (trace, vector table, device table) order.
func WriteInputs(t *testing.T, dir string, tc GoldenTestCase) (string, string, string) {
	t.Helper()
	paths := []string{
		filepath.Join(dir, "trace.txt"),
		filepath.Join(dir, "vector_table.txt"),
		filepath.Join(dir, "device_table.txt"),
	}
	contents := []string{tc.TraceText(), tc.VectorTableText(), tc.DeviceTableText()}
	for i, p := range paths {
		if err := os.WriteFile(p, []byte(contents[i]), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", p, err)
		}
	}
	return paths[0], paths[1], paths[2]
}
