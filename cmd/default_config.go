package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/interrupt-sim/sim"
)

// RunConfig represents the full defaults.yaml structure.
// All top-level keys must be listed to satisfy KnownFields(true) strict parsing.
type RunConfig struct {
	Version       string `yaml:"version"`
	Output        string `yaml:"output"`         // execution log path
	LogLevel      string `yaml:"log_level"`      // logrus level name
	MaxDevices    int    `yaml:"max_devices"`    // device table capacity
	LabelMatching string `yaml:"label_matching"` // "prefix" or "exact"
	Summary       bool   `yaml:"summary"`        // print metrics to stdout after the run
	ResultsPath   string `yaml:"results_path"`   // metrics JSON path; empty disables
}

// DefaultRunConfig returns the configuration used when no defaults file exists.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Output:        "execution.txt",
		LogLevel:      "warn",
		MaxDevices:    sim.DefaultMaxDevices,
		LabelMatching: string(sim.LabelMatchPrefix),
	}
}

// loadDefaultsConfig parses a defaults YAML file on top of DefaultRunConfig.
// Keys absent from the file keep their default values; unknown keys are errors.
func loadDefaultsConfig(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading defaults file %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing defaults YAML %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration before any input is read.
func (c RunConfig) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.MaxDevices <= 0 {
		return fmt.Errorf("max_devices must be > 0, got %d", c.MaxDevices)
	}
	if !sim.IsValidLabelMatching(c.LabelMatching) {
		return fmt.Errorf("unknown label_matching %q (want prefix or exact)", c.LabelMatching)
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	// Skipped trace lines are reported at error level and must stay visible.
	if level < logrus.ErrorLevel {
		return fmt.Errorf("log level %q would hide per-activity errors; use error or more verbose", c.LogLevel)
	}
	return nil
}

// SimConfig converts the run configuration into simulator parameters.
func (c RunConfig) SimConfig() sim.SimConfig {
	mode := sim.LabelMatching(c.LabelMatching)
	if mode == "" {
		mode = sim.LabelMatchPrefix
	}
	return sim.SimConfig{
		DeviceConfig: sim.NewDeviceConfig(c.MaxDevices),
		TraceConfig:  sim.NewTraceConfig(mode),
	}
}
