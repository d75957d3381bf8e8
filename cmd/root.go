package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/interrupt-sim/sim"
	"github.com/inference-sim/interrupt-sim/sim/trace"
	"github.com/inference-sim/interrupt-sim/sim/workload"
)

var (
	// CLI flags; each overrides the defaults file only when set explicitly
	defaultsFilePath string // Path to defaults.yaml
	outputPath       string // Execution log path
	logLevel         string // Log verbosity level
	maxDevices       int    // Device table capacity
	labelMatching    string // Trace label matching mode
	printSummary     bool   // Print metrics after the run
	resultsPath      string // Metrics JSON output path
)

// rootCmd runs the simulation over the three input files
var rootCmd = &cobra.Command{
	Use:   "interrupt-sim <trace_file> <vector_table_file> <device_table_file>",
	Short: "Discrete-event simulator for CPU interrupt handling",
	Args:  cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := resolveRunConfig(defaultsFilePath, cmd.Flags().Changed("defaults-filepath"), cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		level, _ := logrus.ParseLevel(cfg.LogLevel) // validated by resolveRunConfig
		logrus.SetLevel(level)

		if err := runSimulation(cfg, args[0], args[1], args[2], os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// resolveRunConfig layers explicitly-set flags over the defaults file.
// A missing defaults file is only an error when its path was given explicitly.
func resolveRunConfig(path string, pathChanged bool, changed func(name string) bool) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if _, statErr := os.Stat(path); statErr == nil || pathChanged {
		loaded, err := loadDefaultsConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if changed("output") {
		cfg.Output = outputPath
	}
	if changed("log") {
		cfg.LogLevel = logLevel
	}
	if changed("max-devices") {
		cfg.MaxDevices = maxDevices
	}
	if changed("label-matching") {
		cfg.LabelMatching = labelMatching
	}
	if changed("summary") {
		cfg.Summary = printSummary
	}
	if changed("results-path") {
		cfg.ResultsPath = resultsPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runSimulation loads the tables, writes the execution log and reports metrics.
// All returned errors are fatal; per-activity problems are logged and skipped.
func runSimulation(cfg RunConfig, tracePath, vectorPath, devicePath string, stdout io.Writer) error {
	tables, err := workload.LoadTables(tracePath, vectorPath, devicePath, cfg.SimConfig())
	if err != nil {
		return err
	}

	file, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cfg.Output, err)
	}
	defer func() { _ = file.Close() }()

	writer := trace.NewWriter(file)
	var sink trace.Sink = writer
	var et *trace.ExecutionTrace
	if cfg.Summary {
		et = trace.NewExecutionTrace()
		sink = trace.Tee(writer, et)
	}
	s := sim.NewSimulator(tables.Devices, tables.Vectors, sink)
	logrus.Infof("Starting simulation with %d activities, output=%s", len(tables.Activities), cfg.Output)
	if err := s.Run(tables.Activities); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output, err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", cfg.Output, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", cfg.Output, err)
	}

	if len(s.Skipped) > 0 {
		logrus.Warnf("%d activities skipped", len(s.Skipped))
	}
	if cfg.Summary {
		summary := trace.Summarize(et)
		if !summary.Contiguous || summary.LastEnd != s.Clock {
			return fmt.Errorf("execution log is not contiguous from 0 to tick %d", s.Clock)
		}
		if err := s.Metrics.Print(stdout); err != nil {
			return err
		}
		if err := printTraceSummary(stdout, summary); err != nil {
			return err
		}
	}
	if cfg.ResultsPath != "" {
		if err := s.Metrics.SaveResults(cfg.ResultsPath); err != nil {
			return err
		}
	}
	return nil
}

// printTraceSummary writes per-label record counts after the metrics report.
func printTraceSummary(w io.Writer, summary *trace.TraceSummary) error {
	labels := make([]string, 0, len(summary.LabelDistribution))
	for l := range summary.LabelDistribution {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	if _, err := fmt.Fprintf(w, "=== Execution Trace ===\nRecords: %d, Ticks: %d\n", summary.TotalRecords, summary.TotalDuration); err != nil {
		return fmt.Errorf("writing trace summary: %w", err)
	}
	for _, l := range labels {
		if _, err := fmt.Fprintf(w, "  %-40s %d\n", l, summary.LabelDistribution[l]); err != nil {
			return fmt.Errorf("writing trace summary: %w", err)
		}
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags
func init() {
	def := DefaultRunConfig()
	rootCmd.Flags().StringVar(&defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to YAML run defaults (optional unless set)")
	rootCmd.Flags().StringVar(&outputPath, "output", def.Output, "Execution log output path")
	rootCmd.Flags().StringVar(&logLevel, "log", def.LogLevel, "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.Flags().IntVar(&maxDevices, "max-devices", def.MaxDevices, "Maximum number of device table entries")
	rootCmd.Flags().StringVar(&labelMatching, "label-matching", def.LabelMatching, "Trace label matching: prefix or exact")
	rootCmd.Flags().BoolVar(&printSummary, "summary", def.Summary, "Print simulation metrics to stdout")
	rootCmd.Flags().StringVar(&resultsPath, "results-path", def.ResultsPath, "Write simulation metrics JSON to this path")
}
