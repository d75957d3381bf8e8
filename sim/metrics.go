// Tracks run-wide statistics such as CPU time, kernel time and interrupt counts.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// Metrics aggregates statistics about a simulation run for final reporting.
type Metrics struct {
	CPUBursts  int   // Number of CPU bursts executed
	Syscalls   int   // Number of SYSCALL interrupts serviced
	EndIOs     int   // Number of END_IO interrupts serviced
	Skipped    int   // Number of activities rejected by validation
	CPUTime    int64 // Sum of CPU burst durations (in ticks)
	KernelTime int64 // Sum of interrupt servicing time (in ticks)

	SimEndedTime int64 // Clock value after the last activity

	BurstDurations      []int64       // Duration of every CPU burst, in trace order
	InterruptsPerDevice map[int64]int // device index -> interrupts serviced
}

// NewMetrics creates a Metrics with all collections allocated.
func NewMetrics() *Metrics {
	return &Metrics{
		BurstDurations:      make([]int64, 0),
		InterruptsPerDevice: make(map[int64]int),
	}
}

func (m *Metrics) recordBurst(d int64) {
	m.CPUBursts++
	m.CPUTime += d
	m.BurstDurations = append(m.BurstDurations, d)
}

func (m *Metrics) recordInterrupt(kind ActivityKind, device int64, elapsed int64) {
	if kind == KindSyscall {
		m.Syscalls++
	} else {
		m.EndIOs++
	}
	m.KernelTime += elapsed
	m.InterruptsPerDevice[device]++
}

// DeviceCount is the per-device entry of MetricsOutput.
type DeviceCount struct {
	Device     int64 `json:"device"`
	Interrupts int   `json:"interrupts"`
}

// MetricsOutput is the JSON shape of the end-of-run report.
type MetricsOutput struct {
	CPUBursts      int           `json:"cpu_bursts"`
	Syscalls       int           `json:"syscalls"`
	EndIOs         int           `json:"end_ios"`
	Skipped        int           `json:"skipped_activities"`
	CPUTime        int64         `json:"cpu_time_ticks"`
	KernelTime     int64         `json:"kernel_time_ticks"`
	SimEndedTime   int64         `json:"sim_ended_time_ticks"`
	CPUUtilization float64       `json:"cpu_utilization"`
	BurstMean      float64       `json:"burst_mean_ticks"`
	BurstStdDev    float64       `json:"burst_stddev_ticks"`
	BurstP90       float64       `json:"burst_p90_ticks"`
	BurstMax       int64         `json:"burst_max_ticks"`
	Devices        []DeviceCount `json:"devices"`
}

// Output computes the derived report fields.
func (m *Metrics) Output() MetricsOutput {
	out := MetricsOutput{
		CPUBursts:    m.CPUBursts,
		Syscalls:     m.Syscalls,
		EndIOs:       m.EndIOs,
		Skipped:      m.Skipped,
		CPUTime:      m.CPUTime,
		KernelTime:   m.KernelTime,
		SimEndedTime: m.SimEndedTime,
		BurstMean:    CalculateMean(m.BurstDurations),
		BurstStdDev:  CalculateStdDev(m.BurstDurations),
		BurstP90:     CalculatePercentile(m.BurstDurations, 90),
		Devices:      make([]DeviceCount, 0, len(m.InterruptsPerDevice)),
	}
	if m.SimEndedTime > 0 {
		out.CPUUtilization = float64(m.CPUTime) / float64(m.SimEndedTime)
	}
	for _, d := range m.BurstDurations {
		out.BurstMax = max(out.BurstMax, d)
	}
	for dev, n := range m.InterruptsPerDevice {
		out.Devices = append(out.Devices, DeviceCount{Device: dev, Interrupts: n})
	}
	sort.Slice(out.Devices, func(i, j int) bool { return out.Devices[i].Device < out.Devices[j].Device })
	return out
}

// Print writes the report header and indented JSON to w.
func (m *Metrics) Print(w io.Writer) error {
	data, err := json.MarshalIndent(m.Output(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}
	if _, err := fmt.Fprintf(w, "=== Simulation Metrics ===\n%s\n", data); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// SaveResults writes the JSON report to path, replacing any existing file.
func (m *Metrics) SaveResults(path string) error {
	data, err := json.MarshalIndent(m.Output(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing metrics file %s: %w", path, err)
	}
	logrus.Debugf("Successfully wrote metrics to '%s'", path)
	return nil
}
