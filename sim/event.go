package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/interrupt-sim/sim/trace"
)

// Event defines the interface for the work the dispatcher performs for one
// valid activity. Each event has a Timestamp (in ticks) and an Execute method
// that advances the simulator clock and emits the matching records.
type Event interface {
	Timestamp() int64
	Execute(*Simulator) error
}

// CPUBurstEvent represents a span of uninterrupted program execution.
type CPUBurstEvent struct {
	time     int64 // Simulation time the burst starts (in ticks)
	Duration int64 // Length of the burst (in ticks)
}

// Timestamp returns the start time of the CPUBurstEvent.
func (e *CPUBurstEvent) Timestamp() int64 {
	return e.time
}

// Execute records the burst and advances the clock by its duration.
func (e *CPUBurstEvent) Execute(sim *Simulator) error {
	logrus.Debugf("<< CPU burst of %d at %d ticks", e.Duration, e.time)
	if err := sim.Sink.Record(trace.Record{Timestamp: e.time, Duration: e.Duration, Label: CPUBurstLabel}); err != nil {
		return err
	}
	sim.Clock += e.Duration
	sim.Metrics.recordBurst(e.Duration)
	return nil
}

// InterruptEvent represents a SYSCALL or END_IO serviced by the interrupt handler.
// Device must already be validated against the device table.
type InterruptEvent struct {
	time        int64        // Simulation time the interrupt is taken (in ticks)
	Kind        ActivityKind // KindSyscall or KindEndIO
	Device      int64        // Device index, also the interrupt vector number
	ServiceTime int64        // Configured device service time
}

// Timestamp returns the time the InterruptEvent is taken.
func (e *InterruptEvent) Timestamp() int64 {
	return e.time
}

// Execute runs the interrupt micro-steps.
func (e *InterruptEvent) Execute(sim *Simulator) error {
	logrus.Debugf("<< %s for device %d at %d ticks", e.Kind, e.Device, e.time)
	if int64(len(sim.Vectors)) > e.Device {
		logrus.Debugf("   vector %d -> ISR 0x%04X", e.Device, sim.Vectors[e.Device])
	}
	if err := HandleInterrupt(&sim.Clock, e.ServiceTime, e.Device, sim.Sink); err != nil {
		return err
	}
	sim.Metrics.recordInterrupt(e.Kind, e.Device, sim.Clock-e.time)
	return nil
}
