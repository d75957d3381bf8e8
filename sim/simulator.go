// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/interrupt-sim/sim/trace"
)

// CPUBurstLabel is the execution-log label of a CPU burst.
const CPUBurstLabel = "CPU burst"

var (
	// ErrInvalidDevice is reported for SYSCALL / END_IO activities whose device
	// index is out of range or has no device table entry.
	ErrInvalidDevice = errors.New("invalid device id")
	// ErrUnknownActivity is reported for trace labels that match no activity kind.
	ErrUnknownActivity = errors.New("unknown activity")
)

// SkippedActivity records an activity that was not executed and why.
type SkippedActivity struct {
	Activity Activity
	Clock    int64 // clock value when the activity was skipped
	Err      error
}

// Simulator is the core object that holds simulation time, the read-only
// tables, and the execution log sink.
type Simulator struct {
	Clock   int64
	Devices DeviceTable
	Vectors []uint64
	Sink    trace.Sink
	Metrics *Metrics
	// Skipped lists every activity rejected during Run, in trace order.
	Skipped []SkippedActivity
}

// NewSimulator creates a Simulator with the clock at zero.
// sink receives every execution record; it must not be nil.
func NewSimulator(devices DeviceTable, vectors []uint64, sink trace.Sink) *Simulator {
	return &Simulator{
		Clock:   0,
		Devices: devices,
		Vectors: vectors,
		Sink:    sink,
		Metrics: NewMetrics(),
		Skipped: make([]SkippedActivity, 0),
	}
}

// Run executes every activity in order. Invalid activities are reported and
// skipped without touching the clock. The only error returned is a sink
// failure, which aborts the run.
func (sim *Simulator) Run(activities []Activity) error {
	for _, a := range activities {
		if err := sim.Step(a); err != nil {
			return err
		}
	}
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
	return nil
}

// Step validates a single activity and executes it as an Event.
func (sim *Simulator) Step(a Activity) error {
	var ev Event
	switch {
	case a.Kind == KindCPUBurst:
		ev = &CPUBurstEvent{time: sim.Clock, Duration: a.Value}

	case a.IsInterrupt():
		dev, ok := sim.Devices.Lookup(a.Value)
		if !ok {
			sim.skip(a, fmt.Errorf("%w %d for %s", ErrInvalidDevice, a.Value, a.Kind))
			return nil
		}
		ev = &InterruptEvent{time: sim.Clock, Kind: a.Kind, Device: a.Value, ServiceTime: dev.ServiceTime}

	default:
		sim.skip(a, fmt.Errorf("%w %q", ErrUnknownActivity, a.Label))
		return nil
	}

	logrus.Debugf("[tick %07d] Executing %T from %s", ev.Timestamp(), ev, a)
	return ev.Execute(sim)
}

func (sim *Simulator) skip(a Activity, err error) {
	logrus.Errorf("Skipping %s: %v", a, err)
	sim.Skipped = append(sim.Skipped, SkippedActivity{Activity: a, Clock: sim.Clock, Err: err})
	sim.Metrics.Skipped++
}
