package sim

import (
	"fmt"

	"github.com/inference-sim/interrupt-sim/sim/trace"
)

// Fixed costs of the interrupt micro-steps, in ticks.
const (
	SwitchToKernelTicks = 1
	ContextSaveTicks    = 10
	FindVectorTicks     = 1
	FetchISRAddrTicks   = 1
	ISRBodyTicks        = 40
	IRETTicks           = 1

	// VectorSlotBytes is the size of one vector table entry in memory.
	VectorSlotBytes = 2
)

// InterruptStep is one micro-step of interrupt servicing.
type InterruptStep struct {
	Duration int64
	label    func(device int64) string
}

// Label renders the step's execution-log label for the given device.
func (s InterruptStep) Label(device int64) string {
	return s.label(device)
}

func fixedLabel(l string) func(int64) string {
	return func(int64) string { return l }
}

// InterruptSteps is the fixed sequence executed for every interrupt.
var InterruptSteps = []InterruptStep{
	{Duration: SwitchToKernelTicks, label: fixedLabel("switch to kernel mode")},
	{Duration: ContextSaveTicks, label: fixedLabel("context saved")},
	{Duration: FindVectorTicks, label: func(device int64) string {
		return fmt.Sprintf("find vector %d in memory position %d", device, VectorMemoryPosition(device))
	}},
	{Duration: FetchISRAddrTicks, label: fixedLabel("obtain ISR address")},
	{Duration: ISRBodyTicks, label: fixedLabel("call device driver")},
	{Duration: IRETTicks, label: fixedLabel("IRET")},
}

// InterruptOverhead is the total clock advance of one interrupt.
var InterruptOverhead = func() int64 {
	var total int64
	for _, s := range InterruptSteps {
		total += s.Duration
	}
	return total
}()

// VectorMemoryPosition returns the byte offset of a device's vector table slot.
func VectorMemoryPosition(device int64) int64 {
	return device * VectorSlotBytes
}

// HandleInterrupt emits the interrupt micro-steps for device into sink,
// advancing *clock by each step's duration. The device index must already be
// validated by the caller.
//
// serviceTime is accepted but does not affect timing: the ISR body always
// costs ISRBodyTicks. Existing execution logs depend on this.
// TODO: switch the ISR body to serviceTime once the golden logs are regenerated.
func HandleInterrupt(clock *int64, serviceTime int64, device int64, sink trace.Sink) error {
	_ = serviceTime
	for _, step := range InterruptSteps {
		if err := sink.Record(trace.Record{Timestamp: *clock, Duration: step.Duration, Label: step.Label(device)}); err != nil {
			return err
		}
		*clock += step.Duration
	}
	return nil
}
