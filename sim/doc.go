// Package sim provides the core discrete-event model of a single CPU that
// interleaves program execution with interrupt servicing.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - activity.go: Trace activities (CPU burst, SYSCALL, END_IO) and label classification
//   - interrupt.go: The fixed micro-step sequence executed for every interrupt
//   - simulator.go: The dispatcher that folds the activity list into the execution log
//
// # Architecture
//
// The sim package owns the clock and the timing model; everything else lives in
// sub-packages:
//   - sim/trace/: Execution log records and sinks (execution.txt writer, in-memory trace)
//   - sim/workload/: Loaders for the trace, vector table and device table files
//
// The simulation is a single sequential pass. There is no event queue: each
// activity runs to completion before the next one is examined, and every
// advance of the clock is paired with exactly one execution record covering
// that interval.
package sim
