// Package trace provides execution-log recording for the interrupt simulator.
// This package has no dependencies on sim/ — it stores pure data types and sinks.
package trace

import "fmt"

// Record is a single execution log entry covering the interval
// [Timestamp, Timestamp+Duration) of simulated time.
type Record struct {
	Timestamp int64
	Duration  int64
	Label     string
}

// End returns the simulated time at which the record's interval closes.
func (r Record) End() int64 {
	return r.Timestamp + r.Duration
}

// String renders the record in execution.txt line format (without newline).
func (r Record) String() string {
	return fmt.Sprintf("%d, %d, %s", r.Timestamp, r.Duration, r.Label)
}
