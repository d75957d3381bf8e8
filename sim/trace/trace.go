package trace

import (
	"bufio"
	"fmt"
	"io"
)

// Sink receives execution records in emission order.
type Sink interface {
	Record(r Record) error
}

// ExecutionTrace collects records in memory during a simulation run.
type ExecutionTrace struct {
	Records []Record
}

// NewExecutionTrace creates an ExecutionTrace ready for recording.
func NewExecutionTrace() *ExecutionTrace {
	return &ExecutionTrace{
		Records: make([]Record, 0),
	}
}

// Record appends a record. It never fails.
func (et *ExecutionTrace) Record(r Record) error {
	et.Records = append(et.Records, r)
	return nil
}

// Writer streams records as "TIMESTAMP, DURATION, LABEL" lines.
// Output is buffered; callers must Flush before closing the underlying writer.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w in a buffered execution log writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Record writes one line.
func (tw *Writer) Record(r Record) error {
	if _, err := fmt.Fprintf(tw.w, "%d, %d, %s\n", r.Timestamp, r.Duration, r.Label); err != nil {
		return fmt.Errorf("writing execution record: %w", err)
	}
	return nil
}

// Flush writes any buffered lines to the underlying writer.
func (tw *Writer) Flush() error {
	return tw.w.Flush()
}

// Tee fans every record out to all sinks, in order. The first error stops the fan-out.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

type teeSink []Sink

func (t teeSink) Record(r Record) error {
	for _, s := range t {
		if err := s.Record(r); err != nil {
			return err
		}
	}
	return nil
}
