// Package workload loads the simulator's input tables: the activity trace,
// the interrupt vector table and the device table.
package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/interrupt-sim/sim"
)

var (
	// ErrNoVectors is returned when a vector table yields no entries.
	ErrNoVectors = errors.New("no vectors were loaded")
	// ErrTooManyDevices is returned when a device table exceeds the configured capacity.
	ErrTooManyDevices = errors.New("device table exceeds capacity")
)

// Tables bundles the three inputs of a simulation run.
type Tables struct {
	Activities []sim.Activity
	Vectors    []uint64
	Devices    sim.DeviceTable
}

// LoadTables reads all three input files. Any error is fatal for the run.
func LoadTables(tracePath, vectorPath, devicePath string, cfg sim.SimConfig) (*Tables, error) {
	activities, err := LoadTraceFile(tracePath, cfg.LabelMatching)
	if err != nil {
		return nil, err
	}
	vectors, err := LoadVectorTableFile(vectorPath)
	if err != nil {
		return nil, err
	}
	devices, err := LoadDeviceTableFile(devicePath, cfg.MaxDevices)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Loaded %d activities, %d vectors, %d devices", len(activities), len(vectors), len(devices))
	return &Tables{Activities: activities, Vectors: vectors, Devices: devices}, nil
}

// LoadTraceFile opens path and parses it with ParseTrace.
func LoadTraceFile(path string, mode sim.LabelMatching) ([]sim.Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer func() { _ = f.Close() }()
	activities, err := ParseTrace(f, mode)
	if err != nil {
		return nil, fmt.Errorf("reading trace file %s: %w", path, err)
	}
	return activities, nil
}

// ParseTrace reads "LABEL, VALUE" lines. Blank lines are ignored, leading
// whitespace and whitespace around the label are trimmed, and lines that do
// not carry a label and an integer value are skipped with a warning.
// Unrecognized labels are kept as sim.KindUnknown so the simulator can report them.
func ParseTrace(r io.Reader, mode sim.LabelMatching) ([]sim.Activity, error) {
	activities := make([]sim.Activity, 0)
	lineNo := 0
	err := scanLines(r, func(line string) {
		lineNo++
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		label, rest, found := strings.Cut(line, ",")
		label = strings.TrimSpace(label)
		if !found || label == "" {
			logrus.Warnf("trace line %d: expected LABEL, VALUE; skipping %q", lineNo, line)
			return
		}
		value, ok := leadingInt(rest)
		if !ok {
			logrus.Warnf("trace line %d: value is not an integer; skipping %q", lineNo, line)
			return
		}
		a := sim.NewActivity(label, value, mode)
		a.Line = lineNo
		activities = append(activities, a)
	})
	return activities, err
}

// LoadVectorTableFile opens path and parses it with ParseVectorTable.
func LoadVectorTableFile(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening vector table file: %w", err)
	}
	defer func() { _ = f.Close() }()
	vectors, err := ParseVectorTable(f)
	if err != nil {
		return nil, fmt.Errorf("reading vector table file %s: %w", path, err)
	}
	return vectors, nil
}

// ParseVectorTable reads one hexadecimal ISR address per line ("0X01E3",
// "1e3" and "0x1e3" are all accepted). Lines without a leading hex number are
// ignored. At least one vector is required.
func ParseVectorTable(r io.Reader) ([]uint64, error) {
	vectors := make([]uint64, 0)
	err := scanLines(r, func(line string) {
		if v, ok := leadingHex(line); ok {
			vectors = append(vectors, v)
		}
	})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, ErrNoVectors
	}
	return vectors, nil
}

// LoadDeviceTableFile opens path and parses it with ParseDeviceTable.
func LoadDeviceTableFile(path string, maxDevices int) (sim.DeviceTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening device table file: %w", err)
	}
	defer func() { _ = f.Close() }()
	devices, err := ParseDeviceTable(f, maxDevices)
	if err != nil {
		return nil, fmt.Errorf("reading device table file %s: %w", path, err)
	}
	return devices, nil
}

// ParseDeviceTable reads one decimal service time per line. The n-th parsed
// line (0-based) describes device n; lines without a leading integer are
// ignored and do not consume an index. maxDevices <= 0 means no limit.
func ParseDeviceTable(r io.Reader, maxDevices int) (sim.DeviceTable, error) {
	devices := make(sim.DeviceTable, 0)
	overflow := false
	err := scanLines(r, func(line string) {
		v, ok := leadingInt(line)
		if !ok {
			return
		}
		if maxDevices > 0 && len(devices) >= maxDevices {
			overflow = true
			return
		}
		devices = append(devices, sim.Device{ServiceTime: v, Present: true})
	})
	if err != nil {
		return nil, err
	}
	if overflow {
		return nil, fmt.Errorf("%w: more than %d entries", ErrTooManyDevices, maxDevices)
	}
	return devices, nil
}

// scanLines calls fn for every line of r, without the line terminator.
// Lines of any length are accepted.
func scanLines(r io.Reader, fn func(line string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			fn(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// leadingInt parses the optional sign and decimal digits at the start of s,
// after leading whitespace. Trailing text is ignored.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// leadingHex parses an optional sign, an optional 0x/0X prefix and hex digits
// at the start of s, after leading whitespace. Trailing text is ignored. A
// negative value wraps like an unsigned conversion and values wider than 64
// bits saturate; either way the line counts as a vector.
func leadingHex(s string) (uint64, bool) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	negative := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && isHexDigit(s[2]) {
		s = s[2:]
	}
	end := 0
	for end < len(s) && isHexDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[:end], 16, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
