package sim

import (
	"fmt"
	"strings"
)

// ActivityKind classifies one line of the trace file.
type ActivityKind string

const (
	KindCPUBurst ActivityKind = "CPU"
	KindSyscall  ActivityKind = "SYSCALL"
	KindEndIO    ActivityKind = "END_IO"
	KindUnknown  ActivityKind = "unknown"
)

// LabelMatching controls how trace labels map onto activity kinds.
type LabelMatching string

const (
	// LabelMatchPrefix accepts any label that starts with a known kind name
	// ("CPU_BOUND" is a CPU burst). This is what existing trace files rely on.
	LabelMatchPrefix LabelMatching = "prefix"
	// LabelMatchExact accepts only the exact kind names.
	LabelMatchExact LabelMatching = "exact"
)

// validLabelMatchings maps accepted label matching strings.
var validLabelMatchings = map[LabelMatching]bool{
	LabelMatchPrefix: true,
	LabelMatchExact:  true,
	"":               true, // empty defaults to prefix
}

// IsValidLabelMatching returns true if the given string is a recognized matching mode.
func IsValidLabelMatching(mode string) bool {
	return validLabelMatchings[LabelMatching(mode)]
}

// knownKinds is checked in order. No kind name is a prefix of another,
// so order does not change the result.
var knownKinds = []ActivityKind{KindCPUBurst, KindSyscall, KindEndIO}

// ClassifyLabel maps a trimmed trace label to its activity kind.
// Matching is case-sensitive in both modes.
func ClassifyLabel(label string, mode LabelMatching) ActivityKind {
	for _, k := range knownKinds {
		if mode == LabelMatchExact {
			if label == string(k) {
				return k
			}
			continue
		}
		if strings.HasPrefix(label, string(k)) {
			return k
		}
	}
	return KindUnknown
}

// Activity is one entry of the trace, in execution order.
// Value is the burst duration for KindCPUBurst and the device index for
// KindSyscall and KindEndIO.
type Activity struct {
	Kind  ActivityKind
	Value int64
	Label string // raw label as it appeared in the trace
	Line  int    // 1-based line number in the trace file (0 if not from a file)
}

// NewActivity builds an Activity from a raw label using the given matching mode.
func NewActivity(label string, value int64, mode LabelMatching) Activity {
	return Activity{Kind: ClassifyLabel(label, mode), Value: value, Label: label}
}

// IsInterrupt reports whether the activity is serviced by the interrupt handler.
func (a Activity) IsInterrupt() bool {
	return a.Kind == KindSyscall || a.Kind == KindEndIO
}

func (a Activity) String() string {
	if a.Line > 0 {
		return fmt.Sprintf("%s,%d (line %d)", a.Label, a.Value, a.Line)
	}
	return fmt.Sprintf("%s,%d", a.Label, a.Value)
}
