package sim

import "testing"

func TestClassifyLabel(t *testing.T) {
	tests := []struct {
		label  string
		mode   LabelMatching
		expect ActivityKind
	}{
		{"CPU", LabelMatchPrefix, KindCPUBurst},
		{"SYSCALL", LabelMatchPrefix, KindSyscall},
		{"END_IO", LabelMatchPrefix, KindEndIO},
		{"CPU_BURST", LabelMatchPrefix, KindCPUBurst},
		{"END_IO_DONE", LabelMatchPrefix, KindEndIO},
		{"cpu", LabelMatchPrefix, KindUnknown}, // case-sensitive
		{"CP", LabelMatchPrefix, KindUnknown},
		{"CPU", LabelMatchExact, KindCPUBurst},
		{"END_IO", LabelMatchExact, KindEndIO},
		{"CPU_BURST", LabelMatchExact, KindUnknown},
		{"", LabelMatchExact, KindUnknown},
		{"SYSCALL", "", KindSyscall}, // empty mode behaves as prefix
	}
	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+tt.label, func(t *testing.T) {
			if got := ClassifyLabel(tt.label, tt.mode); got != tt.expect {
				t.Errorf("ClassifyLabel(%q, %q) = %q, want %q", tt.label, tt.mode, got, tt.expect)
			}
		})
	}
}

func TestIsValidLabelMatching(t *testing.T) {
	tests := []struct {
		mode  string
		valid bool
	}{
		{"prefix", true},
		{"exact", true},
		{"", true},
		{"fuzzy", false},
		{"EXACT", false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if got := IsValidLabelMatching(tt.mode); got != tt.valid {
				t.Errorf("IsValidLabelMatching(%q) = %v, want %v", tt.mode, got, tt.valid)
			}
		})
	}
}

func TestActivity_IsInterrupt(t *testing.T) {
	if !NewActivity("SYSCALL", 1, LabelMatchExact).IsInterrupt() {
		t.Error("SYSCALL should be an interrupt")
	}
	if !NewActivity("END_IO", 1, LabelMatchExact).IsInterrupt() {
		t.Error("END_IO should be an interrupt")
	}
	if NewActivity("CPU", 1, LabelMatchExact).IsInterrupt() {
		t.Error("CPU should not be an interrupt")
	}
}

func TestDeviceTable_Lookup(t *testing.T) {
	dt := DeviceTable{{ServiceTime: 10, Present: true}, {ServiceTime: 0, Present: false}}

	if d, ok := dt.Lookup(0); !ok || d.ServiceTime != 10 {
		t.Errorf("Lookup(0) = %+v, %v", d, ok)
	}
	if _, ok := dt.Lookup(1); ok {
		t.Error("absent device must not be valid")
	}
	if _, ok := dt.Lookup(2); ok {
		t.Error("index past the end must not be valid")
	}
	if _, ok := dt.Lookup(-1); ok {
		t.Error("negative index must not be valid")
	}
}
