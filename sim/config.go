package sim

// DeviceConfig groups device table parameters.
type DeviceConfig struct {
	MaxDevices int // upper bound on device table entries (must be > 0)
}

// TraceConfig groups trace interpretation parameters.
type TraceConfig struct {
	LabelMatching LabelMatching // "prefix" (default) or "exact"
}

// SimConfig groups all simulator construction parameters.
type SimConfig struct {
	DeviceConfig
	TraceConfig
}

// NewDeviceConfig creates a DeviceConfig with all fields explicitly set.
func NewDeviceConfig(maxDevices int) DeviceConfig {
	return DeviceConfig{MaxDevices: maxDevices}
}

// NewTraceConfig creates a TraceConfig with all fields explicitly set.
func NewTraceConfig(mode LabelMatching) TraceConfig {
	return TraceConfig{LabelMatching: mode}
}

// DefaultSimConfig returns the configuration used when nothing is overridden.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		DeviceConfig: NewDeviceConfig(DefaultMaxDevices),
		TraceConfig:  NewTraceConfig(LabelMatchPrefix),
	}
}
