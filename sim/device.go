package sim

// DefaultMaxDevices bounds the device table when no explicit capacity is configured.
const DefaultMaxDevices = 256

// Device is one entry of the device table.
type Device struct {
	ServiceTime int64 // configured service time; see HandleInterrupt for how it is used
	Present     bool  // false for indices with no entry in the device table file
}

// DeviceTable maps a device index to its configuration. It is built once and
// read-only afterwards.
type DeviceTable []Device

// Lookup returns the device at index and whether it is a valid, present device.
func (dt DeviceTable) Lookup(index int64) (Device, bool) {
	if index < 0 || index >= int64(len(dt)) {
		return Device{}, false
	}
	d := dt[index]
	return d, d.Present
}

// NewDeviceTable builds a dense table where every given service time is present.
func NewDeviceTable(serviceTimes ...int64) DeviceTable {
	dt := make(DeviceTable, len(serviceTimes))
	for i, st := range serviceTimes {
		dt[i] = Device{ServiceTime: st, Present: true}
	}
	return dt
}
