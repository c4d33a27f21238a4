package station

import "net/netip"

// Mode is the WiFi radio mode.
type Mode uint8

const (
	// ModeStation joins existing networks as a client.
	ModeStation Mode = iota

	// ModeOff disables the radio.
	ModeOff
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeStation:
		return "STATION"
	case ModeOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Status is the driver's current link status.
type Status uint8

const (
	// StatusIdle indicates the radio is up with no join in progress.
	StatusIdle Status = iota

	// StatusConnecting indicates a join is in progress.
	StatusConnecting

	// StatusConnected indicates an established association with an
	// assigned address.
	StatusConnected

	// StatusDisconnected indicates the last association was dropped.
	StatusDisconnected

	// StatusFailed indicates the driver gave up on the current join
	// (bad credentials, no such network).
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusConnecting:
		return "CONNECTING"
	case StatusConnected:
		return "CONNECTED"
	case StatusDisconnected:
		return "DISCONNECTED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Driver is the STA-capable WiFi driver the connection policy drives.
// Implementations wrap vendor SDKs or simulators; the policy only ever
// polls Status, it receives no callbacks.
type Driver interface {
	// SetMode selects the radio mode.
	SetMode(mode Mode) error

	// SetPowerSave enables or disables radio power saving. The policy
	// disables it for the duration of a join.
	SetPowerSave(enabled bool) error

	// Disconnect drops any current association. clearConfig also resets
	// driver-held network configuration; clearStored also erases
	// driver-persisted credentials.
	Disconnect(clearConfig, clearStored bool) error

	// Connect initiates a join. An empty password joins an open network.
	// Connect returns once the join is initiated; completion is observed
	// via Status.
	Connect(ssid, password string) error

	// Status reports the current link status.
	Status() Status

	// LocalIP returns the address assigned by the network, or the zero
	// Addr when not connected.
	LocalIP() netip.Addr
}
