package station

import (
	"net/netip"
	"sync"
)

// SimBehavior scripts how the simulated driver treats one network.
type SimBehavior uint8

const (
	// SimJoin connects after SimulatedDriver.JoinAfterPolls status polls.
	SimJoin SimBehavior = iota

	// SimNeverJoin stays in CONNECTING until the attempt times out.
	SimNeverJoin

	// SimReject reports FAILED on the first status poll.
	SimReject
)

// SimulatedDriver is an in-memory Driver for tests and demos. Behavior
// is scripted per SSID; unknown SSIDs never join.
type SimulatedDriver struct {
	mu sync.Mutex

	// JoinAfterPolls is how many Status polls a SimJoin network stays
	// CONNECTING before reporting CONNECTED. Zero joins on the first poll.
	JoinAfterPolls int

	// Addr is the address handed out on join.
	Addr netip.Addr

	behaviors map[string]SimBehavior

	status  Status
	current string
	polls   int

	// Call recording for assertions.
	Connects    []string
	Resets      int
	StatusCalls int
}

// NewSimulatedDriver creates a simulated driver with no known networks.
func NewSimulatedDriver() *SimulatedDriver {
	return &SimulatedDriver{
		Addr:      netip.MustParseAddr("192.168.4.17"),
		behaviors: make(map[string]SimBehavior),
		status:    StatusIdle,
	}
}

// Script sets the behavior for an SSID.
func (d *SimulatedDriver) Script(ssid string, b SimBehavior) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.behaviors[ssid] = b
}

// ForceConnected puts the driver directly into the CONNECTED state, as if
// an earlier join were still live.
func (d *SimulatedDriver) ForceConnected(ssid string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = StatusConnected
	d.current = ssid
}

// SetMode implements Driver.
func (d *SimulatedDriver) SetMode(Mode) error { return nil }

// SetPowerSave implements Driver.
func (d *SimulatedDriver) SetPowerSave(bool) error { return nil }

// Disconnect implements Driver.
func (d *SimulatedDriver) Disconnect(clearConfig, clearStored bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Resets++
	d.status = StatusIdle
	d.current = ""
	d.polls = 0
	return nil
}

// Connect implements Driver.
func (d *SimulatedDriver) Connect(ssid, password string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Connects = append(d.Connects, ssid)
	d.current = ssid
	d.polls = 0
	d.status = StatusConnecting
	return nil
}

// Status implements Driver, advancing the scripted behavior one poll.
func (d *SimulatedDriver) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.StatusCalls++

	if d.status != StatusConnecting {
		return d.status
	}

	b, known := d.behaviors[d.current]
	if !known {
		b = SimNeverJoin
	}
	switch b {
	case SimJoin:
		if d.polls >= d.JoinAfterPolls {
			d.status = StatusConnected
		}
	case SimReject:
		d.status = StatusFailed
	case SimNeverJoin:
		// Stay CONNECTING.
	}
	d.polls++
	return d.status
}

// LocalIP implements Driver.
func (d *SimulatedDriver) LocalIP() netip.Addr {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != StatusConnected {
		return netip.Addr{}
	}
	return d.Addr
}

// ConnectedSSID returns the SSID of the current association, if any.
func (d *SimulatedDriver) ConnectedSSID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != StatusConnected {
		return ""
	}
	return d.current
}

// Compile-time interface satisfaction check.
var _ Driver = (*SimulatedDriver)(nil)
