package announce

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"sort"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// Service constants.
const (
	// ServiceType is the mDNS service type advertised after a join.
	ServiceType = "_stationmgr._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultPort is advertised when the host has no listener of its own.
	DefaultPort = 5353

	// DefaultTTL is the DNS record TTL.
	DefaultTTL = 120 * time.Second
)

// ErrNoInstance indicates a Config without an instance name.
var ErrNoInstance = errors.New("announce: instance name required")

// Config describes one advertisement.
type Config struct {
	// Instance is the service instance name, typically the device name.
	Instance string

	// Port is the advertised service port. Zero means DefaultPort.
	Port int

	// SSID of the joined network, published in TXT.
	SSID string

	// Addr is the device address, published in TXT. Zero Addr omits it.
	Addr netip.Addr

	// Interface restricts advertising to one network interface.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL. Zero means DefaultTTL.
	TTL time.Duration
}

// TXTRecords returns the TXT key-value pairs for the advertisement,
// sorted by key for deterministic output.
func (c Config) TXTRecords() []string {
	txt := map[string]string{
		"ssid": c.SSID,
	}
	if c.Addr.IsValid() {
		txt["ip"] = c.Addr.String()
	}

	keys := make([]string, 0, len(txt))
	for k := range txt {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	records := make([]string, 0, len(keys))
	for _, k := range keys {
		records = append(records, fmt.Sprintf("%s=%s", k, txt[k]))
	}
	return records
}

// Announcer advertises a device on the local network.
type Announcer struct {
	mu     sync.Mutex
	server *zeroconf.Server
}

// Announce registers the mDNS service and returns a running Announcer.
// Advertising continues until Shutdown is called.
func Announce(cfg Config) (*Announcer, error) {
	if cfg.Instance == "" {
		return nil, ErrNoInstance
	}

	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	var ifaces []net.Interface
	if cfg.Interface != "" {
		iface, err := net.InterfaceByName(cfg.Interface)
		if err != nil {
			return nil, fmt.Errorf("announce: interface %s: %w", cfg.Interface, err)
		}
		ifaces = []net.Interface{*iface}
	}

	server, err := zeroconf.Register(
		cfg.Instance,
		ServiceType,
		Domain,
		port,
		cfg.TXTRecords(),
		ifaces,
		zeroconf.TTL(uint32(ttl.Seconds())),
	)
	if err != nil {
		return nil, fmt.Errorf("announce: register: %w", err)
	}

	return &Announcer{server: server}, nil
}

// Shutdown stops advertising. Safe to call multiple times.
func (a *Announcer) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}
