// Package announce makes a freshly connected device discoverable on the
// local network via mDNS.
//
// After the connection policy gets a device online, hosts typically want
// it findable without knowing its DHCP-assigned address. Announce
// registers a "_stationmgr._tcp" service carrying the device instance
// name and the joined SSID in TXT records.
//
// Announcing is opt-in and independent of the connection policy; it is
// not WiFi scanning and starts no access point.
package announce
