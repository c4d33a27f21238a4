// Package credentials manages the persistent list of WiFi network
// credentials a device knows about.
//
// Records live in a line-oriented text file, one network per line:
//
//	# ssid,password,priority,connectedLast
//	MyHomeNetwork,supersecret,1,1
//	Guest,,5,0
//
// Blank lines and lines starting with '#' are ignored. Fields are
// whitespace-trimmed. Priority is an integer; lower values are attempted
// first. The connectedLast flag marks the network that most recently
// accepted a connection.
//
// # Boolean encoding
//
// The connectedLast field is written canonically as "1"/"0". On read both
// "1" and the legacy spelling "true" are accepted, so files produced by
// older firmware load unchanged. Saving such a file normalizes the field.
//
// # Stores
//
// Two Store implementations are provided: FileStore for devices with a
// mounted filesystem, and MemoryStore for tests and hosts that keep the
// list elsewhere.
package credentials
