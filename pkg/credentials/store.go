package credentials

import "errors"

// Store errors.
var (
	// ErrStoreUnavailable indicates the backing storage could not be
	// reached: missing file, unmountable filesystem, open failure.
	ErrStoreUnavailable = errors.New("credential store unavailable")

	// ErrNoCredentials indicates the store was readable but contained
	// no usable records.
	ErrNoCredentials = errors.New("no credentials available")

	// ErrMalformedLine indicates a record line that could not be parsed.
	// Loading skips such lines; the error is only returned by ParseLine.
	ErrMalformedLine = errors.New("malformed credential line")
)

// Store defines the interface for credential persistence.
// Implementations must be safe for concurrent access, though the
// connection policy itself uses a store from a single goroutine.
type Store interface {
	// Load reads all credentials from the backing storage.
	// Returns ErrStoreUnavailable if the storage cannot be read and
	// ErrNoCredentials if it held no usable records. Malformed lines
	// are skipped, not fatal.
	Load() ([]Credential, error)

	// Save replaces the backing storage contents with creds.
	// Returns ErrStoreUnavailable if the storage cannot be written.
	Save(creds []Credential) error
}
