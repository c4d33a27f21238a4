package credentials

import "sync"

// MemoryStore is an in-memory implementation of the Store interface.
// This is primarily useful for testing and devices that keep the
// credential list somewhere other than a mounted filesystem.
type MemoryStore struct {
	mu    sync.RWMutex
	creds []Credential
}

// NewMemoryStore creates an in-memory credential store, optionally
// seeded with records.
func NewMemoryStore(seed ...Credential) *MemoryStore {
	s := &MemoryStore{}
	s.creds = append(s.creds, seed...)
	return s
}

// Load returns a copy of the stored credentials.
// Returns ErrNoCredentials if the store is empty.
func (s *MemoryStore) Load() ([]Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.creds) == 0 {
		return nil, ErrNoCredentials
	}
	out := make([]Credential, len(s.creds))
	copy(out, s.creds)
	return out, nil
}

// Save replaces the stored credentials with a copy of creds.
func (s *MemoryStore) Save(creds []Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = make([]Credential, len(creds))
	copy(s.creds, creds)
	return nil
}

// Compile-time interface satisfaction check.
var _ Store = (*MemoryStore)(nil)
