package credentials

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// header is the comment line written at the top of every saved file.
const header = "# ssid,password,priority,connectedLast"

// FileStore is a file-based implementation of the Store interface.
// The file is opened, used, and closed within each Load/Save call; no
// handle is held between calls.
type FileStore struct {
	mu   sync.Mutex
	path string

	// Lines rejected during the last Load.
	skipped int
}

// NewFileStore creates a file-backed credential store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// SkippedLines returns the number of lines rejected by the last Load.
func (s *FileStore) SkippedLines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// Load reads the credential file line by line. Blank lines and comments
// are ignored; malformed lines are counted and skipped. Returns
// ErrStoreUnavailable if the file cannot be opened and ErrNoCredentials
// if no line yielded a record.
func (s *FileStore) Load() ([]Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, s.path, err)
	}
	defer f.Close()

	var creds []Credential
	s.skipped = 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cred, err := ParseLine(line)
		if err != nil {
			s.skipped++
			continue
		}
		creds = append(creds, cred)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, s.path, err)
	}

	if len(creds) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCredentials, s.path)
	}
	return creds, nil
}

// Save rewrites the credential file with a header comment followed by one
// line per record. Credentials are stored in cleartext, so the file is
// created 0600. Parent directories are created as needed.
func (s *FileStore) Save(creds []Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, s.path, err)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, c := range creds {
		b.WriteString(FormatLine(c))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(s.path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, s.path, err)
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ Store = (*FileStore)(nil)
