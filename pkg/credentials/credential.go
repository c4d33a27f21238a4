package credentials

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Credential is one known network.
type Credential struct {
	// SSID is the network name. Never empty for a valid record.
	SSID string

	// Password is the pre-shared key. Empty means an open network.
	Password string

	// Priority orders connection attempts; lower values are tried first.
	Priority int

	// ConnectedLast marks the network that most recently accepted a
	// connection. At most one record in a collection should carry it.
	ConnectedLast bool
}

// fieldCount is the number of comma-separated fields per record line.
const fieldCount = 4

// ParseLine parses a single record line into a Credential.
// The line must contain at least three commas; fields are trimmed.
// Priority converts best-effort (non-numeric text yields 0).
// Returns an error for lines with too few fields or an empty SSID.
func ParseLine(line string) (Credential, error) {
	fields := strings.SplitN(line, ",", fieldCount)
	if len(fields) < fieldCount {
		return Credential{}, fmt.Errorf("%w: %d of %d fields", ErrMalformedLine, len(fields), fieldCount)
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	if fields[0] == "" {
		return Credential{}, fmt.Errorf("%w: empty ssid", ErrMalformedLine)
	}

	// Best-effort integer conversion; garbage priority degrades to 0
	// rather than rejecting the record.
	priority, _ := strconv.Atoi(fields[2])

	return Credential{
		SSID:          fields[0],
		Password:      fields[1],
		Priority:      priority,
		ConnectedLast: fields[3] == "1" || fields[3] == "true",
	}, nil
}

// FormatLine serializes a Credential to its canonical line form.
// The connectedLast flag is written as "1"/"0".
func FormatLine(c Credential) string {
	flag := "0"
	if c.ConnectedLast {
		flag = "1"
	}
	return fmt.Sprintf("%s,%s,%d,%s", c.SSID, c.Password, c.Priority, flag)
}

// SortByPriority stable-sorts creds ascending by Priority in place.
// Records with equal priority keep their file order.
func SortByPriority(creds []Credential) {
	sort.SliceStable(creds, func(i, j int) bool {
		return creds[i].Priority < creds[j].Priority
	})
}

// RecentIndex returns the index of the first record with ConnectedLast
// set, or -1 if none. It holds no state; call it again after any reorder.
func RecentIndex(creds []Credential) int {
	for i := range creds {
		if creds[i].ConnectedLast {
			return i
		}
	}
	return -1
}

// MarkConnected sets ConnectedLast on the record with the given SSID and
// clears it everywhere else, restoring the at-most-one invariant.
// Returns false if no record has that SSID.
func MarkConnected(creds []Credential, ssid string) bool {
	found := false
	for i := range creds {
		hit := creds[i].SSID == ssid && !found
		creds[i].ConnectedLast = hit
		if hit {
			found = true
		}
	}
	return found
}
