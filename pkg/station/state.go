package station

// State represents the connection policy state within one connect cycle.
type State uint8

const (
	// StateIdle indicates no connect cycle is running.
	StateIdle State = iota

	// StateCheckingCache indicates the cached last-connected network is
	// being attempted.
	StateCheckingCache

	// StateSweeping indicates the priority-ordered fallback sweep is in
	// progress.
	StateSweeping

	// StateConnected indicates the device is associated with a network.
	StateConnected

	// StateExhausted indicates every candidate failed in every round.
	StateExhausted
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateCheckingCache:
		return "CHECKING_CACHE"
	case StateSweeping:
		return "SWEEPING"
	case StateConnected:
		return "CONNECTED"
	case StateExhausted:
		return "EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
