package log

import "time"

// Event represents one connection-policy log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies one ConnectAny cycle (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Type-specific payload (one of these will be set).
	Attempt     *AttemptEvent     `cbor:"4,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"5,keyasint,omitempty"`
	Store       *StoreEvent       `cbor:"6,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"7,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryAttempt indicates a connection attempt outcome.
	CategoryAttempt Category = 0
	// CategoryState indicates a policy state transition.
	CategoryState Category = 1
	// CategoryStore indicates credential store activity.
	CategoryStore Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAttempt:
		return "ATTEMPT"
	case CategoryState:
		return "STATE"
	case CategoryStore:
		return "STORE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the result of a single connection attempt.
type Outcome uint8

const (
	// OutcomeStarted marks the beginning of an attempt.
	OutcomeStarted Outcome = 0
	// OutcomeConnected marks a successful join.
	OutcomeConnected Outcome = 1
	// OutcomeTimeout marks an attempt that ran out its timeout.
	OutcomeTimeout Outcome = 2
	// OutcomeFailed marks an attempt the driver rejected outright.
	OutcomeFailed Outcome = 3
	// OutcomeCanceled marks an attempt aborted by the caller.
	OutcomeCanceled Outcome = 4
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "STARTED"
	case OutcomeConnected:
		return "CONNECTED"
	case OutcomeTimeout:
		return "TIMEOUT"
	case OutcomeFailed:
		return "FAILED"
	case OutcomeCanceled:
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

// AttemptEvent captures one connection attempt against one network.
type AttemptEvent struct {
	// SSID of the network being attempted.
	SSID string `cbor:"1,keyasint"`

	// Outcome of the attempt.
	Outcome Outcome `cbor:"2,keyasint"`

	// Round is the 1-based retry round the attempt belongs to.
	Round int `cbor:"3,keyasint,omitempty"`

	// Cached is true when this was the cached last-connected network
	// tried ahead of the priority sweep.
	Cached bool `cbor:"4,keyasint,omitempty"`

	// Timeout bound for the attempt.
	Timeout time.Duration `cbor:"5,keyasint,omitempty"`

	// Elapsed time of the attempt (set on terminal outcomes).
	Elapsed time.Duration `cbor:"6,keyasint,omitempty"`

	// Addr is the IP assigned on success.
	Addr string `cbor:"7,keyasint,omitempty"`
}

// StateChangeEvent captures a connection-policy state transition.
type StateChangeEvent struct {
	OldState string `cbor:"1,keyasint"`
	NewState string `cbor:"2,keyasint"`

	// Reason for the transition, if notable.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// StoreEvent captures credential store activity.
type StoreEvent struct {
	// Path of the backing file, if any.
	Path string `cbor:"1,keyasint,omitempty"`

	// Loaded is the number of records accepted.
	Loaded int `cbor:"2,keyasint,omitempty"`

	// Skipped is the number of malformed lines rejected.
	Skipped int `cbor:"3,keyasint,omitempty"`

	// Saved is true for a save, false for a load.
	Saved bool `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures an error surfaced by the policy or a store.
type ErrorEventData struct {
	Message string `cbor:"1,keyasint"`

	// Context names the operation that produced the error.
	Context string `cbor:"2,keyasint,omitempty"`
}
