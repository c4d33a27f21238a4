// Package log provides structured connection logging for stationmgr.
//
// This package defines the Logger interface and Event types for capturing
// what the connection policy did: attempts, state transitions, store
// activity, and errors. It is separate from operational logging (slog) -
// the event stream is a machine-readable trace of why a device did or did
// not get online.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	opts.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For the field: write to a binary file
//	opts.Logger, _ = log.NewFileLogger("/data/wifi-events.cbor")
//
//	// Both: use MultiLogger
//	opts.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Events are encoded as a CBOR stream with integer keys, small enough for
// flash-backed storage on constrained devices. ReadEvents decodes a
// captured stream for offline analysis.
//
// Logging must never disrupt the connection policy: implementations
// swallow their own errors, and NoopLogger disables capture entirely.
package log
