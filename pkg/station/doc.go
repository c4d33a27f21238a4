// Package station drives STA-mode WiFi connection attempts from a
// prioritized credential list.
//
// This package handles:
//   - Trying the cached last-connected network before anything else
//   - Falling back to a sweep of all known networks in priority order
//   - Bounded per-network timeouts with context cancellation
//   - Bounded retry rounds with exponential backoff between rounds
//
// # Attempt Order
//
// One ConnectAny cycle proceeds as follows:
//
//  1. No credentials loaded: fail immediately, driver untouched.
//  2. Driver already connected: succeed immediately, no attempt.
//  3. Attempt the cached last-connected network with the per-network
//     timeout.
//  4. Stable-sort by ascending priority and sweep front to back (lowest
//     priority value, i.e. most preferred, first) with the shorter sweep
//     timeout.
//  5. On failure, back off and repeat from step 3 up to the configured
//     round limit.
//
// The WiFi hardware itself is behind the Driver interface; the package
// never scans and never enters access-point mode.
package station
