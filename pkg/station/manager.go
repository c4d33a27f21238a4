package station

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"

	"github.com/stationmgr/stationmgr-go/pkg/credentials"
	wifilog "github.com/stationmgr/stationmgr-go/pkg/log"
)

// Policy errors.
var (
	// ErrNoCredentials indicates ConnectAny was called before any
	// credentials were loaded.
	ErrNoCredentials = errors.New("no credentials loaded")

	// ErrExhausted indicates every candidate failed in every round.
	ErrExhausted = errors.New("all connection attempts exhausted")

	// ErrAttemptTimeout indicates a single attempt ran out its timeout.
	ErrAttemptTimeout = errors.New("connection attempt timed out")

	// ErrAttemptFailed indicates the driver gave up on a single attempt.
	ErrAttemptFailed = errors.New("connection attempt failed")
)

// Manager owns the in-memory credential list and drives connection
// attempts against the WiFi driver.
//
// A Manager is for exclusive, non-reentrant use from a single goroutine;
// it starts no goroutines of its own. Cancellation is via the context
// passed to ConnectAny.
type Manager struct {
	store  credentials.Store
	driver Driver
	opts   Options

	creds []credentials.Credential
	state State

	// Current ConnectAny session ID, stamped on log events.
	session string

	onStateChange func(oldState, newState State)
}

// NewManager creates a connection manager over a credential store and a
// WiFi driver. Zero-valued options take defaults.
func NewManager(store credentials.Store, driver Driver, opts Options) *Manager {
	return &Manager{
		store:  store,
		driver: driver,
		opts:   opts.normalize(),
		state:  StateIdle,
	}
}

// OnStateChange sets a callback for policy state transitions.
// The callback runs synchronously on the calling goroutine.
func (m *Manager) OnStateChange(fn func(oldState, newState State)) {
	m.onStateChange = fn
}

// State returns the current policy state.
func (m *Manager) State() State {
	return m.state
}

// Load reads credentials from the store into memory, replacing any
// previously loaded list.
func (m *Manager) Load() error {
	creds, err := m.store.Load()
	if err != nil {
		m.logError(err, "load")
		return err
	}

	m.creds = creds
	m.logStore(false, len(creds))
	return nil
}

// Credentials returns a copy of the loaded credential list.
func (m *Manager) Credentials() []credentials.Credential {
	out := make([]credentials.Credential, len(m.creds))
	copy(out, m.creds)
	return out
}

// IsConnected reports whether the driver currently holds an association.
func (m *Manager) IsConnected() bool {
	return m.driver.Status() == StatusConnected
}

// IP returns the address assigned by the current network, or the zero
// Addr when not connected.
func (m *Manager) IP() netip.Addr {
	return m.driver.LocalIP()
}

// ConnectAny tries to get the device online using the loaded credentials.
//
// The cached last-connected network is attempted first with the full
// per-network timeout; on failure the list is stable-sorted by ascending
// priority and swept front to back with the shorter sweep timeout. The
// whole cycle repeats up to Options.Rounds times with exponential backoff
// between rounds. Returns nil once connected, ErrNoCredentials when
// nothing is loaded, ErrExhausted when every attempt failed, or ctx.Err()
// if the caller cancels.
func (m *Manager) ConnectAny(ctx context.Context) error {
	if len(m.creds) == 0 {
		m.setState(StateExhausted, "no credentials loaded")
		return ErrNoCredentials
	}

	if m.IsConnected() {
		m.setState(StateConnected, "already connected")
		return nil
	}

	m.session = uuid.New().String()
	backoff := NewBackoff(m.opts.Backoff)

	for round := 1; round <= m.opts.Rounds; round++ {
		cred, err := m.connectRound(ctx, round)
		if err == nil {
			m.connected(cred)
			return nil
		}
		if ctx.Err() != nil {
			m.setState(StateIdle, "canceled")
			return ctx.Err()
		}

		if round == m.opts.Rounds {
			break
		}

		// Wait out the inter-round backoff, abortable by the caller.
		delay := backoff.Next()
		m.setState(StateIdle, fmt.Sprintf("round %d failed, backing off %v", round, delay))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	m.setState(StateExhausted, "all candidates failed")
	return ErrExhausted
}

// connectRound runs one cached-first-then-sweep cycle. Returns the
// credential that connected, or an error when every candidate failed.
func (m *Manager) connectRound(ctx context.Context, round int) (credentials.Credential, error) {
	// Recent network first, with the full per-network timeout.
	if i := credentials.RecentIndex(m.creds); i >= 0 {
		m.setState(StateCheckingCache, m.creds[i].SSID)
		cred := m.creds[i]
		if err := m.connectOne(ctx, cred, m.opts.PerNetworkTimeout, round, true); err == nil {
			return cred, nil
		} else if ctx.Err() != nil {
			return credentials.Credential{}, err
		}
	}

	// Fallback sweep in ascending priority order: lowest priority value
	// (most preferred) first.
	credentials.SortByPriority(m.creds)
	m.setState(StateSweeping, "")
	for i := range m.creds {
		cred := m.creds[i]
		if err := m.connectOne(ctx, cred, m.opts.SweepTimeout, round, false); err == nil {
			return cred, nil
		} else if ctx.Err() != nil {
			return credentials.Credential{}, err
		}
	}

	return credentials.Credential{}, ErrExhausted
}

// connectOne resets the driver and attempts a single join, polling status
// until connected, timeout, driver failure, or cancellation. Blocks the
// calling goroutine for up to timeout.
func (m *Manager) connectOne(ctx context.Context, cred credentials.Credential, timeout time.Duration, round int, cached bool) error {
	m.logAttempt(cred.SSID, wifilog.OutcomeStarted, round, cached, timeout, 0, "")

	// Reset any prior association so the join starts clean.
	if err := m.resetDriver(); err != nil {
		m.logError(err, "reset driver")
		return fmt.Errorf("%w: %s: %v", ErrAttemptFailed, cred.SSID, err)
	}

	if err := m.driver.Connect(cred.SSID, cred.Password); err != nil {
		m.logError(err, "connect "+cred.SSID)
		return fmt.Errorf("%w: %s: %v", ErrAttemptFailed, cred.SSID, err)
	}

	start := time.Now()
	ticker := time.NewTicker(m.opts.PollInterval)
	defer ticker.Stop()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logAttempt(cred.SSID, wifilog.OutcomeCanceled, round, cached, timeout, time.Since(start), "")
			return ctx.Err()

		case <-deadline.C:
			m.logAttempt(cred.SSID, wifilog.OutcomeTimeout, round, cached, timeout, time.Since(start), "")
			return fmt.Errorf("%w: %s after %v", ErrAttemptTimeout, cred.SSID, timeout)

		case <-ticker.C:
			switch m.driver.Status() {
			case StatusConnected:
				addr := m.driver.LocalIP()
				m.logAttempt(cred.SSID, wifilog.OutcomeConnected, round, cached, timeout, time.Since(start), addr.String())
				return nil
			case StatusFailed:
				m.logAttempt(cred.SSID, wifilog.OutcomeFailed, round, cached, timeout, time.Since(start), "")
				return fmt.Errorf("%w: %s", ErrAttemptFailed, cred.SSID)
			}
		}
	}
}

// resetDriver puts the radio in a known state before a join: station
// mode, power save off, prior association and config dropped.
func (m *Manager) resetDriver() error {
	if err := m.driver.SetMode(ModeStation); err != nil {
		return err
	}
	if err := m.driver.SetPowerSave(false); err != nil {
		return err
	}
	return m.driver.Disconnect(true, true)
}

// connected records a successful join and, when configured, persists the
// updated connectedLast flag.
func (m *Manager) connected(cred credentials.Credential) {
	m.setState(StateConnected, cred.SSID)

	credentials.MarkConnected(m.creds, cred.SSID)
	if !m.opts.PersistOnSuccess {
		return
	}
	if err := m.store.Save(m.creds); err != nil {
		// The join succeeded; a persistence failure is diagnostic only.
		m.logError(err, "persist on success")
		return
	}
	m.logStore(true, len(m.creds))
}

func (m *Manager) setState(s State, reason string) {
	if s == m.state {
		return
	}
	old := m.state
	m.state = s

	m.opts.Logger.Log(wifilog.Event{
		Timestamp: time.Now(),
		SessionID: m.session,
		Category:  wifilog.CategoryState,
		StateChange: &wifilog.StateChangeEvent{
			OldState: old.String(),
			NewState: s.String(),
			Reason:   reason,
		},
	})

	if m.onStateChange != nil {
		m.onStateChange(old, s)
	}
}

func (m *Manager) logAttempt(ssid string, outcome wifilog.Outcome, round int, cached bool, timeout, elapsed time.Duration, addr string) {
	m.opts.Logger.Log(wifilog.Event{
		Timestamp: time.Now(),
		SessionID: m.session,
		Category:  wifilog.CategoryAttempt,
		Attempt: &wifilog.AttemptEvent{
			SSID:    ssid,
			Outcome: outcome,
			Round:   round,
			Cached:  cached,
			Timeout: timeout,
			Elapsed: elapsed,
			Addr:    addr,
		},
	})
}

func (m *Manager) logStore(saved bool, loaded int) {
	ev := wifilog.Event{
		Timestamp: time.Now(),
		SessionID: m.session,
		Category:  wifilog.CategoryStore,
		Store: &wifilog.StoreEvent{
			Loaded: loaded,
			Saved:  saved,
		},
	}
	if fs, ok := m.store.(*credentials.FileStore); ok {
		ev.Store.Path = fs.Path()
		if !saved {
			ev.Store.Skipped = fs.SkippedLines()
		}
	}
	m.opts.Logger.Log(ev)
}

func (m *Manager) logError(err error, context string) {
	m.opts.Logger.Log(wifilog.Event{
		Timestamp: time.Now(),
		SessionID: m.session,
		Category:  wifilog.CategoryError,
		Error: &wifilog.ErrorEventData{
			Message: err.Error(),
			Context: context,
		},
	})
}
