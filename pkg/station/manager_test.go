package station

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stationmgr/stationmgr-go/pkg/credentials"
	wifilog "github.com/stationmgr/stationmgr-go/pkg/log"
)

// fastOptions keeps test attempts in the millisecond range.
func fastOptions() Options {
	return Options{
		PerNetworkTimeout: 100 * time.Millisecond,
		SweepTimeout:      50 * time.Millisecond,
		PollInterval:      5 * time.Millisecond,
		Rounds:            1,
		Backoff:           BackoffConfig{Initial: time.Millisecond, Jitter: -1},
	}
}

// recordingLogger collects events for assertions.
type recordingLogger struct {
	mu     sync.Mutex
	events []wifilog.Event
}

func (l *recordingLogger) Log(event wifilog.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *recordingLogger) attempts() []wifilog.AttemptEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []wifilog.AttemptEvent
	for _, e := range l.events {
		if e.Attempt != nil {
			out = append(out, *e.Attempt)
		}
	}
	return out
}

func TestConnectAnyNoCredentials(t *testing.T) {
	driver := NewSimulatedDriver()
	mgr := NewManager(credentials.NewMemoryStore(), driver, fastOptions())

	err := mgr.ConnectAny(context.Background())
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("ConnectAny = %v, want ErrNoCredentials", err)
	}
	if driver.StatusCalls != 0 || driver.Resets != 0 || len(driver.Connects) != 0 {
		t.Error("driver should not be touched when nothing is loaded")
	}
	if mgr.State() != StateExhausted {
		t.Errorf("state = %v, want EXHAUSTED", mgr.State())
	}
}

func TestConnectAnyAlreadyConnected(t *testing.T) {
	driver := NewSimulatedDriver()
	driver.ForceConnected("Existing")

	mgr := NewManager(credentials.NewMemoryStore(credentials.Credential{SSID: "Home"}), driver, fastOptions())
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := mgr.ConnectAny(context.Background()); err != nil {
		t.Fatalf("ConnectAny = %v, want nil", err)
	}
	if len(driver.Connects) != 0 {
		t.Errorf("no new attempt expected, got connects %v", driver.Connects)
	}
	if mgr.State() != StateConnected {
		t.Errorf("state = %v, want CONNECTED", mgr.State())
	}
}

func TestConnectAnyCachedNetworkFirst(t *testing.T) {
	// B is last-connected but has the worse priority; it must still be
	// attempted before anything else.
	store := credentials.NewMemoryStore(
		credentials.Credential{SSID: "A", Password: "pw", Priority: 2},
		credentials.Credential{SSID: "B", Priority: 1, ConnectedLast: true},
	)
	driver := NewSimulatedDriver()
	driver.Script("B", SimJoin)

	mgr := NewManager(store, driver, fastOptions())
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := mgr.ConnectAny(context.Background()); err != nil {
		t.Fatalf("ConnectAny: %v", err)
	}
	if len(driver.Connects) != 1 || driver.Connects[0] != "B" {
		t.Errorf("connect order = %v, want [B]", driver.Connects)
	}
	if got := driver.ConnectedSSID(); got != "B" {
		t.Errorf("connected to %q, want B", got)
	}
}

func TestConnectAnySweepInPriorityOrder(t *testing.T) {
	// No cached record; the sweep must walk ascending priority, lowest
	// value first, and stop at the first success.
	store := credentials.NewMemoryStore(
		credentials.Credential{SSID: "worst", Priority: 9},
		credentials.Credential{SSID: "best", Priority: 1},
		credentials.Credential{SSID: "middle", Priority: 5},
	)
	driver := NewSimulatedDriver()
	driver.Script("middle", SimJoin)
	// best rejects fast so the test doesn't sit in its timeout.
	driver.Script("best", SimReject)

	mgr := NewManager(store, driver, fastOptions())
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := mgr.ConnectAny(context.Background()); err != nil {
		t.Fatalf("ConnectAny: %v", err)
	}
	want := []string{"best", "middle"}
	if len(driver.Connects) != len(want) {
		t.Fatalf("connects = %v, want %v", driver.Connects, want)
	}
	for i := range want {
		if driver.Connects[i] != want[i] {
			t.Fatalf("connects = %v, want %v", driver.Connects, want)
		}
	}
}

func TestConnectAnyFallsThroughCachedFailure(t *testing.T) {
	store := credentials.NewMemoryStore(
		credentials.Credential{SSID: "stale", Priority: 1, ConnectedLast: true},
		credentials.Credential{SSID: "good", Priority: 2},
	)
	driver := NewSimulatedDriver()
	driver.Script("stale", SimReject)
	driver.Script("good", SimJoin)

	mgr := NewManager(store, driver, fastOptions())
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := mgr.ConnectAny(context.Background()); err != nil {
		t.Fatalf("ConnectAny: %v", err)
	}
	// stale attempted as cache, then again in the sweep, then good.
	if driver.Connects[0] != "stale" {
		t.Errorf("first attempt = %q, want stale", driver.Connects[0])
	}
	if got := driver.ConnectedSSID(); got != "good" {
		t.Errorf("connected to %q, want good", got)
	}
}

func TestConnectAnyExhausted(t *testing.T) {
	store := credentials.NewMemoryStore(
		credentials.Credential{SSID: "a", Priority: 1},
		credentials.Credential{SSID: "b", Priority: 2},
	)
	driver := NewSimulatedDriver()
	driver.Script("a", SimReject)
	driver.Script("b", SimReject)

	logger := &recordingLogger{}
	opts := fastOptions()
	opts.Logger = logger

	mgr := NewManager(store, driver, opts)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	err := mgr.ConnectAny(context.Background())
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("ConnectAny = %v, want ErrExhausted", err)
	}
	if mgr.State() != StateExhausted {
		t.Errorf("state = %v, want EXHAUSTED", mgr.State())
	}

	var failed int
	for _, a := range logger.attempts() {
		if a.Outcome == wifilog.OutcomeFailed {
			failed++
		}
	}
	if failed != 2 {
		t.Errorf("failed attempts logged = %d, want 2", failed)
	}
}

func TestConnectAnyMultipleRounds(t *testing.T) {
	store := credentials.NewMemoryStore(credentials.Credential{SSID: "a", Priority: 1})
	driver := NewSimulatedDriver()
	driver.Script("a", SimReject)

	logger := &recordingLogger{}
	opts := fastOptions()
	opts.Rounds = 3
	opts.Logger = logger

	mgr := NewManager(store, driver, opts)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if err := mgr.ConnectAny(context.Background()); !errors.Is(err, ErrExhausted) {
		t.Fatalf("ConnectAny = %v, want ErrExhausted", err)
	}

	rounds := map[int]bool{}
	for _, a := range logger.attempts() {
		rounds[a.Round] = true
	}
	for r := 1; r <= 3; r++ {
		if !rounds[r] {
			t.Errorf("no attempt logged for round %d", r)
		}
	}
}

func TestConnectAnyTimeout(t *testing.T) {
	store := credentials.NewMemoryStore(credentials.Credential{SSID: "slow", Priority: 1})
	driver := NewSimulatedDriver()
	driver.Script("slow", SimNeverJoin)

	logger := &recordingLogger{}
	opts := fastOptions()
	opts.Logger = logger

	mgr := NewManager(store, driver, opts)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	start := time.Now()
	err := mgr.ConnectAny(context.Background())
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("ConnectAny = %v, want ErrExhausted", err)
	}
	// No cached record, one round: a single 50ms sweep attempt.
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("ConnectAny took %v, timeouts not enforced", elapsed)
	}

	sawTimeout := false
	for _, a := range logger.attempts() {
		if a.Outcome == wifilog.OutcomeTimeout {
			sawTimeout = true
		}
	}
	if !sawTimeout {
		t.Error("expected a timeout outcome in the event log")
	}
}

func TestConnectAnyCancellation(t *testing.T) {
	store := credentials.NewMemoryStore(credentials.Credential{SSID: "slow", Priority: 1})
	driver := NewSimulatedDriver()
	driver.Script("slow", SimNeverJoin)

	opts := fastOptions()
	opts.PerNetworkTimeout = 10 * time.Second
	opts.SweepTimeout = 10 * time.Second

	mgr := NewManager(store, driver, opts)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := mgr.ConnectAny(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ConnectAny = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %v, should abort promptly", elapsed)
	}
}

func TestConnectAnyPersistOnSuccess(t *testing.T) {
	store := credentials.NewMemoryStore(
		credentials.Credential{SSID: "old", Priority: 1, ConnectedLast: true},
		credentials.Credential{SSID: "new", Priority: 2},
	)
	driver := NewSimulatedDriver()
	driver.Script("old", SimReject)
	driver.Script("new", SimJoin)

	opts := fastOptions()
	opts.PersistOnSuccess = true

	mgr := NewManager(store, driver, opts)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := mgr.ConnectAny(context.Background()); err != nil {
		t.Fatalf("ConnectAny: %v", err)
	}

	saved, err := store.Load()
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	if i := credentials.RecentIndex(saved); i < 0 || saved[i].SSID != "new" {
		t.Errorf("persisted recent = %+v, want new", saved)
	}
	for _, c := range saved {
		if c.SSID == "old" && c.ConnectedLast {
			t.Error("old record should have its flag cleared")
		}
	}
}

func TestOnStateChange(t *testing.T) {
	store := credentials.NewMemoryStore(credentials.Credential{SSID: "a", Priority: 1})
	driver := NewSimulatedDriver()
	driver.Script("a", SimJoin)

	mgr := NewManager(store, driver, fastOptions())
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var transitions []State
	mgr.OnStateChange(func(oldState, newState State) {
		transitions = append(transitions, newState)
	})

	if err := mgr.ConnectAny(context.Background()); err != nil {
		t.Fatalf("ConnectAny: %v", err)
	}

	if len(transitions) == 0 || transitions[len(transitions)-1] != StateConnected {
		t.Errorf("transitions = %v, want final CONNECTED", transitions)
	}
}

func TestManagerLoadErrors(t *testing.T) {
	driver := NewSimulatedDriver()
	mgr := NewManager(credentials.NewMemoryStore(), driver, fastOptions())

	if err := mgr.Load(); !errors.Is(err, credentials.ErrNoCredentials) {
		t.Errorf("Load = %v, want ErrNoCredentials", err)
	}
}
