package station

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	wifilog "github.com/stationmgr/stationmgr-go/pkg/log"
)

// Option defaults.
const (
	// DefaultPerNetworkTimeout bounds the cached-network attempt.
	DefaultPerNetworkTimeout = 12 * time.Second

	// DefaultSweepTimeout bounds each attempt in the fallback sweep.
	// Shorter than the cached attempt: the sweep has many candidates to
	// get through.
	DefaultSweepTimeout = 2 * time.Second

	// DefaultPollInterval is how often the driver status is polled
	// during an attempt.
	DefaultPollInterval = 250 * time.Millisecond

	// DefaultRounds is how many times the full cycle (cached network,
	// then priority sweep) runs before giving up.
	DefaultRounds = 2
)

// Options configures a Manager.
type Options struct {
	// PerNetworkTimeout bounds the cached last-connected attempt.
	PerNetworkTimeout time.Duration

	// SweepTimeout bounds each attempt in the priority sweep.
	SweepTimeout time.Duration

	// PollInterval is the driver status polling period.
	PollInterval time.Duration

	// Rounds is the maximum number of retry rounds. Minimum 1.
	Rounds int

	// PersistOnSuccess saves the credential list (with the winner's
	// connectedLast flag set) back to the store after a successful join.
	PersistOnSuccess bool

	// Backoff configures the inter-round delay.
	Backoff BackoffConfig

	// Logger receives connection events. Nil disables logging.
	Logger wifilog.Logger
}

// DefaultOptions returns the default Manager options.
func DefaultOptions() Options {
	return Options{
		PerNetworkTimeout: DefaultPerNetworkTimeout,
		SweepTimeout:      DefaultSweepTimeout,
		PollInterval:      DefaultPollInterval,
		Rounds:            DefaultRounds,
	}
}

// normalize fills zero fields with defaults.
func (o Options) normalize() Options {
	if o.PerNetworkTimeout <= 0 {
		o.PerNetworkTimeout = DefaultPerNetworkTimeout
	}
	if o.SweepTimeout <= 0 {
		o.SweepTimeout = DefaultSweepTimeout
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.Rounds < 1 {
		o.Rounds = DefaultRounds
	}
	if o.Logger == nil {
		o.Logger = wifilog.NoopLogger{}
	}
	return o
}

// Config is the parsed form of the YAML config file.
type Config struct {
	// CredentialsPath is the credential file location.
	CredentialsPath string

	// EventLogPath, when set, appends CBOR connection events there.
	EventLogPath string

	PerNetworkTimeout time.Duration
	SweepTimeout      time.Duration
	PollInterval      time.Duration
	Rounds            int
	PersistOnSuccess  bool

	BackoffInitial time.Duration
	BackoffMax     time.Duration
}

// rawConfig is the YAML wire form. Durations are Go duration strings
// ("12s", "250ms").
type rawConfig struct {
	CredentialsPath string `yaml:"credentials_path"`
	EventLogPath    string `yaml:"event_log_path,omitempty"`

	PerNetworkTimeout string `yaml:"per_network_timeout,omitempty"`
	SweepTimeout      string `yaml:"sweep_timeout,omitempty"`
	PollInterval      string `yaml:"poll_interval,omitempty"`
	Rounds            int    `yaml:"rounds,omitempty"`
	PersistOnSuccess  bool   `yaml:"persist_on_success,omitempty"`

	BackoffInitial string `yaml:"backoff_initial,omitempty"`
	BackoffMax     string `yaml:"backoff_max,omitempty"`
}

// ErrInvalidConfig wraps a config file problem.
var ErrInvalidConfig = errors.New("invalid config")

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

// ParseConfig parses a config from YAML bytes.
func ParseConfig(data []byte) (Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if raw.CredentialsPath == "" {
		return Config{}, fmt.Errorf("%w: credentials_path is required", ErrInvalidConfig)
	}
	if raw.Rounds < 0 {
		return Config{}, fmt.Errorf("%w: rounds must not be negative", ErrInvalidConfig)
	}

	cfg := Config{
		CredentialsPath:  raw.CredentialsPath,
		EventLogPath:     raw.EventLogPath,
		Rounds:           raw.Rounds,
		PersistOnSuccess: raw.PersistOnSuccess,
	}

	for _, f := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"per_network_timeout", raw.PerNetworkTimeout, &cfg.PerNetworkTimeout},
		{"sweep_timeout", raw.SweepTimeout, &cfg.SweepTimeout},
		{"poll_interval", raw.PollInterval, &cfg.PollInterval},
		{"backoff_initial", raw.BackoffInitial, &cfg.BackoffInitial},
		{"backoff_max", raw.BackoffMax, &cfg.BackoffMax},
	} {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, f.name, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, f.name)
		}
		*f.dst = d
	}

	return cfg, nil
}

// Options converts the config to Manager options. Zero fields take the
// package defaults.
func (c Config) Options() Options {
	return Options{
		PerNetworkTimeout: c.PerNetworkTimeout,
		SweepTimeout:      c.SweepTimeout,
		PollInterval:      c.PollInterval,
		Rounds:            c.Rounds,
		PersistOnSuccess:  c.PersistOnSuccess,
		Backoff: BackoffConfig{
			Initial: c.BackoffInitial,
			Max:     c.BackoffMax,
		},
	}.normalize()
}
