// Command stationmgr-demo runs the connection policy against a simulated
// WiFi driver.
//
// It loads a YAML config, reads the credential file it names, and walks
// the full connect cycle (cached network first, then the priority sweep,
// with retry rounds) while streaming events to the console and optionally
// to a CBOR event log. One SSID is scripted to accept the join so the
// demo normally ends connected.
//
// Usage:
//
//	stationmgr-demo -config demo.yaml [-join SSID] [-announce]
//
// Flags:
//
//	-config string  YAML config file path (required)
//	-join string    SSID the simulated driver will accept (default: none)
//	-announce       Advertise the device over mDNS after connecting
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/stationmgr/stationmgr-go/pkg/announce"
	"github.com/stationmgr/stationmgr-go/pkg/credentials"
	wifilog "github.com/stationmgr/stationmgr-go/pkg/log"
	"github.com/stationmgr/stationmgr-go/pkg/station"
)

func main() {
	configPath := flag.String("config", "", "YAML config file path")
	joinSSID := flag.String("join", "", "SSID the simulated driver will accept")
	doAnnounce := flag.Bool("announce", false, "Advertise over mDNS after connecting")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "stationmgr-demo: -config is required")
		os.Exit(2)
	}

	if err := run(*configPath, *joinSSID, *doAnnounce); err != nil {
		fmt.Fprintf(os.Stderr, "stationmgr-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, joinSSID string, doAnnounce bool) error {
	cfg, err := station.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, closeLogger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLogger()

	driver := station.NewSimulatedDriver()
	if joinSSID != "" {
		driver.Script(joinSSID, station.SimJoin)
	}

	opts := cfg.Options()
	opts.Logger = logger

	mgr := station.NewManager(credentials.NewFileStore(cfg.CredentialsPath), driver, opts)
	mgr.OnStateChange(func(oldState, newState station.State) {
		fmt.Printf("state: %s -> %s\n", oldState, newState)
	})

	if err := mgr.Load(); err != nil {
		return err
	}
	fmt.Printf("loaded %d networks from %s\n", len(mgr.Credentials()), cfg.CredentialsPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = mgr.ConnectAny(ctx)
	switch {
	case err == nil:
		fmt.Printf("connected to %q with address %s\n", driver.ConnectedSSID(), mgr.IP())
	case errors.Is(err, station.ErrExhausted):
		fmt.Println("no network accepted the device")
		return err
	default:
		return err
	}

	if doAnnounce {
		announcer, err := announce.Announce(announce.Config{
			Instance: "stationmgr-demo",
			SSID:     driver.ConnectedSSID(),
			Addr:     mgr.IP(),
		})
		if err != nil {
			return err
		}
		defer announcer.Shutdown()

		fmt.Println("announcing over mDNS, ^C to stop")
		<-ctx.Done()
	}

	return nil
}

// buildLogger assembles the event logger: console via slog, plus the CBOR
// file logger when the config names an event log path.
func buildLogger(cfg station.Config) (wifilog.Logger, func(), error) {
	console := wifilog.NewSlogAdapter(slog.Default())
	if cfg.EventLogPath == "" {
		return console, func() {}, nil
	}

	fileLogger, err := wifilog.NewFileLogger(cfg.EventLogPath)
	if err != nil {
		return nil, nil, err
	}
	return wifilog.NewMultiLogger(console, fileLogger), func() { _ = fileLogger.Close() }, nil
}
