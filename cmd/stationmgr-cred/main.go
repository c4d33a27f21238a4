// Command stationmgr-cred edits WiFi credential files interactively.
//
// The credential file is the line-oriented list a device loads at boot;
// this tool prepares and maintains that file from a workstation before it
// is flashed or copied onto the device.
//
// Usage:
//
//	stationmgr-cred [flags]
//
// Flags:
//
//	-file string   Credential file path (default "wifi.csv")
//
// Examples:
//
//	# Edit the default wifi.csv in the working directory
//	stationmgr-cred
//
//	# Edit a file destined for a device image
//	stationmgr-cred -file build/image/wifi.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stationmgr/stationmgr-go/cmd/stationmgr-cred/interactive"
)

func main() {
	file := flag.String("file", "wifi.csv", "Credential file path")
	flag.Parse()

	editor, err := interactive.New(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stationmgr-cred: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	editor.Run(ctx, cancel)
}
