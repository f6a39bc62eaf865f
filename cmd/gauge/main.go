// Command gauge renders circular progress gauges to PNG files.
package main

import (
	"os"

	"github.com/go-drift/gauge/cmd/gauge/cmd"
)

// Version info set via ldflags at build time:
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.date=2026-01-01"
var (
	version = ""
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
