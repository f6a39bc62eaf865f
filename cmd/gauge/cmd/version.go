package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// DevVersion is reported when no release version is known.
const DevVersion = "v0.0.0-dev"

// Version information set via ldflags at build time.
var (
	version = ""
	date    = "unknown"
)

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, d string) {
	version = v
	date = d
}

// Version returns the CLI version in canonical semver form. It prefers the
// ldflags version, then the module version recorded in the binary, and falls
// back to DevVersion.
func Version() string {
	if v := canonical(version); v != "" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := canonical(info.Main.Version); v != "" {
			return v
		}
	}
	return DevVersion
}

// canonical returns v as canonical semver with a "v" prefix, or "" when v is
// not a valid version.
func canonical(v string) string {
	if v == "" {
		return ""
	}
	if v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	c := semver.Canonical(v)
	if b := semver.Build(v); b != "" {
		c += b
	}
	return c
}

func newVersionCommand() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, Version())
				return
			}
			fmt.Fprintf(out, "gauge %s\n", Version())
			fmt.Fprintf(out, "built: %s\n", date)
			fmt.Fprintf(out, "go: %s\n", runtime.Version())
			fmt.Fprintf(out, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
