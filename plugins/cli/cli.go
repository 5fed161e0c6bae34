// Package cli prints the usage and the version of the faucet node.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/iotaledger/tokenfaucet/packages/node"
)

// AppVersion is the version of the faucet node.
const AppVersion = "v0.1.0"

var version = flag.BoolP("version", "v", false, "Prints the faucet version")

// ConfigureUsage makes the usage output list the given plugins and whether they are enabled by default.
func ConfigureUsage(plugins []*node.Plugin) {
	flag.Usage = func() {
		printUsage(plugins)
	}
}

// PrintVersion prints the version if it was requested on the command line and reports whether it did.
func PrintVersion() bool {
	if !*version {
		return false
	}

	fmt.Println("tokenfaucet", AppVersion)
	return true
}

func printUsage(plugins []*node.Plugin) {
	_, err := fmt.Fprintf(
		os.Stderr,
		"\n"+
			"TOKEN FAUCET %s\n\n"+
			"  A node handing out native coins and tokens once per identity.\n\n"+
			"Usage:\n\n"+
			"  %s [OPTIONS]\n\n"+
			"Plugins:\n\n%s\n"+
			"Options:\n\n",
		AppVersion,
		filepath.Base(os.Args[0]),
		pluginList(plugins),
	)
	if err != nil {
		panic(err)
	}

	flag.PrintDefaults()
}

func pluginList(plugins []*node.Plugin) string {
	var builder strings.Builder
	for _, plugin := range plugins {
		status := "enabled"
		if plugin.Status == node.Disabled {
			status = "disabled"
		}
		_, _ = fmt.Fprintf(&builder, "  %-24s %s\n", plugin.Name, status)
	}

	return builder.String()
}
