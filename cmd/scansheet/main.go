// Command scansheet converts nmap XML scan results into an Excel workbook.
package main

import "github.com/anstrom/scansheet/cmd/cli"

// Build information, set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
