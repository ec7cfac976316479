// Package main is the entry point for bgmctl, the offline companion to the
// VocalMaster backend.
//
// Usage:
//
//	bgmctl <command> [flags]
//
// Commands:
//
//	render   - Render a backing track to a WAV file
//	keys     - List supported keys and styles
//	analyze  - Print a simulated vocal analysis
//	inspect  - Show the format of WAV files
package main

import (
	"fmt"
	"os"

	"github.com/srirammulukuntla11/vocalmaster/cmd/bgmctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
