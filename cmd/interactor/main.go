// Package main provides the interactor CLI for exercising machine definitions.
//
// Usage:
//
//	interactor check <definition...>            Load and validate definitions
//	interactor replay <definition> <script>      Replay raw pointer events
//	interactor render <definition> <out.png>     Draw the machine to a PNG
//	interactor live <definition>                 Drive a machine with the terminal mouse
//	interactor help                              Show help
//
// Definitions are JSON, YAML or TOML files, or http(s) URLs serving them.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

const usage = `interactor - pointer event translator for region state machines

Usage:
  interactor <command> [options] [args...]

Commands:
  check       Load and validate machine definitions
  replay      Replay a script of raw pointer events and print semantic events
  render      Draw the machine's regions to a PNG file
  live        Drive a machine with terminal mouse input
  version     Print version information
  help        Show this help message

Common options:
  -config FILE      TOML config file (default: $XDG_CONFIG_HOME/interactor/config.toml)
  -log FILE         Write logs to FILE
  -log-level LEVEL  debug, info, warn or error
  -timeout DUR      Definition load timeout (e.g. 5s)

Script format (replay, render -events):
  # comment
  move 30 30
  press 30 30
  release 30 30

Examples:
  interactor check button.yaml
  interactor replay button.yaml clicks.txt
  interactor render -debug -events clicks.txt button.yaml out.png
  interactor live https://example.com/button.json

Set INTERACTOR_DEBUG=/tmp/interactor.log to log at debug level without -log.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "check":
		err = runCheck(args, os.Stdout)
	case "replay":
		err = runReplay(args, os.Stdout)
	case "render":
		err = runRender(args, os.Stdout)
	case "live":
		err = runLive(args)
	case "version":
		fmt.Printf("interactor version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
