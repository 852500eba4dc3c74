package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grindlemire/go-interactor/machine"
)

// runCheck implements the check subcommand.
// It loads and validates each definition without driving it.
func runCheck(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	verbose := fs.Bool("v", false, "Print a summary of each definition")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	locations := fs.Args()
	if len(locations) == 0 && cfg.Definition != "" {
		locations = []string{cfg.Definition}
	}
	if len(locations) == 0 {
		return fmt.Errorf("no definitions given")
	}

	timeout, err := cfg.timeout()
	if err != nil {
		return err
	}

	loader := machine.NewLoader()
	var errorCount int
	for _, location := range locations {
		ctx := context.Background()
		cancel := context.CancelFunc(func() {})
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		}
		def, err := loader.LoadDefinition(ctx, location)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", location, err)
			errorCount++
			continue
		}

		if *verbose {
			fmt.Fprintf(out, "%s: machine %q, %d regions, %d states, initial %q\n",
				location, def.Name, len(def.Regions), len(def.States), def.Initial)
		} else {
			fmt.Fprintf(out, "%s: ok\n", location)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d definition(s) had errors", errorCount)
	}
	return nil
}
