package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grindlemire/go-interactor"
)

// runReplay implements the replay subcommand.
// It feeds a script of raw pointer events to a loaded machine and prints
// each semantic event and transition.
func runReplay(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
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

	location, scriptPath, err := replayArgs(fs.Args(), cfg)
	if err != nil {
		return err
	}

	events, err := readScript(scriptPath)
	if err != nil {
		return err
	}

	ss, err := openSession(context.Background(), cfg, location, out)
	if err != nil {
		return err
	}
	ss.feed(events)
	return nil
}

// replayArgs resolves "<definition> <script>", or "<script>" when the config
// names a definition.
func replayArgs(args []string, cfg config) (location, script string, err error) {
	switch {
	case len(args) == 2:
		return args[0], args[1], nil
	case len(args) == 1 && cfg.Definition != "":
		return cfg.Definition, args[0], nil
	}
	return "", "", fmt.Errorf("usage: interactor replay [options] <definition> <script>")
}

// readScript reads a script from path, or stdin when path is "-".
func readScript(path string) ([]interactor.RawEvent, error) {
	if path == "-" {
		return parseScript(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	events, err := parseScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return events, nil
}

// parseScript reads one "<kind> <x> <y>" event per line. Blank lines and
// lines starting with # are skipped.
func parseScript(r io.Reader) ([]interactor.RawEvent, error) {
	var events []interactor.RawEvent
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%d: want \"<kind> <x> <y>\", got %q", line, text)
		}
		kind, err := interactor.ParseRawKind(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%d: %w", line, err)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%d: bad x: %w", line, err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%d: bad y: %w", line, err)
		}
		events = append(events, interactor.RawEvent{Kind: kind, X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
